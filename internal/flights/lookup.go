package flights

// Safe traversal of the provider's partially-specified JSON trees. Every
// helper is total: a missing key, a nil value, or a wrong-typed node all
// degrade to the zero "absent" result instead of panicking.

// dig walks nested objects along path and returns the value at the end.
// ok is false if any step is missing or not an object.
func dig(m map[string]any, path ...string) (any, bool) {
	var cur any = m
	for _, key := range path {
		obj, isMap := cur.(map[string]any)
		if !isMap {
			return nil, false
		}
		next, exists := obj[key]
		if !exists {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// stringAt returns the string at path, or nil when absent or not a string.
func stringAt(m map[string]any, path ...string) *string {
	v, ok := dig(m, path...)
	if !ok {
		return nil
	}
	s, isStr := v.(string)
	if !isStr || s == "" {
		return nil
	}
	return &s
}

// int64At returns the integer at path. JSON numbers decode as float64, but
// some decoders hand back json.Number-free int64s, so both are accepted.
func int64At(m map[string]any, path ...string) int64 {
	v, ok := dig(m, path...)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}

// objectAt returns the nested object at path, or nil when absent.
func objectAt(m map[string]any, path ...string) map[string]any {
	v, ok := dig(m, path...)
	if !ok {
		return nil
	}
	obj, isMap := v.(map[string]any)
	if !isMap {
		return nil
	}
	return obj
}

// sliceAt returns the array at path, or nil when absent.
func sliceAt(m map[string]any, path ...string) []any {
	v, ok := dig(m, path...)
	if !ok {
		return nil
	}
	arr, isSlice := v.([]any)
	if !isSlice {
		return nil
	}
	return arr
}
