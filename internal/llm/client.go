package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/i474232898/flight-assistant/internal/flights"
	"github.com/i474232898/flight-assistant/pkg/logger"
	"github.com/i474232898/flight-assistant/pkg/metrics"
)

const (
	// noDataAnswer is returned without calling the model when the schedule
	// pipeline produced nothing.
	noDataAnswer = "Unfortunately, no flight data could be retrieved right now. Please try again later."

	// fallbackAnswer is returned when the completion call itself fails.
	fallbackAnswer = "Something went wrong while processing your question. Please try again."
)

// Client talks to an OpenRouter-compatible chat completions endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	log        logger.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a completions client.
func NewClient(httpClient *http.Client, baseURL, apiKey, model string, log logger.Logger, m *metrics.Metrics) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
		log:        log,
		metrics:    m,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Answer asks the model the user's question grounded on the given flight
// data. It never returns an error: model or transport failure degrades to a
// fixed fallback string the handler can serve as-is.
func (c *Client) Answer(ctx context.Context, question string, data []flights.FlightRecord, airportCode string) string {
	if len(data) == 0 {
		return noDataAnswer
	}

	answer, err := c.complete(ctx, question, data, airportCode)
	if err != nil {
		c.log.Error("llm completion failed", "airport", airportCode, "error", err)
		return fallbackAnswer
	}

	c.metrics.QuestionsAnswered.Inc()
	return answer
}

func (c *Client) complete(ctx context.Context, question string, data []flights.FlightRecord, airportCode string) (string, error) {
	prompt, err := buildPrompt(question, data, airportCode)
	if err != nil {
		return "", err
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful flight data analyst."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	c.metrics.LLMRequestTime.Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion request returned status %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

// buildPrompt embeds the flight data as indented JSON so the model answers
// from the provided schedule only.
func buildPrompt(question string, data []flights.FlightRecord, airportCode string) (string, error) {
	flightJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`You are an expert flight data analyst. Your task is to answer user questions based *only* on the provided JSON data for the airport %s.
Do not use any external knowledge or make assumptions. If the data does not contain the answer, state that clearly.
The data contains both 'arrival' and 'departure' flights. Pay close attention to the 'type' field.

Here is the flight data:
%s

User's question: "%s"`, airportCode, flightJSON, question)

	return prompt, nil
}
