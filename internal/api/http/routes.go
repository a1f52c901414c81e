package httpapi

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/flight-assistant/internal/flights"
)

var validate = validator.New()

// FlightSource provides the normalized schedule for an airport.
type FlightSource interface {
	GetFlights(ctx context.Context, airportCode string) []flights.FlightRecord
}

// Answerer turns a question plus flight data into a user-facing answer.
type Answerer interface {
	Answer(ctx context.Context, question string, data []flights.FlightRecord, airportCode string) string
}

// askRequest is the POST /api/ask payload.
type askRequest struct {
	Airport  string `json:"airport" validate:"required,len=3,alpha"`
	Question string `json:"question" validate:"required,min=5"`
}

// askResponse is the POST /api/ask reply.
type askResponse struct {
	Answer string `json:"answer"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. Only airports
// in the allow-list are answered.
func RegisterRoutes(app *fiber.App, source FlightSource, answerer Answerer, airports []string) {
	allowed := make(map[string]struct{}, len(airports))
	for _, code := range airports {
		allowed[strings.ToUpper(code)] = struct{}{}
	}

	app.Post("/api/ask", func(c *fiber.Ctx) error {
		var req askRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		req.Airport = strings.ToUpper(strings.TrimSpace(req.Airport))
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if _, ok := allowed[req.Airport]; !ok {
			return fiber.NewError(fiber.StatusBadRequest, "unknown airport code")
		}

		data := source.GetFlights(c.UserContext(), req.Airport)
		answer := answerer.Answer(c.UserContext(), req.Question, data, req.Airport)

		return c.JSON(askResponse{Answer: answer})
	})
}
