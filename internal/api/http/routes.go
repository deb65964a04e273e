package httpapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/smart-weather/internal/weather"
	"github.com/i474232898/smart-weather/internal/weather/providers"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. defaultUnits is
// used when the request does not name a unit system.
func RegisterRoutes(app *fiber.App, service *weather.Service, defaultUnits weather.Units) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/brief", func(c *fiber.Ctx) error {
		q, err := parseBriefQuery(c, defaultUnits)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		brief, err := service.Brief(c.UserContext(), q.City, q.units())
		if err != nil {
			return briefError(err)
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(brief.Report)
	})

	v1.Get("/weather/brief.json", func(c *fiber.Ctx) error {
		q, err := parseBriefQuery(c, defaultUnits)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		brief, err := service.Brief(c.UserContext(), q.City, q.units())
		if err != nil {
			return briefError(err)
		}

		return c.JSON(fiber.Map{
			"observation": brief.Observation,
			"units":       brief.Units,
			"summary":     service.Summary(brief.Observation, brief.Units),
			"report":      brief.Report,
		})
	})
}

// briefQuery holds query parameters for the brief endpoints.
type briefQuery struct {
	City  string `validate:"required"`
	Units string `validate:"required,oneof=metric imperial"`
}

func (q briefQuery) units() weather.Units {
	return weather.Units(q.Units)
}

func parseBriefQuery(c *fiber.Ctx, defaultUnits weather.Units) (briefQuery, error) {
	q := briefQuery{
		City:  c.Query("city"),
		Units: strings.ToLower(strings.TrimSpace(c.Query("units", string(defaultUnits)))),
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// briefError maps service failures to HTTP errors.
func briefError(err error) error {
	var reqErr *weather.RequestError
	switch {
	case errors.Is(err, weather.ErrEmptyCity):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &reqErr):
		return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("upstream error: %s", reqErr.Error()))
	case errors.Is(err, providers.ErrCircuitOpen):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
	}
}
