package httpapi

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ecoscope/home-assessment/internal/assessment"
)

var validate = validator.New()

// ErrorHandler is the centralized error responder wired into the Fiber app.
// Input errors map to 400; everything else, including orchestrator faults,
// maps to 500 with a machine-readable code.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	errCode := assessment.ErrCodeInternalFault

	var appErr *assessment.AppError
	if errors.As(err, &appErr) {
		errCode = appErr.Code
		if appErr.Code == assessment.ErrCodeInputInvalid {
			code = fiber.StatusBadRequest
		}
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		if code < 500 {
			errCode = assessment.ErrCodeInputInvalid
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"code":    errCode,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *assessment.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/assessment/:kind", func(c *fiber.Ctx) error {
		req, err := parseAssessmentQuery(c)
		if err != nil {
			return assessment.NewInputError(err.Error())
		}

		switch c.Params("kind") {
		case "solar":
			result, err := service.SolarAssessment(c.UserContext(), req)
			if err != nil {
				return err
			}
			return c.JSON(result)
		case "rainwater":
			result, err := service.RainwaterAssessment(c.UserContext(), req)
			if err != nil {
				return err
			}
			return c.JSON(result)
		case "awg":
			result, err := service.AWGAssessment(c.UserContext(), req)
			if err != nil {
				return err
			}
			return c.JSON(result)
		default:
			return assessment.NewInputError("unknown assessment kind; expected solar, rainwater, or awg")
		}
	})

	// Profiles are accepted and acknowledged but not persisted; the
	// assessment pipelines take their cost inputs from query parameters.
	v1.Post("/profile", func(c *fiber.Ctx) error {
		var req profileRequest
		if err := c.BodyParser(&req); err != nil {
			return assessment.NewInputError("invalid profile payload: " + err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return assessment.NewInputError(err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"status":  "success",
			"message": "Profile data received",
			"data":    req,
		})
	})
}

// assessmentQuery holds the shared query parameters of all assessment kinds.
type assessmentQuery struct {
	Location              string   `validate:"required"`
	HomeSizeSqft          *float64 `validate:"omitempty,gt=0"`
	ElectricityCostPerKWh *float64 `validate:"omitempty,gte=0"`
	WaterCostPerGallon    *float64 `validate:"omitempty,gte=0"`
}

func parseAssessmentQuery(c *fiber.Ctx) (assessment.Request, error) {
	var q assessmentQuery
	var err error

	q.Location = c.Query("location")
	if q.HomeSizeSqft, err = queryFloat(c, "home_size_sqft"); err != nil {
		return assessment.Request{}, err
	}
	if q.ElectricityCostPerKWh, err = queryFloat(c, "electricity_cost_per_kwh"); err != nil {
		return assessment.Request{}, err
	}
	if q.WaterCostPerGallon, err = queryFloat(c, "water_cost_per_gallon"); err != nil {
		return assessment.Request{}, err
	}

	if err := validate.Struct(q); err != nil {
		return assessment.Request{}, err
	}

	return assessment.Request{
		Location:              q.Location,
		HomeSizeSqft:          q.HomeSizeSqft,
		ElectricityCostPerKWh: q.ElectricityCostPerKWh,
		WaterCostPerGallon:    q.WaterCostPerGallon,
	}, nil
}

func queryFloat(c *fiber.Ctx, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: must be a number", name)
	}
	return &v, nil
}

// profileRequest mirrors the public profile contract. Numeric fields are
// pointers so "missing" fails required validation instead of defaulting to
// zero.
type profileRequest struct {
	GeographicLocation string           `json:"geographic_location" validate:"required"`
	HouseholdDetails   householdDetails `json:"household_details" validate:"required"`
	UtilityUsage       utilityUsage     `json:"utility_usage" validate:"required"`
}

type householdDetails struct {
	NumOccupants *int     `json:"num_occupants" validate:"required,gt=0"`
	HomeSizeSqft *float64 `json:"home_size_sqft" validate:"required,gt=0"`
}

type utilityUsage struct {
	ElectricityKWhMonthly *float64 `json:"electricity_kwh_monthly" validate:"required,gte=0"`
	WaterGallonsMonthly   *float64 `json:"water_gallons_monthly" validate:"required,gte=0"`
	ElectricityCostPerKWh *float64 `json:"electricity_cost_per_kwh" validate:"omitempty,gte=0"`
	WaterCostPerGallon    *float64 `json:"water_cost_per_gallon" validate:"omitempty,gte=0"`
}
