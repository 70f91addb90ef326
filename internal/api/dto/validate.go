package dto

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/roles"
	apperrors "github.com/bpdb/power-portal/pkg/util"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("portal_role", func(fl validator.FieldLevel) bool {
		return roles.Role(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return domain.Department(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("severity", func(fl validator.FieldLevel) bool {
		return domain.IncidentSeverity(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("incident_status", func(fl validator.FieldLevel) bool {
		return domain.IncidentStatus(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks the struct's validate tags and reports failures per JSON
// field name.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return apperrors.NewValidationError("invalid payload", details)
}

// Bind parses the JSON body into out and validates it.
func Bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("malformed request body", map[string]any{"body": err.Error()})
	}
	return Validate(out)
}
