package server

import (
	"errors"
	"reflect"

	"devconnector/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// validate is the shared validator instance for request bodies.
var validate = validator.New()

// bindBody parses and validates a JSON request body. On failure it writes the
// itemized 400 response and returns false; handlers should then return nil.
// Validation messages come from each field's `msg` struct tag, keeping the
// wire text co-located with the rule it belongs to.
func (s *Server) bindBody(c *fiber.Ctx, out interface{}) bool {
	if err := c.BodyParser(out); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return false
	}

	if err := validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
			return false
		}

		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, validationMessage(out, fe))
		}
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(msgs...))
		return false
	}

	return true
}

// validationMessage resolves the message for a failed field from its `msg`
// struct tag, falling back to "<field> is invalid".
func validationMessage(out interface{}, fe validator.FieldError) string {
	t := reflect.TypeOf(out)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Kind() == reflect.Struct {
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if msg := sf.Tag.Get("msg"); msg != "" {
				return msg
			}
		}
	}
	return fe.Field() + " is invalid"
}

// parseObjectID extracts a route parameter as an ObjectID. Malformed
// identifiers are indistinguishable from missing resources, so the caller
// supplies the not-found message used for both.
func (s *Server) parseObjectID(c *fiber.Ctx, param, notFoundMsg string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(param))
	if err != nil {
		return primitive.NilObjectID, models.NewNotFoundError(notFoundMsg)
	}
	return id, nil
}
