package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/sugarfunge-integration/internal/apierrors"
	"github.com/rxtech-lab/sugarfunge-integration/internal/utils"
)

// newValidator reports fields by their json names
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// parseRequest decodes the body into out, rejecting unknown fields, and validates it
func (s *APIServer) parseRequest(c *fiber.Ctx, out any) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return apierrors.InvalidRequest(err, "Invalid request body")
	}
	// exactly one JSON value
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apierrors.InvalidRequest(nil, "Invalid request body: unexpected data after the JSON value")
	}

	if err := s.validator.Struct(out); err != nil {
		return apierrors.InvalidRequest(nil, "%s", utils.FormatValidationError(err))
	}
	return nil
}
