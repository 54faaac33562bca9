package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
)

func (s *APIServer) handleWrap(c *fiber.Ctx) error {
	var req models.WrapRequest
	if err := s.parseRequest(c, &req); err != nil {
		return err
	}

	result, err := s.wrappers.Wrap(c.UserContext(), req.ToModel())
	if err != nil {
		return err
	}
	return c.JSON(result.Response())
}

func (s *APIServer) handleBatchWrap(c *fiber.Ctx) error {
	var req models.BatchWrapRequest
	if err := s.parseRequest(c, &req); err != nil {
		return err
	}

	result, err := s.wrappers.BatchWrap(c.UserContext(), req.ToModel())
	if err != nil {
		return err
	}
	return c.JSON(result.Response())
}

// handleUnwrap includes to/from in the response only when the receipt was found
func (s *APIServer) handleUnwrap(c *fiber.Ctx) error {
	var req models.UnwrapRequest
	if err := s.parseRequest(c, &req); err != nil {
		return err
	}

	result, err := s.wrappers.Unwrap(c.UserContext(), req.ToModel())
	if err != nil {
		return err
	}
	return c.JSON(result.Response())
}

func (s *APIServer) handleGetWrapped(c *fiber.Ctx) error {
	var req models.GetWrappedRequest
	if err := s.parseRequest(c, &req); err != nil {
		return err
	}

	value, err := s.wrappers.GetWrapped(c.UserContext(), req.ToModel())
	if err != nil {
		return err
	}
	return c.JSON(models.GetWrappedResponse{Tx: value})
}
