package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
)

func (s *APIServer) handleMint(c *fiber.Ctx) error {
	var req models.MintRequest
	if err := s.parseRequest(c, &req); err != nil {
		return err
	}

	result, err := s.assets.Mint(c.UserContext(), req.ToModel())
	if err != nil {
		return err
	}
	return c.JSON(result.Response())
}

func (s *APIServer) handleTransfer(c *fiber.Ctx) error {
	var req models.TransferRequest
	if err := s.parseRequest(c, &req); err != nil {
		return err
	}

	result, err := s.assets.Transfer(c.UserContext(), req.ToModel())
	if err != nil {
		return err
	}
	return c.JSON(result.Response())
}

func (s *APIServer) handleBatchTransfer(c *fiber.Ctx) error {
	var req models.BatchTransferRequest
	if err := s.parseRequest(c, &req); err != nil {
		return err
	}

	result, err := s.assets.BatchTransfer(c.UserContext(), req.ToModel())
	if err != nil {
		return err
	}
	return c.JSON(result.Response())
}
