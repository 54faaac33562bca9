package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/sugarfunge-integration/internal/contracts"
)

type contractResponse struct {
	Name    string          `json:"name"`
	Address string          `json:"address"`
	ABI     json.RawMessage `json:"abi"`
}

// handleContract serves a contract's ABI and its address on the active network
func (s *APIServer) handleContract(c *fiber.Ctx) error {
	name := c.Params("name")

	artifact, err := contracts.GetContractArtifact(name)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Contract not found")
	}

	contract, err := s.registry.Resolve(c.UserContext(), name)
	if err != nil {
		return err
	}

	return c.JSON(contractResponse{
		Name:    contract.Name,
		Address: contract.Address.Hex(),
		ABI:     artifact.ABI,
	})
}
