package api

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
)

// proxy decodes a query of type Q and relays the indexing API's body unchanged
func proxy[Q any](s *APIServer, query func(ctx context.Context, q Q) (json.RawMessage, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q Q
		if err := s.parseRequest(c, &q); err != nil {
			return err
		}

		body, err := query(c.UserContext(), q)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}
}

func (s *APIServer) handleGetNFTs(c *fiber.Ctx) error {
	return proxy[models.AddressQuery](s, s.moralis.GetNFTs)(c)
}

func (s *APIServer) handleGetContractNFTs(c *fiber.Ctx) error {
	return proxy[models.AccountTokenQuery](s, s.moralis.GetContractNFTs)(c)
}

func (s *APIServer) handleGetNFTTransfers(c *fiber.Ctx) error {
	return proxy[models.AddressQuery](s, s.moralis.GetNFTTransfers)(c)
}

func (s *APIServer) handleGetNFTTransfersByBlock(c *fiber.Ctx) error {
	return proxy[models.BlockQuery](s, s.moralis.GetNFTTransfersByBlock)(c)
}

func (s *APIServer) handleGetAllTokenIDs(c *fiber.Ctx) error {
	return proxy[models.TokenQuery](s, s.moralis.GetAllTokenIDs)(c)
}

func (s *APIServer) handleGetContractNFTTransfers(c *fiber.Ctx) error {
	return proxy[models.TokenQuery](s, s.moralis.GetContractNFTTransfers)(c)
}

func (s *APIServer) handleGetNFTMetadata(c *fiber.Ctx) error {
	return proxy[models.TokenQuery](s, s.moralis.GetNFTMetadata)(c)
}

func (s *APIServer) handleGetNFTOwners(c *fiber.Ctx) error {
	return proxy[models.TokenQuery](s, s.moralis.GetNFTOwners)(c)
}

func (s *APIServer) handleGetTokenIDMetadata(c *fiber.Ctx) error {
	return proxy[models.TokenIDQuery](s, s.moralis.GetTokenIDMetadata)(c)
}

func (s *APIServer) handleGetTokenIDOwners(c *fiber.Ctx) error {
	return proxy[models.TokenIDQuery](s, s.moralis.GetTokenIDOwners)(c)
}

func (s *APIServer) handleGetTransaction(c *fiber.Ctx) error {
	return proxy[models.TransactionQuery](s, s.moralis.GetTransaction)(c)
}
