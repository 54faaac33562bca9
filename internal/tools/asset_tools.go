package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
)

func NewMintNFTTool(assets services.AssetService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("mint_nft",
		mcp.WithDescription("Mint `amount` units of token `id` on the SugarFunge asset contract to `account`. Returns the transaction hash once the node accepted it."),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Recipient address (e.g., 0x123...)"),
		),
		mcp.WithNumber("amount",
			mcp.Required(),
			mcp.Description("Number of units to mint"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Token id"),
		),
		withAssetData(),
	)

	handler := flowHandler(func(ctx context.Context, args models.MintRequest) (any, error) {
		result, err := assets.Mint(ctx, args.ToModel())
		if err != nil {
			return nil, err
		}
		return result.Response(), nil
	})
	return tool, handler
}

func NewTransferNFTTool(assets services.AssetService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("transfer_nft",
		mcp.WithDescription("Transfer `amount` units of token `id` from `from` to `to`, signed by the service key. The service key must own or be approved for the tokens."),
		mcp.WithString("from",
			mcp.Required(),
			mcp.Description("Current holder address"),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient address"),
		),
		mcp.WithNumber("amount",
			mcp.Required(),
			mcp.Description("Number of units to transfer"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Token id"),
		),
		withAssetData(),
	)

	handler := flowHandler(func(ctx context.Context, args models.TransferRequest) (any, error) {
		result, err := assets.Transfer(ctx, args.ToModel())
		if err != nil {
			return nil, err
		}
		return result.Response(), nil
	})
	return tool, handler
}

func NewBatchTransferNFTTool(assets services.AssetService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("batch_transfer_nft",
		mcp.WithDescription("Transfer several token ids from `from` to `to` in one transaction. `ids`, `amounts` and `data` must have the same length."),
		mcp.WithString("from",
			mcp.Required(),
			mcp.Description("Current holder address"),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient address"),
		),
		withNumberList("amounts", "Units to transfer, one per token id"),
		withNumberList("ids", "Token ids"),
		withAssetDataList(),
	)

	handler := flowHandler(func(ctx context.Context, args models.BatchTransferRequest) (any, error) {
		result, err := assets.BatchTransfer(ctx, args.ToModel())
		if err != nil {
			return nil, err
		}
		return result.Response(), nil
	})
	return tool, handler
}
