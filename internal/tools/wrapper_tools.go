package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
)

func NewWrap1155Tool(wrappers services.WrapperService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("wrap_1155",
		mcp.WithDescription("Wrap ERC-1155 tokens into their ERC-20 counterpart by transferring them to the wrapper factory."),
		mcp.WithString("from",
			mcp.Required(),
			mcp.Description("Current holder address"),
		),
		mcp.WithNumber("amount",
			mcp.Required(),
			mcp.Description("Number of units to wrap"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Token id"),
		),
		withAssetData(),
	)

	handler := flowHandler(func(ctx context.Context, args models.WrapRequest) (any, error) {
		result, err := wrappers.Wrap(ctx, args.ToModel())
		if err != nil {
			return nil, err
		}
		return result.Response(), nil
	})
	return tool, handler
}

func NewBatchWrap1155Tool(wrappers services.WrapperService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("batch_wrap_1155",
		mcp.WithDescription("Wrap several token ids in one transaction. `ids`, `amounts` and `data` must have the same length."),
		mcp.WithString("from",
			mcp.Required(),
			mcp.Description("Current holder address"),
		),
		withNumberList("amounts", "Units to wrap, one per token id"),
		withNumberList("ids", "Token ids"),
		withAssetDataList(),
	)

	handler := flowHandler(func(ctx context.Context, args models.BatchWrapRequest) (any, error) {
		result, err := wrappers.BatchWrap(ctx, args.ToModel())
		if err != nil {
			return nil, err
		}
		return result.Response(), nil
	})
	return tool, handler
}

func NewUnwrap1155Tool(wrappers services.WrapperService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("unwrap_1155",
		mcp.WithDescription("Burn wrapped ERC-20 tokens and release the ERC-1155 tokens to `recipientAddress`. The result includes `to` and `from` when the receipt was already available."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Token id"),
		),
		mcp.WithNumber("amount",
			mcp.Required(),
			mcp.Description("Number of units to unwrap"),
		),
		mcp.WithString("recipientAddress",
			mcp.Required(),
			mcp.Description("Address receiving the ERC-1155 tokens"),
		),
		withAssetData(),
	)

	handler := flowHandler(func(ctx context.Context, args models.UnwrapRequest) (any, error) {
		result, err := wrappers.Unwrap(ctx, args.ToModel())
		if err != nil {
			return nil, err
		}
		return result.Response(), nil
	})
	return tool, handler
}

func NewGetWrapped1155Tool(wrappers services.WrapperService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("get_wrapped_1155",
		mcp.WithDescription("Look up the ERC-20 wrapper address for a token id and metadata. Read only, nothing is signed."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Token id"),
		),
		withAssetData(),
	)

	handler := flowHandler(func(ctx context.Context, args models.GetWrappedRequest) (any, error) {
		value, err := wrappers.GetWrapped(ctx, args.ToModel())
		if err != nil {
			return nil, err
		}
		return models.GetWrappedResponse{Tx: value}, nil
	})
	return tool, handler
}
