package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/sugarfunge-integration/internal/apierrors"
	"github.com/rxtech-lab/sugarfunge-integration/internal/utils"
)

// assetDataProperties describes the name/symbol/decimals metadata object
var assetDataProperties = map[string]any{
	"name":     map[string]any{"type": "string", "description": "Token name"},
	"symbol":   map[string]any{"type": "string", "description": "Token symbol"},
	"decimals": map[string]any{"type": "number", "description": "Token decimals"},
}

func withAssetData() mcp.ToolOption {
	return mcp.WithObject("data",
		mcp.Required(),
		mcp.Description("Asset metadata, ABI encoded and passed as the call's data argument"),
		mcp.Properties(assetDataProperties),
	)
}

func withAssetDataList() mcp.ToolOption {
	return mcp.WithArray("data",
		mcp.Required(),
		mcp.Description("Asset metadata, one entry per token id"),
		mcp.Items(map[string]any{
			"type":       "object",
			"properties": assetDataProperties,
			"required":   []string{"name", "symbol", "decimals"},
		}),
	)
}

func withNumberList(name, description string) mcp.ToolOption {
	return mcp.WithArray(name,
		mcp.Required(),
		mcp.Description(description),
		mcp.Items(map[string]any{"type": "number"}),
	)
}

// flowHandler binds and validates arguments of type A before calling run
func flowHandler[A any](run func(ctx context.Context, args A) (any, error)) server.ToolHandlerFunc {
	validate := validator.New()
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args A
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}

		if err := validate.Struct(args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("InvalidRequest: %s", utils.FormatValidationError(err))), nil
		}

		result, err := run(ctx, args)
		if err != nil {
			return toolError(err), nil
		}

		resultJSON, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

// toolError reports a classified failure as "<Kind>: <message>"
func toolError(err error) *mcp.CallToolResult {
	response := apierrors.ToResponse(err)
	return mcp.NewToolResultError(fmt.Sprintf("%s: %s", response.Error, response.Message))
}
