package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
	"github.com/rxtech-lab/sugarfunge-integration/internal/tools"
)

// Services are the backends the tools call into
type Services struct {
	Assets      services.AssetService
	Wrappers    services.WrapperService
	Deployments services.DeploymentService
	Registry    services.ContractRegistry
}

type MCPServer struct {
	server *server.MCPServer
}

func NewMCPServer(svc Services, version string) *MCPServer {
	mcpServer := &MCPServer{}
	mcpServer.InitializeTools(svc, version)
	return mcpServer
}

func (s *MCPServer) InitializeTools(svc Services, version string) {
	srv := server.NewMCPServer(
		"SugarFunge MCP Server",
		version,
		server.WithToolCapabilities(true),
	)

	srv.AddPrompt(mcp.NewPrompt("sugarfunge-usage",
		mcp.WithPromptDescription("Instructions and guidance for using the SugarFunge tools"),
		mcp.WithArgument("tool_category",
			mcp.ArgumentDescription("Category of tools to get instructions for (asset, wrapper, deployment, or all)"),
			mcp.RequiredArgument(),
		),
	), func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		category := request.Params.Arguments["tool_category"]
		if category == "" {
			return nil, fmt.Errorf("tool_category is required")
		}

		return mcp.NewGetPromptResult(
			fmt.Sprintf("SugarFunge Tools - %s", category),
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(
					mcp.RoleUser,
					mcp.NewTextContent(getToolInstructions(category)),
				),
			},
		), nil
	})

	// Asset Tools
	mintTool, mintHandler := tools.NewMintNFTTool(svc.Assets)
	srv.AddTool(mintTool, mintHandler)

	transferTool, transferHandler := tools.NewTransferNFTTool(svc.Assets)
	srv.AddTool(transferTool, transferHandler)

	batchTransferTool, batchTransferHandler := tools.NewBatchTransferNFTTool(svc.Assets)
	srv.AddTool(batchTransferTool, batchTransferHandler)

	// Wrapper Tools
	wrapTool, wrapHandler := tools.NewWrap1155Tool(svc.Wrappers)
	srv.AddTool(wrapTool, wrapHandler)

	batchWrapTool, batchWrapHandler := tools.NewBatchWrap1155Tool(svc.Wrappers)
	srv.AddTool(batchWrapTool, batchWrapHandler)

	unwrapTool, unwrapHandler := tools.NewUnwrap1155Tool(svc.Wrappers)
	srv.AddTool(unwrapTool, unwrapHandler)

	getWrappedTool, getWrappedHandler := tools.NewGetWrapped1155Tool(svc.Wrappers)
	srv.AddTool(getWrappedTool, getWrappedHandler)

	// Deployment Directory Tools
	addDeploymentTool := tools.NewAddDeploymentTool(svc.Deployments, svc.Registry)
	srv.AddTool(addDeploymentTool.GetTool(), addDeploymentTool.GetHandler())

	listDeploymentsTool, listDeploymentsHandler := tools.NewListDeploymentsTool(svc.Deployments)
	srv.AddTool(listDeploymentsTool, listDeploymentsHandler)

	s.server = srv
}

func getToolInstructions(category string) string {
	switch category {
	case "asset":
		return `Asset Tools:

1. mint_nft - Mint tokens of an id to an account
   Usage: Create new units of an ERC-1155 token

2. transfer_nft - Transfer tokens of an id between accounts
   Usage: Move units signed by the service key

3. batch_transfer_nft - Transfer several ids in one transaction
   Usage: ids, amounts and data must have the same length`

	case "wrapper":
		return `Wrapper Tools:

1. wrap_1155 - Wrap ERC-1155 tokens into an ERC-20
   Usage: Transfers the tokens to the wrapper factory

2. batch_wrap_1155 - Wrap several ids in one transaction
   Usage: ids, amounts and data must have the same length

3. unwrap_1155 - Release wrapped tokens to a recipient
   Usage: Returns to/from when the receipt is already available

4. get_wrapped_1155 - Look up the ERC-20 wrapper address (read-only)
   Usage: Returns the address as hex`

	case "deployment":
		return `Deployment Tools:

1. add_deployment - Record a contract address on a network
   Usage: Point the service at a new SugarFungeAsset or Wrapped1155Factory deployment

2. list_deployments - List recorded contract addresses
   Usage: Filter by network_id`

	case "all":
		return `SugarFunge MCP Tools Overview:

ASSET (3 tools): mint_nft, transfer_nft, batch_transfer_nft
WRAPPER (4 tools): wrap_1155, batch_wrap_1155, unwrap_1155, get_wrapped_1155
DEPLOYMENT (2 tools): add_deployment, list_deployments

Every metadata argument is an object {name, symbol, decimals}.
State-changing tools are signed by the server's key and return as soon as the node accepts the transaction.`

	default:
		return `Invalid category. Available categories: asset, wrapper, deployment, all`
	}
}

// Start serves the tools over stdio until stdin closes
func (s *MCPServer) Start() error {
	return server.ServeStdio(s.server)
}

// GetServer exposes the underlying server, e.g. for in-process clients in tests
func (s *MCPServer) GetServer() *server.MCPServer {
	return s.server
}
