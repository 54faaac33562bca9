package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/sugarfunge-integration/internal/contracts"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
)

type addDeploymentTool struct {
	deploymentService services.DeploymentService
	registry          services.ContractRegistry
}

type AddDeploymentArguments struct {
	ContractName    string `json:"contract_name" validate:"required,oneof=SugarFungeAsset Wrapped1155Factory"`
	ContractAddress string `json:"contract_address" validate:"required,eth_addr"`
	NetworkID       string `json:"network_id" validate:"required,numeric"`
}

func NewAddDeploymentTool(deploymentService services.DeploymentService, registry services.ContractRegistry) *addDeploymentTool {
	return &addDeploymentTool{
		deploymentService: deploymentService,
		registry:          registry,
	}
}

func (a *addDeploymentTool) GetTool() mcp.Tool {
	tool := mcp.NewTool("add_deployment",
		mcp.WithDescription("Record the address of a deployed contract on a network. Replaces any address already recorded for that contract and network."),
		mcp.WithString("contract_name",
			mcp.Required(),
			mcp.Description("Contract name"),
			mcp.Enum(contracts.Names()...),
		),
		mcp.WithString("contract_address",
			mcp.Required(),
			mcp.Description("Deployed contract address (e.g., 0x123...)"),
		),
		mcp.WithString("network_id",
			mcp.Required(),
			mcp.Description("Network id the contract is deployed on (e.g., 3 for ropsten)"),
		),
	)

	return tool
}

func (a *addDeploymentTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args AddDeploymentArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}

		if err := validator.New().Struct(args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		deployment := &models.ContractDeployment{
			Name:      args.ContractName,
			NetworkID: args.NetworkID,
			Address:   args.ContractAddress,
			Source:    models.DeploymentSourceManual,
		}
		if err := a.deploymentService.UpsertDeployment(deployment); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to record deployment: %v", err)), nil
		}

		// cached resolutions may hold the previous address
		a.registry.Invalidate()

		result := map[string]interface{}{
			"contract_name":    deployment.Name,
			"contract_address": deployment.Address,
			"network_id":       deployment.NetworkID,
			"source":           deployment.Source,
		}

		resultJSON, _ := json.Marshal(result)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent("Deployment recorded successfully: "),
				mcp.NewTextContent(string(resultJSON)),
			},
		}, nil
	}
}
