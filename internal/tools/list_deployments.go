package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
)

func NewListDeploymentsTool(deploymentService services.DeploymentService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("list_deployments",
		mcp.WithDescription("List the recorded contract addresses, optionally for a single network."),
		mcp.WithString("network_id",
			mcp.Description("Only list deployments on this network. Leave empty to list all networks"),
		),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		networkID := request.GetString("network_id", "")

		var deployments []models.ContractDeployment
		var err error
		if networkID != "" {
			deployments, err = deploymentService.ListDeploymentsByNetwork(networkID)
		} else {
			deployments, err = deploymentService.ListDeployments()
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error retrieving deployments: %v", err)), nil
		}

		items := make([]map[string]interface{}, 0, len(deployments))
		for _, deployment := range deployments {
			items = append(items, map[string]interface{}{
				"contract_name":    deployment.Name,
				"contract_address": deployment.Address,
				"network_id":       deployment.NetworkID,
				"source":           deployment.Source,
				"updated_at":       deployment.UpdatedAt,
			})
		}

		result := map[string]interface{}{
			"deployments": items,
			"total":       len(items),
		}

		resultJSON, _ := json.Marshal(result)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(fmt.Sprintf("Found %d deployments: ", len(items))),
				mcp.NewTextContent(string(resultJSON)),
			},
		}, nil
	}

	return tool, handler
}
