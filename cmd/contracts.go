package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/rxtech-lab/sugarfunge-integration/internal/contracts"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/server"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
	"github.com/rxtech-lab/sugarfunge-integration/internal/utils"
	"github.com/spf13/cobra"
)

func newContractsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "Manage the contract deployment directory",
	}

	cmd.AddCommand(newContractsListCommand())
	cmd.AddCommand(newContractsSetCommand())
	cmd.AddCommand(newContractsDeleteCommand())
	cmd.AddCommand(newContractsImportCommand())
	return cmd
}

// withDeployments opens the directory, runs fn and closes the database
func withDeployments(fn func(deployments services.DeploymentService, networkID string) error) error {
	cfg, log, err := loadRuntime(true)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	db, deployments, err := server.InitializeDeployments(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(deployments, cfg.NetworkID())
}

func newContractsListCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known deployments for the configured network",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeployments(func(deployments services.DeploymentService, networkID string) error {
				var (
					list []models.ContractDeployment
					err  error
				)
				if all {
					list, err = deployments.ListDeployments()
				} else {
					list, err = deployments.ListDeploymentsByNetwork(networkID)
				}
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tNETWORK\tADDRESS\tSOURCE")
				for _, d := range list {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, d.NetworkID, d.Address, d.Source)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list every network")
	return cmd
}

func newContractsSetCommand() *cobra.Command {
	var networkID string

	cmd := &cobra.Command{
		Use:   "set <contract> <address>",
		Short: "Record the address of a contract",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, address := args[0], args[1]
			if !slices.Contains(contracts.Names(), name) {
				return fmt.Errorf("unknown contract %q, expected one of %v", name, contracts.Names())
			}
			if !utils.IsValidEthereumAddress(address) {
				return fmt.Errorf("invalid address %q", address)
			}

			return withDeployments(func(deployments services.DeploymentService, configured string) error {
				if networkID == "" {
					networkID = configured
				}
				deployment := &models.ContractDeployment{
					Name:      name,
					NetworkID: networkID,
					Address:   address,
					Source:    models.DeploymentSourceManual,
				}
				if err := deployments.UpsertDeployment(deployment); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s on network %s is now %s\n", name, networkID, deployment.Address)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&networkID, "network", "", "network id, defaults to CHAIN_ID")
	return cmd
}

func newContractsDeleteCommand() *cobra.Command {
	var networkID string

	cmd := &cobra.Command{
		Use:   "delete <contract>",
		Short: "Remove the address of a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeployments(func(deployments services.DeploymentService, configured string) error {
				if networkID == "" {
					networkID = configured
				}
				return deployments.DeleteDeployment(args[0], networkID)
			})
		},
	}

	cmd.Flags().StringVar(&networkID, "network", "", "network id, defaults to CHAIN_ID")
	return cmd
}

func newContractsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <artifact.json>...",
		Short: "Import the networks map of truffle build artifacts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeployments(func(deployments services.DeploymentService, _ string) error {
				for _, path := range args {
					artifact, err := contracts.LoadArtifactFile(path)
					if err != nil {
						return err
					}
					count, err := deployments.SeedFromArtifact(artifact, models.DeploymentSourceManual)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: imported %d networks\n", artifact.ContractName, count)
				}
				return nil
			})
		},
	}
}
