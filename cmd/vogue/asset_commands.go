package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAssetCommand(ctx *commandContext) *cobra.Command {
	assetCmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage project assets",
	}

	assetCmd.AddCommand(newAssetAddCommand(ctx))
	assetCmd.AddCommand(newAssetListCommand(ctx))

	return assetCmd
}

func newAssetAddCommand(ctx *commandContext) *cobra.Command {
	var assetType string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Register a new asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureProject(cmd)
			if err != nil {
				return err
			}
			a, err := mgr.AddAsset(cmd.Context(), assetType, args[0], nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added asset %s (%s)\n", a.Name, a.Type)
			return nil
		},
	}

	cmd.Flags().StringVarP(&assetType, "type", "t", "", "Asset type (Characters, Props, Environments, ...)")
	return cmd
}

func newAssetListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List project assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureProject(cmd)
			if err != nil {
				return err
			}
			assets := mgr.ListAssets()
			if asJSON {
				return writeJSON(cmd, assets)
			}
			if len(assets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No assets")
				return nil
			}

			rows := make([][]string, 0, len(assets))
			for _, a := range assets {
				rows = append(rows, []string{
					a.Name,
					a.Type,
					fmt.Sprintf("%d", len(a.Versions)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Name", "Type", "Versions"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
