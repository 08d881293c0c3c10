package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShotCommand(ctx *commandContext) *cobra.Command {
	shotCmd := &cobra.Command{
		Use:   "shot",
		Short: "Manage project shots",
	}

	shotCmd.AddCommand(newShotAddCommand(ctx))
	shotCmd.AddCommand(newShotListCommand(ctx))

	return shotCmd
}

func newShotAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add SEQUENCE NAME",
		Short: "Register a new shot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureProject(cmd)
			if err != nil {
				return err
			}
			s, err := mgr.AddShot(cmd.Context(), args[0], args[1], nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added shot %s\n", s.Key())
			return nil
		},
	}
}

func newShotListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List project shots",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureProject(cmd)
			if err != nil {
				return err
			}
			shots := mgr.ListShots()
			if asJSON {
				return writeJSON(cmd, shots)
			}
			if len(shots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No shots")
				return nil
			}

			rows := make([][]string, 0, len(shots))
			for _, s := range shots {
				rows = append(rows, []string{
					s.Sequence,
					s.Name,
					fmt.Sprintf("%d", len(s.Versions)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Sequence", "Name", "Versions"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
