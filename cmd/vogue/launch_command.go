package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLaunchCommand(ctx *commandContext) *cobra.Command {
	var entityKey string
	var taskName string
	var version string

	cmd := &cobra.Command{
		Use:   "launch APP",
		Short: "Start an editing application, optionally on an entity's workfile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureProject(cmd)
			if err != nil {
				return err
			}
			if !mgr.LaunchApp(args[0], entityKey, taskName, version) {
				return fmt.Errorf("could not launch %s; check `vogue apps` for availability", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Launched %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&entityKey, "entity", "e", "", "Entity key to open (asset name or sequence/shot)")
	cmd.Flags().StringVarP(&taskName, "task", "t", "", "Task whose workfile to open")
	cmd.Flags().StringVar(&version, "version", "", "Version identifier to open")
	return cmd
}

func newAppsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List configured applications and their availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureManager()
			if err != nil {
				return err
			}
			apps := mgr.Apps()
			if asJSON {
				return writeJSON(cmd, apps)
			}
			if len(apps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No applications configured")
				return nil
			}

			rows := make([][]string, 0, len(apps))
			for _, app := range apps {
				rows = append(rows, []string{
					app.Name,
					app.DisplayName,
					app.Executable,
					yesNo(app.Available),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Name", "Display Name", "Executable", "Available"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
