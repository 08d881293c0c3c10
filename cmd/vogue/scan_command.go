package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Reconcile the project document with files on disk",
		Long: "Scan walks the project's directory tree and records assets, shots, and\n" +
			"version files that exist on disk but are missing from the pipeline\n" +
			"document. Nothing is ever removed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureProject(cmd)
			if err != nil {
				return err
			}
			report, err := mgr.Scan(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			if report.Empty() {
				fmt.Fprintln(out, "Project is in sync with disk")
				return nil
			}
			if len(report.AssetsAdded) > 0 {
				fmt.Fprintf(out, "Added assets: %s\n", strings.Join(report.AssetsAdded, ", "))
			}
			if len(report.ShotsAdded) > 0 {
				fmt.Fprintf(out, "Added shots: %s\n", strings.Join(report.ShotsAdded, ", "))
			}
			for key, ids := range report.VersionsAdded {
				fmt.Fprintf(out, "Added versions for %s: %s\n", key, strings.Join(ids, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	return cmd
}
