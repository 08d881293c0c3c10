package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vogue/internal/project"
)

func newFolderCommand(ctx *commandContext) *cobra.Command {
	folderCmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage grouping folders",
	}

	folderCmd.AddCommand(newFolderAddCommand(ctx))
	folderCmd.AddCommand(newFolderListCommand(ctx))

	return folderCmd
}

func newFolderAddCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "add NAME [MEMBER...]",
		Short: "Create a folder, materializing members that do not exist yet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(kindFlag)
			if err != nil {
				return err
			}
			mgr, err := ctx.ensureProject(cmd)
			if err != nil {
				return err
			}
			if err := mgr.AddFolder(cmd.Context(), kind, args[0], args[1:]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s folder %s with %d member(s)\n", kind, args[0], len(args)-1)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "asset", "Folder kind: asset or shot")
	return cmd
}

func newFolderListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List folders and their members",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureProject(cmd)
			if err != nil {
				return err
			}
			folders := mgr.Project().Folders
			if asJSON {
				return writeJSON(cmd, folders)
			}
			if len(folders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No folders")
				return nil
			}

			rows := make([][]string, 0, len(folders))
			for _, f := range folders {
				rows = append(rows, []string{
					f.Name,
					string(f.Kind),
					strings.Join(f.Members, ", "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Folder", "Kind", "Members"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func parseKind(value string) (project.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "asset", "assets":
		return project.KindAsset, nil
	case "shot", "shots":
		return project.KindShot, nil
	default:
		return "", fmt.Errorf("unknown folder kind %q (want asset or shot)", value)
	}
}
