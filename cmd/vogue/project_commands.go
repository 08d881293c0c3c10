package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vogue/internal/config"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Create, load, and inspect projects",
	}

	projectCmd.AddCommand(newProjectCreateCommand(ctx))
	projectCmd.AddCommand(newProjectInfoCommand(ctx))
	projectCmd.AddCommand(newProjectRecentCommand(ctx))
	projectCmd.AddCommand(newProjectDiscoverCommand(ctx))
	projectCmd.AddCommand(newProjectForgetCommand(ctx))

	return projectCmd
}

func newProjectCreateCommand(ctx *commandContext) *cobra.Command {
	var parentDir string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Scaffold a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureManager()
			if err != nil {
				return err
			}

			dir := strings.TrimSpace(parentDir)
			if dir == "" {
				cfg, _ := ctx.ensureConfig()
				if len(cfg.Paths.LibraryRoots) == 0 {
					return fmt.Errorf("no library roots configured; pass --dir")
				}
				dir = cfg.Paths.LibraryRoots[0]
			}
			expanded, err := config.ExpandPath(dir)
			if err != nil {
				return err
			}

			p, err := mgr.CreateProject(cmd.Context(), args[0], expanded)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s at %s\n", p.Name, p.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&parentDir, "dir", "d", "", "Parent directory (defaults to the first library root)")
	return cmd
}

func newProjectInfoCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show a summary of the working project",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureProject(cmd)
			if err != nil {
				return err
			}
			info, err := mgr.Info()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, info)
			}

			out := cmd.OutOrStdout()
			for _, line := range sectionHeader(out, info.Name) {
				fmt.Fprintln(out, line)
			}
			rows := [][]string{
				{"Path", info.Path},
				{"FPS", fmt.Sprintf("%d", info.FPS)},
				{"Resolution", fmt.Sprintf("%dx%d", info.Resolution[0], info.Resolution[1])},
				{"Assets", fmt.Sprintf("%d", info.AssetCount)},
				{"Shots", fmt.Sprintf("%d", info.ShotCount)},
				{"Folders", fmt.Sprintf("%d", info.FolderCount)},
				{"Tasks", fmt.Sprintf("%d", info.TaskCount)},
				{"Versions", fmt.Sprintf("%d", info.TotalVersions)},
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newProjectRecentCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var clear bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureManager()
			if err != nil {
				return err
			}
			if clear {
				if ctx.reg == nil {
					return fmt.Errorf("recent-projects registry unavailable")
				}
				if err := ctx.reg.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cleared recent projects")
				return nil
			}

			entries, err := mgr.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recent projects")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.Name,
					entry.Path,
					entry.LastOpened.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Name", "Path", "Last Opened"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum entries to show")
	cmd.Flags().BoolVar(&clear, "clear", false, "Forget all recent projects")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newProjectDiscoverCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find projects under the configured library roots",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureManager()
			if err != nil {
				return err
			}
			entries := mgr.Discover()
			if asJSON {
				return writeJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{entry.Name, entry.Path})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Name", "Path"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newProjectForgetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "forget PATH",
		Short: "Remove a project from the recent list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureManager(); err != nil {
				return err
			}
			if ctx.reg == nil {
				return fmt.Errorf("recent-projects registry unavailable")
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if err := ctx.reg.Remove(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Forgot %s\n", path)
			return nil
		},
	}
}
