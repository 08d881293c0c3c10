package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vogue/internal/versions"
)

func newVersionCommand(ctx *commandContext) *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Record and list entity versions",
	}

	versionCmd.AddCommand(newVersionAddCommand(ctx))
	versionCmd.AddCommand(newVersionPlaceholderCommand(ctx))
	versionCmd.AddCommand(newVersionListCommand(ctx))

	return versionCmd
}

func newVersionAddCommand(ctx *commandContext) *cobra.Command {
	var user string
	var comment string
	var taskName string
	var appName string
	var identifier string

	cmd := &cobra.Command{
		Use:   "add ENTITY SOURCE",
		Short: "Publish a file as the entity's next version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureProject(cmd)
			if err != nil {
				return err
			}
			if user == "" {
				user = currentUser()
			}

			var opts []versions.Option
			if identifier != "" {
				opts = append(opts, versions.WithIdentifier(identifier))
			}
			v, err := mgr.AddVersion(cmd.Context(), args[0], appName, taskName, user, comment, args[1], opts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %s of %s -> %s\n", v.Version, args[0], v.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "Author (defaults to $USER)")
	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Version comment")
	cmd.Flags().StringVarP(&taskName, "task", "t", "", "Associated task name")
	cmd.Flags().StringVarP(&appName, "app", "a", "", "Application the file came from")
	cmd.Flags().StringVar(&identifier, "version", "", "Explicit identifier (vNNN); auto-assigned when omitted")
	return cmd
}

func newVersionPlaceholderCommand(ctx *commandContext) *cobra.Command {
	var user string
	var comment string
	var taskName string
	var appName string

	cmd := &cobra.Command{
		Use:   "placeholder ENTITY",
		Short: "Reserve the entity's next version without a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureProject(cmd)
			if err != nil {
				return err
			}
			if user == "" {
				user = currentUser()
			}

			var opts []versions.Option
			if taskName != "" {
				opts = append(opts, versions.WithTask(taskName))
			}
			if appName != "" {
				opts = append(opts, versions.WithApp(appName))
			}
			v, err := mgr.AddPlaceholder(cmd.Context(), args[0], user, comment, opts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reserved %s of %s\n", v.Version, args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "Author (defaults to $USER)")
	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Version comment")
	cmd.Flags().StringVarP(&taskName, "task", "t", "", "Associated task name")
	cmd.Flags().StringVarP(&appName, "app", "a", "", "Application the version belongs to")
	return cmd
}

func newVersionListCommand(ctx *commandContext) *cobra.Command {
	var taskName string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list ENTITY",
		Short: "List an entity's versions in creation order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureProject(cmd)
			if err != nil {
				return err
			}
			list, err := mgr.ListVersions(args[0], taskName)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, list)
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No versions")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, v := range list {
				rows = append(rows, []string{
					v.Version,
					v.User,
					v.Date.Local().Format(time.DateTime),
					v.TaskName,
					v.Comment,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Version", "User", "Date", "Task", "Comment"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&taskName, "task", "t", "", "Only versions associated with this task")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func currentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "unknown"
}
