package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vogue/internal/project"
)

func newTaskCommand(ctx *commandContext) *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage entity tasks",
	}

	taskCmd.AddCommand(newTaskAddCommand(ctx))
	taskCmd.AddCommand(newTaskListCommand(ctx))

	return taskCmd
}

func newTaskAddCommand(ctx *commandContext) *cobra.Command {
	var entityKey string
	var department string
	var status string
	var description string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Attach a task to an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureProject(cmd)
			if err != nil {
				return err
			}
			task := project.Task{
				Name:        args[0],
				Department:  department,
				Status:      status,
				Description: description,
				EntityKey:   entityKey,
			}
			if entityKey != "" {
				if _, _, ok := project.SplitShotKey(entityKey); ok {
					task.EntityKind = project.KindShot
				} else {
					task.EntityKind = project.KindAsset
				}
			}
			if err := mgr.AddTask(cmd.Context(), task); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&entityKey, "entity", "e", "", "Owning entity key (asset name or sequence/shot)")
	cmd.Flags().StringVarP(&department, "department", "d", "", "Department responsible for the task")
	cmd.Flags().StringVarP(&status, "status", "s", "", fmt.Sprintf("Task status (%s)", strings.Join(project.TaskStatuses(), ", ")))
	cmd.Flags().StringVar(&description, "description", "", "Free-form task description")
	return cmd
}

func newTaskListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.ensureProject(cmd)
			if err != nil {
				return err
			}
			tasks := mgr.Tasks()
			if asJSON {
				return writeJSON(cmd, tasks)
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks")
				return nil
			}

			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				rows = append(rows, []string{t.Name, t.EntityKey, t.Department, t.Status})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Task", "Entity", "Department", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
