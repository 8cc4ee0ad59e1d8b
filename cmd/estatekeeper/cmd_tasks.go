package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"estatekeeper/internal/deadline"
	"estatekeeper/internal/export"
	"estatekeeper/internal/types"
)

var (
	taskStatusFilter string
	taskDue          string
	taskCategory     string
	taskDescription  string
	taskTags         []string
	taskAssignees    []string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage estate tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  taskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  taskAdd,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a task done",
	Args:  cobra.ExactArgs(1),
	RunE:  taskDone,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  taskRm,
}

var taskExportCmd = &cobra.Command{
	Use:   "export-csv [file]",
	Short: "Export tasks to a CSV file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  taskExportCSV,
}

func init() {
	taskListCmd.Flags().StringVar(&taskStatusFilter, "status", "", "Filter by status (Todo|InProgress|Blocked|Done)")

	f := taskAddCmd.Flags()
	f.StringVar(&taskDue, "due", "", "Due date (YYYY-MM-DD)")
	f.StringVar(&taskCategory, "category", string(types.CategoryOther), "Category (Legal|Tax|Property|Financial|Comms|Other)")
	f.StringVar(&taskDescription, "description", "", "Description")
	f.StringSliceVar(&taskTags, "tag", nil, "Tag (repeatable)")
	f.StringSliceVar(&taskAssignees, "assign", nil, "Assignee (repeatable)")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskRmCmd)
	taskCmd.AddCommand(taskExportCmd)
}

func taskList(cmd *cobra.Command, args []string) error {
	if taskStatusFilter != "" && !types.ValidStatus(types.TaskStatus(taskStatusFilter)) {
		return fmt.Errorf("invalid status %q", taskStatusFilter)
	}

	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	tasks, err := s.ListTasks()
	if err != nil {
		return err
	}

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tDUE\tCATEGORY\tTITLE")
	for _, task := range tasks {
		if taskStatusFilter != "" && string(task.Status) != taskStatusFilter {
			continue
		}
		due := orDash(task.DueDate)
		if task.Status != types.StatusDone && deadline.IsOverdue(task.DueDate, now) {
			due += " !"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", task.ID, task.Status, due, task.Category, task.Title)
	}
	return w.Flush()
}

func taskAdd(cmd *cobra.Command, args []string) error {
	if taskDue != "" {
		if _, ok := deadline.ParseDate(taskDue); !ok {
			return fmt.Errorf("invalid --due %q: expected YYYY-MM-DD", taskDue)
		}
	}

	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	now := nowISO()
	task := types.Task{
		ID:          uuid.NewString(),
		Title:       strings.Join(args, " "),
		Description: taskDescription,
		Category:    types.TaskCategory(taskCategory),
		Tags:        taskTags,
		Status:      types.StatusTodo,
		DueDate:     taskDue,
		AssignedTo:  taskAssignees,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if err := s.AddTask(task); err != nil {
		return err
	}
	fmt.Printf("Added task %s\n", task.ID)
	return nil
}

func taskDone(cmd *cobra.Command, args []string) error {
	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := s.GetTask(args[0])
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("task %s not found", args[0])
	}
	task.Status = types.StatusDone
	task.UpdatedAt = nowISO()
	if err := s.UpdateTask(*task); err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", task.Title)
	return nil
}

func taskRm(cmd *cobra.Command, args []string) error {
	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteTask(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted task %s\n", args[0])
	return nil
}

func taskExportCSV(cmd *cobra.Command, args []string) error {
	path := "estate-tasks.csv"
	if len(args) == 1 {
		path = args[0]
	}

	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	tasks, err := s.ListTasks()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WriteTasksCSV(f, tasks); err != nil {
		return err
	}
	fmt.Printf("Wrote %d tasks to %s\n", len(tasks), path)
	return nil
}
