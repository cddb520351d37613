package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mantara-io/gworkspace/tasks"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Work with Google Tasks",
}

var tasksListsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Show the user's task lists",
	RunE:  runTasksLists,
}

var tasksListCmd = &cobra.Command{
	Use:   "list [tasklist-id]",
	Short: "Show tasks in one task list",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksList,
}

var tasksAddCmd = &cobra.Command{
	Use:   "add [tasklist-id] [title]",
	Short: "Add a task to a task list",
	Args:  cobra.ExactArgs(2),
	RunE:  runTasksAdd,
}

// Flags for tasks commands.
var (
	tasksAccount       string
	tasksShowCompleted bool
	tasksNotes         string
)

func init() {
	for _, c := range []*cobra.Command{tasksListsCmd, tasksListCmd, tasksAddCmd} {
		c.Flags().StringVar(&tasksAccount, "account", "", "Stored account to act as")
	}
	tasksListCmd.Flags().BoolVar(
		&tasksShowCompleted, "show-completed", false, "Include completed tasks")
	tasksAddCmd.Flags().StringVar(
		&tasksNotes, "notes", "", "Notes for the new task")

	tasksCmd.AddCommand(tasksListsCmd)
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksAddCmd)
	rootCmd.AddCommand(tasksCmd)
}

func runTasksLists(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	store, err := openData()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := loadRecord(ctx, store, tasksAccount)
	if err != nil {
		return err
	}
	mgr := clientForRecord(store, rec)

	lists, err := tasks.NewService(mgr).TaskLists().Request(ctx)
	if err != nil {
		return err
	}
	if len(lists.Items) == 0 {
		cmd.Println("No task lists.")
		return nil
	}
	for i := range lists.Items {
		cmd.Printf("%s  %s\n", lists.Items[i].ID, lists.Items[i].Title)
	}
	return nil
}

func runTasksList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := openData()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := loadRecord(ctx, store, tasksAccount)
	if err != nil {
		return err
	}
	mgr := clientForRecord(store, rec)

	items, err := tasks.NewService(mgr).List(args[0]).
		ShowCompleted(tasksShowCompleted).
		Request(ctx)
	if err != nil {
		return err
	}
	if len(items.Items) == 0 {
		cmd.Println("No tasks.")
		return nil
	}
	for i := range items.Items {
		t := &items.Items[i]
		marker := "[ ]"
		if t.Status == "completed" {
			marker = "[x]"
		}
		if t.Due != "" {
			cmd.Printf("%s %s (due %s)\n", marker, t.Title, t.Due)
		} else {
			cmd.Printf("%s %s\n", marker, t.Title)
		}
	}
	return nil
}

func runTasksAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := openData()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := loadRecord(ctx, store, tasksAccount)
	if err != nil {
		return err
	}
	mgr := clientForRecord(store, rec)

	builder := tasks.NewService(mgr).Insert(args[0]).Title(args[1])
	if tasksNotes != "" {
		builder.Notes(tasksNotes)
	}
	created, err := builder.Request(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Created task: %s\n", created.ID)
	return nil
}
