// taskctl is a terminal client for the Taskloop API.
//
// The session token from signup/login is stored under the user config dir
// and attached to every subsequent command.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskloop/taskloop/client"
)

var baseURL string

func main() {
	root := &cobra.Command{
		Use:           "taskctl",
		Short:         "Manage your Taskloop tasks from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&baseURL, "url", defaultBaseURL(), "API base URL")

	root.AddCommand(
		newSignupCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newMeCmd(),
		newTaskCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func defaultBaseURL() string {
	if u := os.Getenv("TASKLOOP_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func newClient() *client.Client {
	return client.New(baseURL, client.WithToken(loadToken()))
}

func newSignupCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()
			s, err := c.Signup(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			if err := saveToken(s.Token); err != nil {
				return err
			}
			fmt.Printf("welcome, %s (%s)\n", s.User.Name, s.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "your name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (min 6 characters)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()
			s, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := saveToken(s.Token); err != nil {
				return err
			}
			fmt.Printf("logged in as %s\n", s.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := clearToken(); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := newClient().Me(cmd.Context())
			if err != nil {
				// A dead token is useless; drop it so the next command
				// prompts a clean login instead of failing the same way.
				if client.IsUnauthorized(err) {
					_ = clearToken()
					return errors.New("session expired, run taskctl login")
				}
				return err
			}
			fmt.Printf("%s <%s>\nmember since %s\n", u.Name, u.Email, u.CreatedAt.Format("2006-01-02"))
			return nil
		},
	}
}

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Create, list, and update tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(),
		newTaskListCmd(),
		newTaskGetCmd(),
		newTaskEditCmd(),
		newTaskDoneCmd(),
		newTaskRmCmd(),
	)
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := newClient().CreateTask(cmd.Context(), client.CreateTaskInput{
				Title:       args[0],
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created %s\n", t.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	return cmd
}

func newTaskListCmd() *cobra.Command {
	var search, status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := newClient().ListTasks(cmd.Context(), client.ListTasksOptions{
				Search: search,
				Status: status,
			})
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("no tasks")
				return nil
			}
			for _, t := range tasks {
				fmt.Printf("%s  %s  %s\n", t.ID, mark(t.Completed), t.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "filter by title substring")
	cmd.Flags().StringVar(&status, "status", "", "completed or pending")
	return cmd
}

func newTaskGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := newClient().GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s\n", mark(t.Completed), t.Title)
			if t.Description != "" {
				fmt.Println(t.Description)
			}
			fmt.Printf("created %s\n", t.CreatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func newTaskEditCmd() *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update a task's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only flags the user actually set become part of the update.
			var input client.UpdateTaskInput
			if cmd.Flags().Changed("title") {
				input.Title = &title
			}
			if cmd.Flags().Changed("description") {
				input.Description = &description
			}
			if input.Title == nil && input.Description == nil {
				return errors.New("nothing to update, pass --title or --description")
			}

			t, err := newClient().UpdateTask(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}
			fmt.Printf("updated %s\n", t.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	return cmd
}

func newTaskDoneCmd() *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task completed (or pending again with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			completed := !undo
			t, err := newClient().UpdateTask(cmd.Context(), args[0], client.UpdateTaskInput{
				Completed: &completed,
			})
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s\n", mark(t.Completed), t.Title)
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "mark the task pending instead")
	return cmd
}

func newTaskRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}
}

func mark(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// ---- token storage ----

func tokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, "taskctl", "token"), nil
}

func loadToken() string {
	path, err := tokenPath()
	if err != nil {
		return ""
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func saveToken(tok string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(tok+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func clearToken() error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
