package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ehtishamsajjad/tm/internal/model"
)

type exportTask struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Status      string   `yaml:"status"`
	Priority    string   `yaml:"priority"`
	Deadline    string   `yaml:"deadline,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	CreatedAt   string   `yaml:"created_at"`
	UpdatedAt   string   `yaml:"updated_at"`
}

type exportDoc struct {
	User       string       `yaml:"user"`
	ExportedAt string       `yaml:"exported_at"`
	Tasks      []exportTask `yaml:"tasks"`
}

func newExportCmd(st *state) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print a user's tasks as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(st.cfg, st.log)
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.users.FindByID(cmd.Context(), userID)
			if err != nil {
				return err
			}
			tasks, err := a.tasks.ListTasks(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			return writeExport(cmd.OutOrStdout(), buildExport(*user, tasks, time.Now()))
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func buildExport(user model.User, tasks []model.Task, now time.Time) exportDoc {
	doc := exportDoc{
		User:       user.ID,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Tasks:      make([]exportTask, 0, len(tasks)),
	}
	for _, task := range tasks {
		item := exportTask{
			ID:        task.ID,
			Title:     task.Title,
			Status:    string(task.Status),
			Priority:  string(task.Priority),
			CreatedAt: task.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt: task.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if task.Description != nil {
			item.Description = *task.Description
		}
		if task.Deadline != nil {
			item.Deadline = task.Deadline.UTC().Format(time.RFC3339)
		}
		for _, tag := range task.Tags {
			item.Tags = append(item.Tags, tag.Name)
		}
		doc.Tasks = append(doc.Tasks, item)
	}
	return doc
}

func writeExport(w io.Writer, doc exportDoc) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return enc.Close()
}
