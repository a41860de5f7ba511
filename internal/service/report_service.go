package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/ehtishamsajjad/tm/internal/model"
)

const (
	iconDefault = "🟢"
	iconDue     = "⏳"
	iconOverdue = "⚠️"
	digestDays  = 7
)

// ReportService builds human-readable digests for scheduled notifications.
type ReportService struct {
	taskSvc *TaskService
}

func NewReportService(taskSvc *TaskService) *ReportService {
	return &ReportService{taskSvc: taskSvc}
}

// Digest renders the user's progress and open tasks as Telegram HTML.
func (s *ReportService) Digest(ctx context.Context, user model.User, now time.Time) (string, error) {
	tasks, err := s.taskSvc.ListTasks(ctx, user.ID)
	if err != nil {
		return "", err
	}

	var open []model.Task
	for _, task := range tasks {
		if task.Status != model.StatusCompleted {
			open = append(open, task)
		}
	}
	sortByDeadline(open)

	sum := Summarize(tasks)
	recent := FilterWindow(Aggregate(tasks), digestDays, now)

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily report</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("02.01.2006")))
	builder.WriteString(fmt.Sprintf("📊 %d tasks · %d todo · %d in progress · %d done (%.1f%%)\n",
		sum.Total, sum.Pending, sum.Active, sum.Completed, sum.CompletionRate))

	builder.WriteString(fmt.Sprintf("\n📈 <b>Last %d days</b>\n", digestDays))
	if len(recent) == 0 {
		builder.WriteString("— no new tasks\n")
	} else {
		for _, bucket := range recent {
			builder.WriteString(fmt.Sprintf("%s: +%d, %d active, %d done\n",
				bucket.Date, bucket.Total, bucket.Active, bucket.Completed))
		}
	}

	builder.WriteString("\n🔥 <b>Open tasks</b>\n")
	if len(open) == 0 {
		builder.WriteString("— nothing open\n")
	} else {
		for _, task := range open {
			builder.WriteString(FormatTask(task, now))
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

// sortByDeadline puts the earliest deadline first and tasks without one last,
// newest first among those.
func sortByDeadline(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		switch {
		case tasks[i].Deadline == nil && tasks[j].Deadline == nil:
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		case tasks[i].Deadline == nil:
			return false
		case tasks[j].Deadline == nil:
			return true
		default:
			return tasks[i].Deadline.Before(*tasks[j].Deadline)
		}
	})
}

// FormatTask renders one task line with a deadline marker, tags and description.
func FormatTask(task model.Task, now time.Time) string {
	var sb strings.Builder

	icon := iconDefault
	if task.Deadline != nil {
		d := task.Deadline.In(now.Location())
		switch {
		case now.After(d):
			icon = iconOverdue
		case d.Sub(now) <= 48*time.Hour:
			icon = iconDue
		}
	}

	sb.WriteString(fmt.Sprintf("%s %s", icon, html.EscapeString(strings.TrimSpace(task.Title))))
	if task.Priority == model.PriorityHigh {
		sb.WriteString(" ❗")
	}

	if len(task.Tags) > 0 {
		names := make([]string, 0, len(task.Tags))
		for _, tag := range task.Tags {
			names = append(names, "#"+html.EscapeString(tag.Name))
		}
		sb.WriteString(fmt.Sprintf(" <i>%s</i>", strings.Join(names, " ")))
	}

	if task.Deadline != nil {
		d := task.Deadline.In(now.Location())
		if now.After(d) {
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s, <b>overdue</b>", d.Format("2006-01-02")))
		} else {
			daysLeft := int(d.Sub(now).Hours()/24) + 1
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s · ≈%d d left", d.Format("2006-01-02"), daysLeft))
		}
	}

	if task.Description != nil && strings.TrimSpace(*task.Description) != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(strings.TrimSpace(*task.Description))))
	}

	sb.WriteByte('\n')
	return sb.String()
}
