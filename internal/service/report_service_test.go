package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ehtishamsajjad/tm/internal/model"
)

func TestFormatTask(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	soon := now.Add(24 * time.Hour)
	past := now.Add(-time.Hour)

	plain := FormatTask(model.Task{Title: "Buy <milk>"}, now)
	require.Equal(t, "🟢 Buy &lt;milk&gt;\n", plain)

	due := FormatTask(model.Task{
		Title:       "Ship",
		Priority:    model.PriorityHigh,
		Deadline:    &soon,
		Description: strPtr(" final build "),
		Tags:        []model.Tag{{Name: "work"}, {Name: "q1"}},
	}, now)
	require.True(t, strings.HasPrefix(due, "⏳ Ship ❗ <i>#work #q1</i>"))
	require.Contains(t, due, "due 2024-01-11 · ≈2 d left")
	require.Contains(t, due, "📝 final build")

	overdue := FormatTask(model.Task{Title: "Late", Deadline: &past}, now)
	require.True(t, strings.HasPrefix(overdue, "⚠️ Late"))
	require.Contains(t, overdue, "<b>overdue</b>")
}

func TestSortByDeadline(t *testing.T) {
	early := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{Title: "no deadline old", CreatedAt: t0},
		{Title: "late", Deadline: &late},
		{Title: "no deadline new", CreatedAt: t0.Add(time.Hour)},
		{Title: "early", Deadline: &early},
	}

	sortByDeadline(tasks)

	titles := make([]string, 0, len(tasks))
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	require.Equal(t, []string{"early", "late", "no deadline new", "no deadline old"}, titles)
}

func TestDigest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateTask(ctx, f.user.ID, CreateTaskInput{Title: "open one", Tags: []string{"home"}})
	require.NoError(t, err)
	_, err = f.svc.CreateTask(ctx, f.user.ID, CreateTaskInput{Title: "done one", Status: model.StatusCompleted})
	require.NoError(t, err)

	digest, err := NewReportService(f.svc).Digest(ctx, *f.user, t0.Add(2*time.Hour))
	require.NoError(t, err)

	require.Contains(t, digest, "<b>Daily report</b>")
	require.Contains(t, digest, "01.01.2024")
	require.Contains(t, digest, "2 tasks · 1 todo · 0 in progress · 1 done (50.0%)")
	require.Contains(t, digest, "2024-01-01: +2, 0 active, 1 done")
	require.Contains(t, digest, "open one <i>#home</i>")
	require.NotContains(t, digest, "done one")
}

func TestDigest_Empty(t *testing.T) {
	f := newFixture(t)

	digest, err := NewReportService(f.svc).Digest(context.Background(), *f.user, t0)
	require.NoError(t, err)
	require.Contains(t, digest, "no new tasks")
	require.Contains(t, digest, "nothing open")
}
