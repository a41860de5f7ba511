package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ehtishamsajjad/tm/internal/model"
)

const (
	dayLayout         = "2006-01-02"
	DefaultWindowDays = 90
)

// windows are the trailing ranges offered by the dashboard.
var windows = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

// ActivityBucket counts the tasks created on one UTC day. Active and
// Completed reflect the tasks' current status, not when they changed.
type ActivityBucket struct {
	Date      string
	Total     int
	Active    int
	Completed int
}

// Summary feeds the dashboard cards.
type Summary struct {
	Total          int
	Pending        int
	Active         int
	Completed      int
	CompletionRate float64
}

// Aggregate buckets tasks by creation day, ascending by date.
func Aggregate(tasks []model.Task) []ActivityBucket {
	byDay := make(map[string]*ActivityBucket)
	for _, task := range tasks {
		day := task.CreatedAt.UTC().Format(dayLayout)
		bucket, ok := byDay[day]
		if !ok {
			bucket = &ActivityBucket{Date: day}
			byDay[day] = bucket
		}
		bucket.Total++
		switch task.Status {
		case model.StatusInProgress:
			bucket.Active++
		case model.StatusCompleted:
			bucket.Completed++
		}
	}

	buckets := make([]ActivityBucket, 0, len(byDay))
	for _, bucket := range byDay {
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	return buckets
}

// ParseWindow turns "7d", "30d" or "90d" into a day count. Empty means the default.
func ParseWindow(raw string) (int, error) {
	if raw == "" {
		return DefaultWindowDays, nil
	}
	days, ok := windows[raw]
	if !ok {
		return 0, model.NewValidationError("range", fmt.Sprintf("unsupported range %q", raw))
	}
	return days, nil
}

// FilterWindow keeps buckets whose day starts no earlier than days before now.
func FilterWindow(buckets []ActivityBucket, days int, now time.Time) []ActivityBucket {
	start := now.UTC().AddDate(0, 0, -days)
	out := make([]ActivityBucket, 0, len(buckets))
	for _, bucket := range buckets {
		day, err := time.Parse(dayLayout, bucket.Date)
		if err != nil {
			continue
		}
		if !day.Before(start) {
			out = append(out, bucket)
		}
	}
	return out
}

func Summarize(tasks []model.Task) Summary {
	var sum Summary
	for _, task := range tasks {
		sum.Total++
		switch task.Status {
		case model.StatusTodo:
			sum.Pending++
		case model.StatusInProgress:
			sum.Active++
		case model.StatusCompleted:
			sum.Completed++
		}
	}
	if sum.Total > 0 {
		rate := float64(sum.Completed) / float64(sum.Total) * 100
		sum.CompletionRate = math.Round(rate*10) / 10
	}
	return sum
}

// Activity returns the user's creation-day buckets within the trailing window.
func (s *TaskService) Activity(ctx context.Context, userID string, days int, now time.Time) ([]ActivityBucket, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FilterWindow(Aggregate(tasks), days, now), nil
}

func (s *TaskService) Summary(ctx context.Context, userID string) (Summary, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(tasks), nil
}
