package bot

import (
	"errors"
	"strings"

	"github.com/ehtishamsajjad/tm/internal/model"
	"github.com/ehtishamsajjad/tm/internal/service"
)

var errEmptyTitle = errors.New("task title is empty")

// parseNewTask reads "/newtask" arguments: words starting with # are tags,
// a trailing !low, !medium or !high sets the priority, the rest is the title.
func parseNewTask(args string) (service.CreateTaskInput, error) {
	var input service.CreateTaskInput
	var title []string

	for _, word := range strings.Fields(args) {
		switch {
		case len(word) > 1 && strings.HasPrefix(word, "#"):
			input.Tags = append(input.Tags, strings.TrimPrefix(word, "#"))
		case len(word) > 1 && strings.HasPrefix(word, "!") && model.Priority(word[1:]).Valid():
			input.Priority = model.Priority(word[1:])
		default:
			title = append(title, word)
		}
	}

	input.Title = strings.Join(title, " ")
	if input.Title == "" {
		return service.CreateTaskInput{}, errEmptyTitle
	}
	return input, nil
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
