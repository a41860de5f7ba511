package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ehtishamsajjad/tm/internal/model"
	"github.com/ehtishamsajjad/tm/internal/service"
)

const (
	cbMovePrefix   = "move:"
	cbDeletePrefix = "delete:"
)

var columnLabels = map[model.TaskStatus]string{
	model.StatusTodo:       "📝 To do",
	model.StatusInProgress: "🚧 In progress",
	model.StatusCompleted:  "✅ Completed",
}

// renderBoard lists tasks column by column. Every card gets a row of buttons
// moving it to the other columns plus a delete button.
func renderBoard(tasks []model.Task, now time.Time) (string, tgbotapi.InlineKeyboardMarkup) {
	byColumn := make(map[model.TaskStatus][]model.Task, len(model.Statuses))
	for _, task := range tasks {
		byColumn[task.Status] = append(byColumn[task.Status], task)
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Board</b>\n\n")

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, column := range model.Statuses {
		cards := byColumn[column]
		builder.WriteString(fmt.Sprintf("<b>%s</b> (%d)\n", columnLabels[column], len(cards)))
		for _, task := range cards {
			builder.WriteString(service.FormatTask(task, now))

			var row []tgbotapi.InlineKeyboardButton
			for _, target := range model.Statuses {
				if target == column {
					continue
				}
				label := fmt.Sprintf("%s → %s", shortTitle(task.Title, 12), columnLabels[target])
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, moveData(task.ID, target)))
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData("🗑", cbDeletePrefix+task.ID))
			rows = append(rows, row)
		}
		builder.WriteByte('\n')
	}

	return strings.TrimSpace(builder.String()), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func renderStats(rangeLabel string, sum service.Summary, buckets []service.ActivityBucket) string {
	var builder strings.Builder
	builder.WriteString("📊 <b>Stats</b>\n")
	builder.WriteString(fmt.Sprintf("Total %d · to do %d · in progress %d · done %d\n",
		sum.Total, sum.Pending, sum.Active, sum.Completed))
	builder.WriteString(fmt.Sprintf("Completion rate: <b>%.1f%%</b>\n", sum.CompletionRate))

	builder.WriteString(fmt.Sprintf("\n📈 <b>Created in the last %s</b>\n", rangeLabel))
	if len(buckets) == 0 {
		builder.WriteString("— nothing")
	}
	for _, bucket := range buckets {
		builder.WriteString(fmt.Sprintf("%s: +%d, %d active, %d done\n",
			bucket.Date, bucket.Total, bucket.Active, bucket.Completed))
	}
	return strings.TrimSpace(builder.String())
}

func moveData(taskID string, target model.TaskStatus) string {
	return cbMovePrefix + taskID + ":" + string(target)
}

// parseMoveData splits "move:<task id>:<column>".
func parseMoveData(data string) (taskID, column string, ok bool) {
	rest, found := strings.CutPrefix(data, cbMovePrefix)
	if !found {
		return "", "", false
	}
	idx := strings.LastIndex(rest, ":")
	if idx <= 0 || idx == len(rest)-1 {
		return "", "", false
	}
	return rest[:idx], rest[idx+1:], true
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}

	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		b.answer(cb, "")
		return err
	}

	switch {
	case strings.HasPrefix(cb.Data, cbMovePrefix):
		taskID, column, ok := parseMoveData(cb.Data)
		if !ok {
			b.answer(cb, "")
			return nil
		}
		// The column id goes through the same drop evaluation as a board drag.
		_, moved, err := b.tasks.MoveTask(ctx, user.ID, taskID, column)
		if err != nil {
			b.answer(cb, "Could not move the task")
			return b.userError(cb.Message.Chat.ID, err)
		}
		if moved {
			b.answer(cb, "Moved")
		} else {
			b.answer(cb, "Already there")
		}
	case strings.HasPrefix(cb.Data, cbDeletePrefix):
		taskID := strings.TrimPrefix(cb.Data, cbDeletePrefix)
		if err := b.tasks.DeleteTask(ctx, user.ID, taskID); err != nil {
			b.answer(cb, "Could not delete the task")
			return b.userError(cb.Message.Chat.ID, err)
		}
		b.answer(cb, "Deleted")
	default:
		b.answer(cb, "")
		return nil
	}

	return b.refreshBoard(ctx, cb.Message, user.ID)
}

// refreshBoard redraws the board message the buttons belong to.
func (b *Bot) refreshBoard(ctx context.Context, msg *tgbotapi.Message, userID string) error {
	tasks, err := b.tasks.ListTasks(ctx, userID)
	if err != nil {
		return b.userError(msg.Chat.ID, err)
	}

	var edit tgbotapi.EditMessageTextConfig
	if len(tasks) == 0 {
		edit = tgbotapi.NewEditMessageText(msg.Chat.ID, msg.MessageID, "Your board is empty. Add a task with /newtask.")
	} else {
		text, keyboard := renderBoard(tasks, b.now())
		edit = tgbotapi.NewEditMessageTextAndMarkup(msg.Chat.ID, msg.MessageID, text, keyboard)
	}
	edit.ParseMode = tgbotapi.ModeHTML
	_, err = b.api.Send(edit)
	return err
}

func (b *Bot) answer(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		b.log.Warn("callback ack", zap.Error(err))
	}
}
