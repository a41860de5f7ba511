package bot

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ehtishamsajjad/tm/internal/service"
)

const helpText = "ℹ️ <b>Commands</b>\n" +
	"• /newtask &lt;title&gt; [#tag …] [!low|!medium|!high] — add a task\n" +
	"• /tasks — the board, with buttons to move or delete cards\n" +
	"• /tags — your tags\n" +
	"• /stats [7d|30d|90d] — activity and completion rate\n" +
	"• /report — the daily report right now\n" +
	"• /help — this message"

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	text := fmt.Sprintf("👋 Hi, %s!\n<b>I keep your task board.</b>\n\n%s",
		html.EscapeString(user.DisplayName()), helpText)
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	return b.sendText(msg.Chat.ID, helpText)
}

func (b *Bot) handleNewTask(ctx context.Context, msg *tgbotapi.Message) error {
	input, err := parseNewTask(msg.CommandArguments())
	if err != nil {
		return b.sendText(msg.Chat.ID, "Usage: /newtask Buy milk #home !high")
	}

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	task, err := b.tasks.CreateTask(ctx, user.ID, input)
	if err != nil {
		return b.userError(msg.Chat.ID, err)
	}

	return b.sendText(msg.Chat.ID, "✅ Task added\n"+service.FormatTask(*task, b.now()))
}

func (b *Bot) handleListTasks(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	tasks, err := b.tasks.ListTasks(ctx, user.ID)
	if err != nil {
		return b.userError(msg.Chat.ID, err)
	}
	if len(tasks) == 0 {
		return b.sendText(msg.Chat.ID, "Your board is empty. Add a task with /newtask.")
	}

	text, keyboard := renderBoard(tasks, b.now())
	return b.sendWithReplyMarkup(msg.Chat.ID, text, keyboard)
}

func (b *Bot) handleTags(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	tags, err := b.tasks.ListTags(ctx, user.ID)
	if err != nil {
		return b.userError(msg.Chat.ID, err)
	}
	if len(tags) == 0 {
		return b.sendText(msg.Chat.ID, "No tags yet. Add one with /newtask Title #tag.")
	}

	var builder strings.Builder
	builder.WriteString("🏷 <b>Tags</b>\n")
	for _, tag := range tags {
		builder.WriteString(fmt.Sprintf("• #%s (%s)\n", html.EscapeString(tag.Name), html.EscapeString(tag.Color)))
	}
	return b.sendText(msg.Chat.ID, strings.TrimSpace(builder.String()))
}

func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) error {
	rangeLabel := strings.TrimSpace(msg.CommandArguments())
	if rangeLabel == "" {
		rangeLabel = "90d"
	}
	days, err := service.ParseWindow(rangeLabel)
	if err != nil {
		return b.sendText(msg.Chat.ID, "Range must be 7d, 30d or 90d.")
	}

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	buckets, err := b.tasks.Activity(ctx, user.ID, days, b.now())
	if err != nil {
		return b.userError(msg.Chat.ID, err)
	}
	sum, err := b.tasks.Summary(ctx, user.ID)
	if err != nil {
		return b.userError(msg.Chat.ID, err)
	}

	return b.sendText(msg.Chat.ID, renderStats(rangeLabel, sum, buckets))
}

func (b *Bot) handleReport(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	text, err := b.reports.Digest(ctx, *user, b.now())
	if err != nil {
		return b.userError(msg.Chat.ID, err)
	}
	return b.sendText(msg.Chat.ID, text)
}
