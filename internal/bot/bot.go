package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ehtishamsajjad/tm/internal/model"
	"github.com/ehtishamsajjad/tm/internal/repository"
	"github.com/ehtishamsajjad/tm/internal/service"
)

const (
	menuLabelTasks = "📋 Tasks"
	menuLabelTags  = "🏷 Tags"
	menuLabelStats = "📊 Stats"
	menuLabelHelp  = "ℹ️ Help"
)

// Bot aggregates Telegram API with services.
type Bot struct {
	api     *tgbotapi.BotAPI
	users   *repository.UserRepository
	tasks   *service.TaskService
	reports *service.ReportService
	log     *zap.Logger
	now     func() time.Time
}

func New(token string, users *repository.UserRepository, tasks *service.TaskService, reports *service.ReportService, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Info("bot authorized", zap.String("account", api.Self.UserName))

	return &Bot{
		api:     api,
		users:   users,
		tasks:   tasks,
		reports: reports,
		log:     log,
		now:     time.Now,
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				b.log.Error("handle callback", zap.Error(err))
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				b.log.Error("handle message", zap.Error(err))
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if msg.IsCommand() {
		b.log.Debug("command",
			zap.Int64("telegram_id", msg.From.ID),
			zap.String("command", msg.Command()),
			zap.String("args", msg.CommandArguments()),
		)
		return b.handleCommand(ctx, msg)
	}

	switch strings.TrimSpace(msg.Text) {
	case menuLabelTasks:
		return b.handleListTasks(ctx, msg)
	case menuLabelTags:
		return b.handleTags(ctx, msg)
	case menuLabelStats:
		return b.handleStats(ctx, msg)
	case menuLabelHelp:
		return b.handleHelp(msg)
	}

	return b.sendText(msg.Chat.ID, "I did not get that. Use /newtask to add a task or /help for the command list.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.handleHelp(msg)
	case "newtask":
		return b.handleNewTask(ctx, msg)
	case "tasks":
		return b.handleListTasks(ctx, msg)
	case "tags":
		return b.handleTags(ctx, msg)
	case "stats":
		return b.handleStats(ctx, msg)
	case "report":
		return b.handleReport(ctx, msg)
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. See /help.")
	}
}

// SendReports delivers the digest to every user known through Telegram.
// A failure for one user is logged and does not stop the others.
func (b *Bot) SendReports(ctx context.Context) error {
	users, err := b.users.ListTelegramUsers(ctx)
	if err != nil {
		return err
	}
	now := b.now()
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if user.TelegramID == nil {
			continue
		}
		text, err := b.reports.Digest(ctx, user, now)
		if err != nil {
			b.log.Error("build digest", zap.String("user_id", user.ID), zap.Error(err))
			continue
		}
		if err := b.sendText(*user.TelegramID, text); err != nil {
			b.log.Error("send digest", zap.String("user_id", user.ID), zap.Error(err))
		}
	}
	return nil
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	return b.users.UpsertFromTelegram(ctx, from.ID, from.FirstName, from.LastName, from.UserName)
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

// userError turns a service error into a chat reply. Storage failures are
// logged and reported generically.
func (b *Bot) userError(chatID int64, err error) error {
	switch {
	case errors.Is(err, model.ErrValidation):
		return b.sendText(chatID, "⚠️ "+html.EscapeString(err.Error()))
	case errors.Is(err, model.ErrNotFound):
		return b.sendText(chatID, "Task not found.")
	default:
		b.log.Error("bot request failed", zap.Error(err))
		return b.sendText(chatID, "Something went wrong, try again later.")
	}
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelTasks),
			tgbotapi.NewKeyboardButton(menuLabelTags),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelStats),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
