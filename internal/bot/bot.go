package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dayplanner/internal/repository"
	"dayplanner/internal/service"
	"dayplanner/pkg/logx"
)

type conversationStage int

const (
	stageNone conversationStage = iota
	stageCollecting
	stageProcessing
)

const (
	cbRemovePrefix = "remove:"
	cbReset        = "reset"
)

const (
	btnGenerate       = "✅ Generate plan"
	btnCancelDialog   = "⏪ Cancel"
	btnPlanAnother    = "🔄 Plan another day"
	menuLabelPlan     = "📝 Plan my day"
	menuLabelCategory = "📂 Categories"
	menuLabelHelp     = "ℹ️ Help"
	maxTasks          = 30
	maxTaskLen        = 200
)

// anyVersion skips the list version check on removal.
const anyVersion = -1

var (
	errNoConversation = errors.New("no task list in progress")
	errBusy           = errors.New("plan already in progress")
	errStaleList      = errors.New("task list changed since that message")
)

// conversationState is one chat's task list. version grows with every edit
// so buttons on older list messages can be recognised.
type conversationState struct {
	stage   conversationStage
	tasks   []string
	version int
}

// botAPI is the part of tgbotapi.BotAPI the bot uses.
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot aggregates Telegram API with services.
type Bot struct {
	api           botAPI
	userRepo      *repository.UserRepository
	planSvc       *service.PlanService
	categorySvc   *service.CategoryService
	reminderSvc   *service.ReminderService
	log           logx.Logger
	conversations map[int64]*conversationState
	mu            sync.Mutex
	inflight      sync.WaitGroup
}

func New(token string, userRepo *repository.UserRepository, planSvc *service.PlanService, categorySvc *service.CategoryService, reminderSvc *service.ReminderService, log logx.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log = log.With(logx.String("comp", "bot"))
	log.Info("bot authorized", logx.String("account", api.Self.UserName))

	return newBot(api, userRepo, planSvc, categorySvc, reminderSvc, log), nil
}

func newBot(api botAPI, userRepo *repository.UserRepository, planSvc *service.PlanService, categorySvc *service.CategoryService, reminderSvc *service.ReminderService, log logx.Logger) *Bot {
	return &Bot{
		api:           api,
		userRepo:      userRepo,
		planSvc:       planSvc,
		categorySvc:   categorySvc,
		reminderSvc:   reminderSvc,
		log:           log,
		conversations: make(map[int64]*conversationState),
	}
}

// Start begins polling updates until ctx is cancelled. It returns once every
// plan still being crafted has finished.
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
				b.log.Error("handle callback", logx.Err(err))
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				b.log.Error("handle message", logx.Err(err))
			}
		}
	}

	b.inflight.Wait()
	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if !msg.IsCommand() && isCancelDialogInput(msg.Text) {
		return b.cancelCollection(msg.Chat.ID, msg.From.ID)
	}

	if !msg.IsCommand() {
		if handled, err := b.handleMenuAlias(ctx, msg); handled {
			return err
		}
	}

	if msg.IsCommand() {
		b.log.Info("command", logx.Int64("user", msg.From.ID), logx.String("cmd", msg.Command()), logx.String("args", msg.CommandArguments()))
		return b.handleCommand(ctx, msg)
	}

	if b.hasConversation(msg.From.ID) {
		return b.handleConversation(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "I didn't get that. Send /plan to list today's tasks, or /help for the commands.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.handleHelp(msg)
	case "plan":
		return b.startPlanConversation(ctx, msg)
	case "list":
		return b.handleList(msg)
	case "remove":
		return b.handleRemove(msg)
	case "generate":
		return b.submitPlan(ctx, msg.Chat.ID, msg.From.ID)
	case "categories":
		return b.handleCategories(msg)
	case "reset":
		if state, ok := b.snapshot(msg.From.ID); ok && state.stage == stageProcessing {
			return b.sendText(msg.Chat.ID, "⏳ Still crafting your schedule, hang on…")
		}
		b.clearConversation(msg.From.ID)
		return b.startPlanConversation(ctx, msg)
	case "cancel":
		return b.cancelCollection(msg.Chat.ID, msg.From.ID)
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. Have a look at /help.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	if err := b.ensureUser(ctx, msg); err != nil {
		return err
	}

	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "there"
	}

	text := fmt.Sprintf(
		"👋 Hi, %s!\n<b>Let's organize your day for maximum productivity.</b>\n\nCommands:\n"+
			"• /plan — list today's tasks\n"+
			"• /generate — build the schedule\n"+
			"• /categories — how tasks are grouped\n"+
			"• /help — hints",
		escape(name),
	)
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	text := "ℹ️ <b>Hints</b>\n" +
		"• /plan — start a task list, then send one task per message\n" +
		"• /list — show the tasks collected so far\n" +
		"• /remove &lt;n&gt; — drop task number n (e.g. /remove 2)\n" +
		"• /generate — build the schedule (or tap «" + btnGenerate + "»)\n" +
		"• /reset — throw the list away and plan another day\n" +
		"• /categories — keywords and start times of each category\n" +
		"• /cancel — stop the current list"
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) startPlanConversation(ctx context.Context, msg *tgbotapi.Message) error {
	if err := b.ensureUser(ctx, msg); err != nil {
		return err
	}
	if state, ok := b.snapshot(msg.From.ID); ok {
		switch {
		case state.stage == stageProcessing:
			return b.sendText(msg.Chat.ID, "⏳ Still crafting your schedule, hang on…")
		case len(state.tasks) > 0:
			return b.sendTaskList(msg.Chat.ID, state)
		}
	}

	b.log.Info("start plan conversation", logx.Int64("user", msg.From.ID))
	b.setConversation(msg.From.ID, &conversationState{stage: stageCollecting})
	return b.sendWithReplyMarkup(msg.Chat.ID,
		"📝 <b>What are your top priorities today?</b>\n"+
			"Send the tasks you want to accomplish, one per message, and I'll help you organize them optimally.\n"+
			"<i>E.g., Go for a 20 minute run</i>",
		collectKeyboard())
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state, _ := b.snapshot(msg.From.ID)

	switch state.stage {
	case stageNone:
		return b.sendText(msg.Chat.ID, "I didn't get that. Send /plan to list today's tasks, or /help for the commands.")
	case stageProcessing:
		return b.sendText(msg.Chat.ID, "⏳ Still crafting your schedule, hang on…")
	case stageCollecting:
		if isGenerateInput(msg.Text) {
			return b.submitPlan(ctx, msg.Chat.ID, msg.From.ID)
		}
		task := strings.TrimSpace(msg.Text)
		if task == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "A task can't be empty. Send some text, e.g. <i>Prepare slides</i>.", collectKeyboard())
		}
		if len([]rune(task)) > maxTaskLen {
			return b.sendWithReplyMarkup(msg.Chat.ID, fmt.Sprintf("That task is too long, keep it under %d characters.", maxTaskLen), collectKeyboard())
		}
		updated, err := b.addTask(msg.From.ID, task)
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, escape(err.Error()), collectKeyboard())
		}
		return b.sendTaskList(msg.Chat.ID, updated)
	default:
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "The list was reset. Start again with /plan.")
	}
}

func (b *Bot) handleList(msg *tgbotapi.Message) error {
	state, ok := b.snapshot(msg.From.ID)
	if !ok || len(state.tasks) == 0 {
		return b.sendText(msg.Chat.ID, "No tasks yet. Start a list with /plan.")
	}
	return b.sendTaskList(msg.Chat.ID, state)
}

func (b *Bot) handleRemove(msg *tgbotapi.Message) error {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		return b.sendText(msg.Chat.ID, "Tell me which task to drop: /remove 2")
	}
	n, err := strconv.Atoi(args)
	if err != nil {
		return b.sendText(msg.Chat.ID, "The task number must be a number.")
	}
	return b.removeTaskAndRefresh(msg.Chat.ID, msg.From.ID, n, anyVersion)
}

func (b *Bot) removeTaskAndRefresh(chatID, userID int64, n, version int) error {
	updated, err := b.removeTask(userID, n, version)
	switch {
	case errors.Is(err, errNoConversation):
		return b.sendText(chatID, "No tasks yet. Start a list with /plan.")
	case errors.Is(err, errStaleList):
		current, _ := b.snapshot(userID)
		if err := b.sendText(chatID, "That list is out of date, here is the current one."); err != nil {
			return err
		}
		return b.sendTaskList(chatID, current)
	case err != nil:
		return b.sendWithReplyMarkup(chatID, escape(err.Error()), collectKeyboard())
	case len(updated.tasks) == 0:
		return b.sendWithReplyMarkup(chatID, "The list is empty now. Send a task to add it.", collectKeyboard())
	default:
		return b.sendTaskList(chatID, updated)
	}
}

func (b *Bot) handleCategories(msg *tgbotapi.Message) error {
	return b.sendText(msg.Chat.ID, formatCategories(b.categorySvc.List()))
}

// submitPlan switches the conversation to processing and crafts the plan in
// the background so the update loop keeps running.
func (b *Bot) submitPlan(ctx context.Context, chatID, userID int64) error {
	state, tasks, err := b.beginProcessing(userID)
	switch {
	case errors.Is(err, errNoConversation):
		return b.sendText(chatID, "No tasks yet. Start a list with /plan.")
	case errors.Is(err, errBusy):
		return b.sendText(chatID, "⏳ Still crafting your schedule, hang on…")
	case errors.Is(err, service.ErrEmptyPlan):
		return b.sendWithReplyMarkup(chatID, "Add at least one task first.", collectKeyboard())
	case err != nil:
		return err
	}

	msg := tgbotapi.NewMessage(chatID, "⏳ <b>Optimizing your schedule...</b>\nOur AI is crafting your perfect schedule...")
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if _, err := b.api.Send(msg); err != nil {
		b.resumeCollecting(state)
		return err
	}

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		if err := b.runPlan(ctx, chatID, userID, state, tasks); err != nil {
			b.log.Error("run plan", logx.Int64("user", userID), logx.Err(err))
		}
	}()
	return nil
}

// runPlan crafts the plan for state. Only state itself is cleared or resumed
// afterwards, never a list started in the meantime.
func (b *Bot) runPlan(ctx context.Context, chatID, userID int64, state *conversationState, tasks []string) error {
	plan, err := b.planSvc.Generate(ctx, service.PlanRequest{Tasks: tasks, RequesterID: userID})
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		b.resumeCollecting(state)
		return nil
	case errors.Is(err, service.ErrRateLimited):
		b.resumeCollecting(state)
		return b.sendWithReplyMarkup(chatID, "🐢 "+escape(err.Error())+". Your tasks are kept.", collectKeyboard())
	case err != nil:
		b.resumeCollecting(state)
		_ = b.sendWithReplyMarkup(chatID, "Could not build the schedule, please try again.", collectKeyboard())
		return err
	}

	b.finishConversation(userID, state)
	b.log.Info("plan sent", logx.Int64("user", userID), logx.String("plan_id", plan.ID))

	msg := tgbotapi.NewMessage(chatID, formatSchedule(plan.Result))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(btnPlanAnother, cbReset)),
	)
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil || cb.Message.Chat == nil {
		return nil
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Warn("callback ack", logx.Err(err))
	}

	chatID := cb.Message.Chat.ID
	data := cb.Data
	switch {
	case data == cbReset:
		if state, ok := b.snapshot(cb.From.ID); ok && state.stage == stageProcessing {
			return b.sendText(chatID, "⏳ Still crafting your schedule, hang on…")
		}
		b.log.Info("plan another day", logx.Int64("user", cb.From.ID))
		b.setConversation(cb.From.ID, &conversationState{stage: stageCollecting})
		return b.sendWithReplyMarkup(chatID, "📝 <b>What are your top priorities today?</b>\nSend one task per message.", collectKeyboard())
	case strings.HasPrefix(data, cbRemovePrefix):
		version, n, err := parseRemoveData(data)
		if err != nil {
			return fmt.Errorf("parse callback %q: %w", data, err)
		}
		return b.removeTaskAndRefresh(chatID, cb.From.ID, n, version)
	default:
		return nil
	}
}

// SendMorningPrompts asks every known user for today's priorities.
func (b *Bot) SendMorningPrompts(ctx context.Context) error {
	users, err := b.reminderSvc.Recipients(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := b.sendText(user.ChatID, b.reminderSvc.MorningPrompt(user, now)); err != nil {
			b.log.Warn("send morning prompt", logx.Int64("user", user.TelegramID), logx.Err(err))
		}
	}
	b.log.Info("morning prompts sent", logx.Int("users", len(users)))
	return nil
}

func (b *Bot) cancelCollection(chatID, userID int64) error {
	if state, ok := b.snapshot(userID); ok && state.stage == stageProcessing {
		return b.sendText(chatID, "⏳ Still crafting your schedule, hang on…")
	}
	b.clearConversation(userID)
	return b.sendText(chatID, "⏪ Task list cancelled. Send /plan whenever you're ready.")
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	text := strings.TrimSpace(strings.ToLower(msg.Text))
	switch text {
	case strings.ToLower(menuLabelPlan):
		return true, b.startPlanConversation(ctx, msg)
	case strings.ToLower(menuLabelCategory):
		return true, b.handleCategories(msg)
	case strings.ToLower(menuLabelHelp):
		return true, b.handleHelp(msg)
	default:
		return false, nil
	}
}

func (b *Bot) ensureUser(ctx context.Context, msg *tgbotapi.Message) error {
	_, err := b.userRepo.UpsertFromTelegram(ctx, msg.From.ID, msg.Chat.ID, msg.From.FirstName, msg.From.UserName)
	return err
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

func (b *Bot) sendTaskList(chatID int64, state conversationState) error {
	buttons := make([][]tgbotapi.InlineKeyboardButton, 0, len(state.tasks))
	for i, task := range state.tasks {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("❌ %d · %s", i+1, shortTitle(task, 24)), removeData(state.version, i+1)),
		))
	}

	msg := tgbotapi.NewMessage(chatID, formatTaskList(state.tasks))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	if _, err := b.api.Send(msg); err != nil {
		return err
	}
	return b.sendWithReplyMarkup(chatID, fmt.Sprintf("Tap «%s» when you're done.", btnGenerate), collectKeyboard())
}

// Conversation state. Every accessor takes the lock; callers get copies.

func (b *Bot) setConversation(userID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[userID] = state
}

func (b *Bot) snapshot(userID int64) (conversationState, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.conversations[userID]
	if !ok {
		return conversationState{}, false
	}
	return state.copy(), true
}

func (s *conversationState) copy() conversationState {
	return conversationState{stage: s.stage, tasks: append([]string(nil), s.tasks...), version: s.version}
}

func (b *Bot) hasConversation(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.conversations[userID]
	return ok
}

func (b *Bot) clearConversation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, userID)
}

// finishConversation drops state if it is still the chat's current list.
func (b *Bot) finishConversation(userID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conversations[userID] == state {
		delete(b.conversations, userID)
	}
}

func (b *Bot) resumeCollecting(state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	state.stage = stageCollecting
}

func (b *Bot) addTask(userID int64, task string) (conversationState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.conversations[userID]
	if !ok || state.stage != stageCollecting {
		return conversationState{}, errNoConversation
	}
	if len(state.tasks) >= maxTasks {
		return conversationState{}, fmt.Errorf("that's already %d tasks, generate the plan or remove some", maxTasks)
	}
	state.tasks = append(state.tasks, task)
	state.version++
	return state.copy(), nil
}

func (b *Bot) removeTask(userID int64, n, version int) (conversationState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.conversations[userID]
	if !ok || state.stage != stageCollecting {
		return conversationState{}, errNoConversation
	}
	if version != anyVersion && version != state.version {
		return conversationState{}, errStaleList
	}
	if n < 1 || n > len(state.tasks) {
		return conversationState{}, fmt.Errorf("there is no task number %d", n)
	}
	state.tasks = append(state.tasks[:n-1], state.tasks[n:]...)
	state.version++
	return state.copy(), nil
}

func (b *Bot) beginProcessing(userID int64) (*conversationState, []string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.conversations[userID]
	switch {
	case !ok:
		return nil, nil, errNoConversation
	case state.stage == stageProcessing:
		return nil, nil, errBusy
	case len(state.tasks) == 0:
		return nil, nil, service.ErrEmptyPlan
	}
	state.stage = stageProcessing
	return state, append([]string(nil), state.tasks...), nil
}
