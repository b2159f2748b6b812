package bot

import (
	"fmt"
	"errors"
	"html"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dayplanner/internal/model"
	"dayplanner/internal/service"
)

func formatSchedule(res model.ScheduleResult) string {
	var sb strings.Builder
	sb.WriteString("🗓 <b>Your Optimized Schedule</b>\n\n")
	sb.WriteString(fmt.Sprintf("<i>%s</i>\n\n", escape(res.Explanation)))
	sb.WriteString(fmt.Sprintf("<pre>%s</pre>", escape(strings.TrimRight(res.Visualization, "\n"))))
	return sb.String()
}

func formatTaskList(tasks []string) string {
	var sb strings.Builder
	sb.WriteString("📋 <b>Your tasks</b>\n")
	for i, task := range tasks {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, escape(task)))
	}
	sb.WriteString("\nTap a button below to drop a task.")
	return sb.String()
}

func formatCategories(list []service.CategoryInfo) string {
	var sb strings.Builder
	sb.WriteString("📂 <b>Categories</b>\n")
	for _, info := range list {
		keywords := "anything that matches no other category"
		if len(info.Keywords) > 0 {
			keywords = strings.Join(info.Keywords, ", ")
		}
		sb.WriteString(fmt.Sprintf("• <b>%s</b> from %s: %s\n", escape(info.Category.String()), info.StartsAt, escape(keywords)))
	}
	sb.WriteString("\nA task goes to the first of work, outdoor, family whose keyword it contains.")
	return sb.String()
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(title)
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func escape(s string) string {
	return html.EscapeString(s)
}

// isGenerateInput matches only the keyboard button; plain text is a task.
func isGenerateInput(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), btnGenerate)
}

// removeData encodes a remove button as "remove:<list version>:<n>".
func removeData(version, n int) string {
	return fmt.Sprintf("%s%d:%d", cbRemovePrefix, version, n)
}

func parseRemoveData(data string) (version, n int, err error) {
	v, num, ok := strings.Cut(strings.TrimPrefix(data, cbRemovePrefix), ":")
	if !ok {
		return 0, 0, errors.New("missing list version")
	}
	if version, err = strconv.Atoi(v); err != nil {
		return 0, 0, err
	}
	if n, err = strconv.Atoi(num); err != nil {
		return 0, 0, err
	}
	return version, n, nil
}

func isCancelDialogInput(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	return t == strings.ToLower(btnCancelDialog) || t == "cancel"
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelPlan),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelCategory),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func collectKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnGenerate),
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
