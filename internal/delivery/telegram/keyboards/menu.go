package keyboards

import (
	"strconv"

	"employee-directory/internal/delivery/render"
	"employee-directory/internal/domain"

	"gopkg.in/telebot.v3"
)

// Callback keys of the delete confirmation buttons.
const (
	DeleteYes = "del_yes"
	DeleteNo  = "del_no"
)

const LogoutLabel = "Logout"

// BuildMenuKeyboard lays out the role's operations two per row with Logout last.
func BuildMenuKeyboard(role domain.Role) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}

	ops := role.Operations()
	rows := []telebot.Row{}
	for i := 0; i < len(ops); i += 2 {
		row := []telebot.Btn{markup.Text(render.OperationLabel(ops[i]))}
		if i+1 < len(ops) {
			row = append(row, markup.Text(render.OperationLabel(ops[i+1])))
		}
		rows = append(rows, markup.Row(row...))
	}
	rows = append(rows, markup.Row(markup.Text(LogoutLabel)))

	markup.Reply(rows...)
	return markup
}

func BuildDeleteConfirm(id int) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	payload := strconv.Itoa(id)
	yes := markup.Data("Yes, delete", DeleteYes, payload)
	no := markup.Data("No", DeleteNo, payload)
	markup.Inline(markup.Row(yes, no))
	return markup
}

func RemoveKeyboard() *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{RemoveKeyboard: true}
}
