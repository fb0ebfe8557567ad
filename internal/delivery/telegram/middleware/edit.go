package middleware

import (
	"log"

	"gopkg.in/telebot.v3"
)

// EditOrSend replaces the text of the message behind a callback, falling back
// to a fresh message when Telegram refuses the edit.
func EditOrSend(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	opts := []interface{}{}
	if markup != nil {
		opts = append(opts, markup)
	}
	if err := c.Edit(text, opts...); err != nil {
		log.Printf("[telegram] edit failed, sending instead: %v", err)
		return c.Send(text, opts...)
	}
	return nil
}
