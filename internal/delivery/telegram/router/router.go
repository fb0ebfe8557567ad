package router

import (
	"log"
	"strings"

	"gopkg.in/telebot.v3"
)

type HandlerFunc func(c telebot.Context, payload string) error

// CallbackRouter dispatches inline button presses by their unique key.
type CallbackRouter struct {
	handlers map[string]HandlerFunc
}

func New() *CallbackRouter {
	return &CallbackRouter{handlers: make(map[string]HandlerFunc)}
}

func (r *CallbackRouter) Register(key string, h HandlerFunc) {
	r.handlers[key] = h
}

func (r *CallbackRouter) Attach(bot *telebot.Bot) {
	bot.Handle(telebot.OnCallback, func(c telebot.Context) error {
		_, err := r.Dispatch(c)
		return err
	})
}

// Split normalizes callback data of the form "\funique|payload".
func Split(raw string) (key, payload string) {
	raw = strings.TrimPrefix(raw, "\f")
	key, payload, _ = strings.Cut(raw, "|")
	return key, payload
}

// Dispatch answers the callback and runs the matching handler. It reports
// false when no handler is registered for the key.
func (r *CallbackRouter) Dispatch(c telebot.Context) (bool, error) {
	key, payload := Split(c.Data())
	log.Printf("[callback] key=%q payload=%q", key, payload)
	_ = c.Respond()

	if h, ok := r.handlers[key]; ok {
		return true, h(c, payload)
	}
	return false, nil
}
