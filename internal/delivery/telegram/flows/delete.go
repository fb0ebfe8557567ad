package flows

import (
	"log"
	"strconv"

	"employee-directory/internal/delivery/telegram/keyboards"
	"employee-directory/internal/delivery/telegram/router"

	"gopkg.in/telebot.v3"
)

// DeleteConfirmer finishes a deletion started by /delete.
type DeleteConfirmer interface {
	ConfirmDelete(c telebot.Context, id int) error
	CancelDelete(c telebot.Context, id int) error
}

func RegisterDelete(r *router.CallbackRouter, d DeleteConfirmer) {
	r.Register(keyboards.DeleteYes, func(c telebot.Context, payload string) error {
		id, err := strconv.Atoi(payload)
		if err != nil {
			log.Printf("[callback] bad delete payload %q", payload)
			return nil
		}
		return d.ConfirmDelete(c, id)
	})

	r.Register(keyboards.DeleteNo, func(c telebot.Context, payload string) error {
		id, err := strconv.Atoi(payload)
		if err != nil {
			log.Printf("[callback] bad delete payload %q", payload)
			return nil
		}
		return d.CancelDelete(c, id)
	})
}
