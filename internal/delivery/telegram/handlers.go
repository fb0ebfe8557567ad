package telegram

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"employee-directory/internal/app/service"
	"employee-directory/internal/delivery/render"
	"employee-directory/internal/delivery/telegram/flows"
	"employee-directory/internal/delivery/telegram/keyboards"
	"employee-directory/internal/delivery/telegram/middleware"
	"employee-directory/internal/delivery/telegram/router"
	"employee-directory/internal/domain"

	"gopkg.in/telebot.v3"
)

// Handler serves the directory over Telegram. Every store access goes
// through Async so concurrent chats never touch the repository at once.
type Handler struct {
	Bot       *telebot.Bot
	Auth      *service.AuthService
	Employees *service.EmployeeService
	Async     *service.AsyncService
	Router    *router.CallbackRouter
	Sessions  *Sessions
}

func NewHandler(bot *telebot.Bot, auth *service.AuthService, employees *service.EmployeeService, async *service.AsyncService) *Handler {
	return &Handler{
		Bot:       bot,
		Auth:      auth,
		Employees: employees,
		Async:     async,
		Router:    router.New(),
		Sessions:  NewSessions(),
	}
}

func (h *Handler) Register() {
	h.Bot.Handle("/start", h.handleStart)
	h.Bot.Handle("/login", h.handleLogin)
	h.Bot.Handle("/logout", h.handleLogout)
	h.Bot.Handle("/view", h.handleView)
	h.Bot.Handle("/find", h.handleFind)
	h.Bot.Handle("/add", h.handleAdd)
	h.Bot.Handle("/modify", h.handleModify)
	h.Bot.Handle("/delete", h.handleDelete)
	h.Bot.Handle(telebot.OnText, h.handleText)

	flows.RegisterDelete(h.Router, h)
	h.Router.Attach(h.Bot)
}

const helpText = `Commands:
/login <user id> - start a session
/view - view employees
/find id|name|dept <text> - search (case-sensitive)
/add id;name;department;position;salary;role - add an employee
/modify <id> name|department|position|salary <value> - change one field
/delete <id> - delete an employee
/logout - end the session`

func (h *Handler) handleStart(c telebot.Context) error {
	msg := "Welcome to the Employee Management Information System!\n\n" + helpText
	if sess, ok := h.Sessions.Get(c.Chat().ID); ok {
		return c.Send(msg, keyboards.BuildMenuKeyboard(sess.Role()))
	}
	return c.Send(msg)
}

func (h *Handler) handleLogin(c telebot.Context) error {
	chatID := c.Chat().ID
	if _, ok := h.Sessions.Get(chatID); ok {
		return c.Send("You are already logged in. Use /logout first.")
	}
	id, err := parseID(c.Message().Payload)
	if err != nil {
		return h.badArgs(c, err, usageLogin)
	}
	sess, err := service.Do(h.Async, func() (*service.Session, error) {
		return h.Auth.Login(id)
	})
	if err != nil {
		return h.fail(c, err)
	}
	h.Sessions.Set(chatID, sess)
	log.Printf("[telegram] chat=%d logged in as id=%d", chatID, sess.User.ID)

	msg := fmt.Sprintf("Login successful! Welcome, %s\nUser Type: %s\nPermissions: %s",
		sess.User.Name, sess.Role(), sess.Role().Summary())
	return c.Send(msg, keyboards.BuildMenuKeyboard(sess.Role()))
}

func (h *Handler) handleLogout(c telebot.Context) error {
	sess, ok := h.Sessions.Delete(c.Chat().ID)
	if !ok {
		return c.Send("You are not logged in.")
	}
	h.Auth.Logout(sess)
	return c.Send("Logging out... Goodbye!", keyboards.RemoveKeyboard())
}

func (h *Handler) handleView(c telebot.Context) error {
	sess, ok := h.Sessions.Get(c.Chat().ID)
	if !ok {
		return h.needLogin(c)
	}
	msg, err := service.Do(h.Async, func() (string, error) {
		employees, err := h.Employees.View(sess)
		if err != nil {
			return "", err
		}
		if !sess.Role().Can(domain.OpViewAll) {
			return "=== Your Employee Information ===\n" + render.EmployeeCard(employees[0]), nil
		}
		if len(employees) == 0 {
			return "No employees found.", nil
		}
		lines := []string{"=== All Employees ===", "ID | Name | Department | Position | Salary | Type"}
		for _, e := range employees {
			lines = append(lines, render.EmployeeLine(e))
		}
		return strings.Join(lines, "\n"), nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Send(msg)
}

func (h *Handler) handleFind(c telebot.Context) error {
	sess, ok := h.Sessions.Get(c.Chat().ID)
	if !ok {
		return h.needLogin(c)
	}
	if err := h.authorize(sess, domain.OpSearch); err != nil {
		return h.fail(c, err)
	}
	q, err := parseFind(c.Message().Payload)
	if err != nil {
		return h.badArgs(c, err, usageFind)
	}
	msg, err := service.Do(h.Async, func() (string, error) {
		switch q.Kind {
		case findByID:
			e, err := h.Employees.FindByID(sess, q.ID)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Sprintf("No employee found with User ID: %d", q.ID), nil
			}
			if err != nil {
				return "", err
			}
			return searchResults([]domain.Employee{e}), nil
		case findByName:
			found, err := h.Employees.FindByName(sess, q.Text)
			if err != nil {
				return "", err
			}
			if len(found) == 0 {
				return "No employee found with name containing: " + q.Text, nil
			}
			return searchResults(found), nil
		default:
			found, err := h.Employees.FindByDepartment(sess, q.Text)
			if err != nil {
				return "", err
			}
			if len(found) == 0 {
				return "No employee found in department: " + q.Text, nil
			}
			return searchResults(found), nil
		}
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Send(msg)
}

func searchResults(found []domain.Employee) string {
	var b strings.Builder
	for i, e := range found {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("--- Search Result ---\n")
		b.WriteString(render.EmployeeCard(e))
	}
	return b.String()
}

func (h *Handler) handleAdd(c telebot.Context) error {
	sess, ok := h.Sessions.Get(c.Chat().ID)
	if !ok {
		return h.needLogin(c)
	}
	if err := h.authorize(sess, domain.OpAdd); err != nil {
		return h.fail(c, err)
	}
	e, roleOK, err := parseAdd(c.Message().Payload)
	if err != nil {
		return h.badArgs(c, err, usageAdd)
	}
	if err := h.exec(func() error { return h.Employees.Add(sess, e) }); err != nil {
		return h.fail(c, err)
	}
	msg := "Employee added successfully!\n\n" + render.EmployeeCard(e)
	if !roleOK {
		msg = "Invalid role. Creating as General Employee.\n" + msg
	}
	return c.Send(msg)
}

func (h *Handler) handleModify(c telebot.Context) error {
	sess, ok := h.Sessions.Get(c.Chat().ID)
	if !ok {
		return h.needLogin(c)
	}
	if err := h.authorize(sess, domain.OpModify); err != nil {
		return h.fail(c, err)
	}
	id, change, err := parseModify(c.Message().Payload)
	if err != nil {
		return h.badArgs(c, err, usageModify)
	}
	// Sessions are refreshed on the worker so they follow the store's write order.
	updated, err := service.Do(h.Async, func() (domain.Employee, error) {
		e, err := h.Employees.Modify(sess, id, change)
		if err != nil {
			return e, err
		}
		if n := h.Sessions.Refresh(e); n > 0 {
			log.Printf("[telegram] refreshed %d session(s) for id=%d", n, e.ID)
		}
		return e, nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return c.Send(fmt.Sprintf("Employee not found with User ID: %d", id))
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.Send(fmt.Sprintf("%s updated successfully!\n\n%s", change.Field, render.EmployeeCard(updated)))
}

func (h *Handler) handleDelete(c telebot.Context) error {
	sess, ok := h.Sessions.Get(c.Chat().ID)
	if !ok {
		return h.needLogin(c)
	}
	if err := h.authorize(sess, domain.OpDelete); err != nil {
		return h.fail(c, err)
	}
	id, err := parseID(c.Message().Payload)
	if err != nil {
		return h.badArgs(c, err, usageDelete)
	}
	e, err := service.Do(h.Async, func() (domain.Employee, error) {
		if id == sess.User.ID {
			return domain.Employee{}, domain.ErrSelfDelete
		}
		return h.Employees.Get(sess, domain.OpDelete, id)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return c.Send(fmt.Sprintf("Employee not found with User ID: %d", id))
	}
	if err != nil {
		return h.fail(c, err)
	}
	msg := "Employee to be deleted:\n\n" + render.EmployeeCard(e) + "\nAre you sure you want to delete this employee?"
	return c.Send(msg, keyboards.BuildDeleteConfirm(id))
}

func (h *Handler) ConfirmDelete(c telebot.Context, id int) error {
	sess, ok := h.Sessions.Get(c.Chat().ID)
	if !ok {
		return middleware.EditOrSend(c, "Session ended. Please log in first: "+usageLogin, nil)
	}
	err := h.exec(func() error { return h.Employees.Delete(sess, id) })
	if errors.Is(err, domain.ErrNotFound) {
		return middleware.EditOrSend(c, fmt.Sprintf("Employee not found with User ID: %d", id), nil)
	}
	if err != nil {
		return middleware.EditOrSend(c, h.describe(c, err), nil)
	}
	return middleware.EditOrSend(c, "Employee deleted successfully!", nil)
}

func (h *Handler) CancelDelete(c telebot.Context, id int) error {
	log.Printf("[telegram] chat=%d cancelled delete of id=%d", c.Chat().ID, id)
	return middleware.EditOrSend(c, "Deletion cancelled.", nil)
}

// handleText serves the reply keyboard. Buttons that need arguments answer
// with the matching command syntax.
func (h *Handler) handleText(c telebot.Context) error {
	text := strings.TrimSpace(c.Text())
	if text == keyboards.LogoutLabel {
		return h.handleLogout(c)
	}
	if _, ok := h.Sessions.Get(c.Chat().ID); !ok {
		return h.needLogin(c)
	}
	switch text {
	case render.OperationLabel(domain.OpViewAll), render.OperationLabel(domain.OpViewOwn):
		return h.handleView(c)
	case render.OperationLabel(domain.OpSearch):
		return c.Send("Usage: " + usageFind)
	case render.OperationLabel(domain.OpAdd):
		return c.Send("Usage: " + usageAdd + "\nRoles: HR, Management, General")
	case render.OperationLabel(domain.OpModify):
		return c.Send("Usage: " + usageModify)
	case render.OperationLabel(domain.OpDelete):
		return c.Send("Usage: " + usageDelete)
	}
	return c.Send("Unknown command.\n\n" + helpText)
}

func (h *Handler) exec(fn func() error) error {
	_, err := service.Do(h.Async, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func (h *Handler) authorize(sess *service.Session, op domain.Operation) error {
	return h.exec(func() error { return h.Employees.Authorize(sess, op) })
}

func (h *Handler) needLogin(c telebot.Context) error {
	return c.Send("Please log in first: " + usageLogin)
}

func (h *Handler) badArgs(c telebot.Context, err error, usage string) error {
	if errors.Is(err, ErrUsage) {
		return c.Send(fmt.Sprintf("Invalid command: %v\nUsage: %s", err, usage))
	}
	return h.fail(c, err)
}

// describe turns err into a reply; unexpected errors are logged and hidden.
func (h *Handler) describe(c telebot.Context, err error) string {
	if msg, ok := render.ErrorMessage(err); ok {
		return msg
	}
	log.Printf("[telegram] chat=%d error: %v", c.Chat().ID, err)
	return "Something went wrong. Please try again later."
}

func (h *Handler) fail(c telebot.Context, err error) error {
	return c.Send(h.describe(c, err))
}
