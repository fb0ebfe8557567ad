package telegram

import (
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"testing"

	"employee-directory/internal/app/service"
	"employee-directory/internal/delivery/telegram/flows"
	"employee-directory/internal/delivery/telegram/keyboards"
	"employee-directory/internal/domain"
	"employee-directory/internal/repository/memory"
	"employee-directory/pkg/workerpool"

	"gopkg.in/telebot.v3"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// chatContext records what a handler sends. Only the methods the handlers
// call are implemented.
type chatContext struct {
	telebot.Context
	chat    *telebot.Chat
	message *telebot.Message
	data    string
	sent    []string
	markups []*telebot.ReplyMarkup
}

func (c *chatContext) Chat() *telebot.Chat       { return c.chat }
func (c *chatContext) Message() *telebot.Message { return c.message }
func (c *chatContext) Text() string              { return c.message.Text }
func (c *chatContext) Data() string              { return c.data }

func (c *chatContext) Respond(...*telebot.CallbackResponse) error { return nil }

func (c *chatContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what.(string))
	var markup *telebot.ReplyMarkup
	for _, o := range opts {
		if m, ok := o.(*telebot.ReplyMarkup); ok {
			markup = m
		}
	}
	c.markups = append(c.markups, markup)
	return nil
}

func (c *chatContext) Edit(what interface{}, opts ...interface{}) error {
	return c.Send(what, opts...)
}

type fixture struct {
	h    *Handler
	repo *memory.MemoryEmployeeRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.NewMemoryEmployeeRepo()
	if err := service.SeedEmployees(repo, domain.DefaultEmployees()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	pool := workerpool.NewWorkerPool(1, 8)
	t.Cleanup(pool.Close)
	h := NewHandler(nil, service.NewAuthService(repo), service.NewEmployeeService(repo), service.NewAsyncService(pool))
	return &fixture{h: h, repo: repo}
}

// call runs handler as if chatID had sent "/cmd payload" and returns the replies.
func (f *fixture) call(t *testing.T, handler func(telebot.Context) error, chatID int64, payload string) *chatContext {
	t.Helper()
	c := &chatContext{
		chat:    &telebot.Chat{ID: chatID},
		message: &telebot.Message{Payload: payload, Text: payload},
	}
	if err := handler(c); err != nil {
		t.Fatalf("handler returned %v", err)
	}
	return c
}

func (f *fixture) login(t *testing.T, chatID int64, id string) {
	t.Helper()
	c := f.call(t, f.h.handleLogin, chatID, id)
	if !strings.HasPrefix(c.sent[0], "Login successful!") {
		t.Fatalf("login %s failed: %v", id, c.sent)
	}
}

func (c *chatContext) last() string {
	if len(c.sent) == 0 {
		return ""
	}
	return c.sent[len(c.sent)-1]
}

func TestLoginAndLogout(t *testing.T) {
	f := newFixture(t)

	c := f.call(t, f.h.handleLogin, 1, "9999")
	if c.last() != "Invalid User ID. Access denied." {
		t.Fatalf("unexpected reply: %q", c.last())
	}
	c = f.call(t, f.h.handleLogin, 1, "abc")
	if !strings.Contains(c.last(), "Usage: /login <user id>") {
		t.Fatalf("expected usage, got %q", c.last())
	}

	c = f.call(t, f.h.handleLogin, 1, "2001")
	if !strings.Contains(c.last(), "Welcome, Mike Davis") || c.markups[0] == nil {
		t.Fatalf("expected welcome with menu, got %q", c.last())
	}
	if sess, ok := f.h.Sessions.Get(1); !ok || sess.User.ID != 2001 {
		t.Fatalf("session not stored: %+v %v", sess, ok)
	}

	c = f.call(t, f.h.handleLogin, 1, "1001")
	if !strings.Contains(c.last(), "already logged in") {
		t.Fatalf("second login should be refused: %q", c.last())
	}

	c = f.call(t, f.h.handleLogout, 1, "")
	if c.last() != "Logging out... Goodbye!" || !c.markups[0].RemoveKeyboard {
		t.Fatalf("unexpected logout reply: %q", c.last())
	}
	c = f.call(t, f.h.handleLogout, 1, "")
	if c.last() != "You are not logged in." {
		t.Fatalf("unexpected reply: %q", c.last())
	}
}

func TestChatsHaveSeparateSessions(t *testing.T) {
	f := newFixture(t)
	f.login(t, 1, "1001")
	f.login(t, 2, "3002")

	c := f.call(t, f.h.handleView, 2, "")
	if !strings.Contains(c.last(), "Name: Emily Brown") || strings.Contains(c.last(), "Sarah Johnson") {
		t.Fatalf("general chat should only see own record: %q", c.last())
	}
	c = f.call(t, f.h.handleView, 1, "")
	if !strings.Contains(c.last(), "=== All Employees ===") || !strings.Contains(c.last(), "3003 | David Wilson | IT") {
		t.Fatalf("HR chat should see everyone: %q", c.last())
	}
	c = f.call(t, f.h.handleView, 3, "")
	if !strings.HasPrefix(c.last(), "Please log in first") {
		t.Fatalf("unknown chat must log in: %q", c.last())
	}
}

func TestFind(t *testing.T) {
	f := newFixture(t)
	f.login(t, 1, "2001")

	tests := []struct {
		payload string
		want    []string
	}{
		{"name Dav", []string{"Name: Mike Davis", "Name: David Wilson"}},
		{"name dav", []string{"No employee found with name containing: dav"}},
		{"dept IT", []string{"Name: John Smith"}},
		{"id 3002", []string{"Name: Emily Brown"}},
		{"id 1234", []string{"No employee found with User ID: 1234"}},
		{"rank 1", []string{"Usage: /find"}},
	}
	for _, tt := range tests {
		c := f.call(t, f.h.handleFind, 1, tt.payload)
		for _, want := range tt.want {
			if !strings.Contains(c.last(), want) {
				t.Fatalf("/find %s: reply missing %q:\n%s", tt.payload, want, c.last())
			}
		}
	}

	f.login(t, 2, "3001")
	c := f.call(t, f.h.handleFind, 2, "name John")
	if c.last() != "Access denied. General employees can only view their own information." {
		t.Fatalf("general search must be denied: %q", c.last())
	}
}

func TestAddRequiresHR(t *testing.T) {
	f := newFixture(t)
	f.login(t, 1, "2001")
	c := f.call(t, f.h.handleAdd, 1, "4001;Nina;IT;QA;1;General")
	if c.last() != "Access denied. Only HR can add employees." {
		t.Fatalf("unexpected reply: %q", c.last())
	}
	if _, err := f.repo.GetEmployeeByID(4001); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("record must not be added")
	}
}

func TestAddModifyDelete(t *testing.T) {
	f := newFixture(t)
	f.login(t, 1, "1001")

	c := f.call(t, f.h.handleAdd, 1, "4001;Nina Patel;IT;QA Engineer;50000;boss")
	if !strings.Contains(c.last(), "Invalid role. Creating as General Employee.") || !strings.Contains(c.last(), "Employee added successfully!") {
		t.Fatalf("unexpected add reply: %q", c.last())
	}
	c = f.call(t, f.h.handleAdd, 1, "3001;Dup;IT;QA;1;HR")
	if c.last() != "User ID already exists. Please choose a different ID." {
		t.Fatalf("duplicate add: %q", c.last())
	}
	c = f.call(t, f.h.handleAdd, 1, "4002;Too;Few")
	if !strings.Contains(c.last(), "Usage: /add") {
		t.Fatalf("expected add usage: %q", c.last())
	}

	c = f.call(t, f.h.handleModify, 1, "4001 salary 55000")
	if !strings.HasPrefix(c.last(), "Salary updated successfully!") {
		t.Fatalf("modify: %q", c.last())
	}
	c = f.call(t, f.h.handleModify, 1, "9999 name Ghost")
	if c.last() != "Employee not found with User ID: 9999" {
		t.Fatalf("modify missing: %q", c.last())
	}
	if e, _ := f.repo.GetEmployeeByID(4001); e.Salary != 55000 {
		t.Fatalf("salary not stored: %+v", e)
	}

	c = f.call(t, f.h.handleDelete, 1, "1001")
	if c.last() != "Cannot delete your own account while logged in." {
		t.Fatalf("self delete: %q", c.last())
	}
	c = f.call(t, f.h.handleDelete, 1, "4001")
	if !strings.Contains(c.last(), "Are you sure") || c.markups[0] == nil || len(c.markups[0].InlineKeyboard) != 1 {
		t.Fatalf("delete should ask for confirmation: %q", c.last())
	}
	if _, err := f.repo.GetEmployeeByID(4001); err != nil {
		t.Fatalf("record must survive until confirmed: %v", err)
	}

	flows.RegisterDelete(f.h.Router, f.h)
	cb := &chatContext{chat: &telebot.Chat{ID: 1}, data: "\f" + keyboards.DeleteNo + "|4001"}
	if handled, err := f.h.Router.Dispatch(cb); !handled || err != nil || cb.last() != "Deletion cancelled." {
		t.Fatalf("cancel: %v %v %q", handled, err, cb.last())
	}
	cb = &chatContext{chat: &telebot.Chat{ID: 1}, data: "\f" + keyboards.DeleteYes + "|4001"}
	if handled, err := f.h.Router.Dispatch(cb); !handled || err != nil || cb.last() != "Employee deleted successfully!" {
		t.Fatalf("confirm: %v %v %q", handled, err, cb.last())
	}
	if _, err := f.repo.GetEmployeeByID(4001); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("record should be gone: %v", err)
	}
	if err := f.h.ConfirmDelete(cb, 4001); err != nil || cb.last() != "Employee not found with User ID: 4001" {
		t.Fatalf("second confirm: %q %v", cb.last(), err)
	}
}

func TestMenuButtons(t *testing.T) {
	f := newFixture(t)

	c := f.call(t, f.h.handleText, 1, "View All Employees")
	if !strings.HasPrefix(c.last(), "Please log in first") {
		t.Fatalf("menu before login: %q", c.last())
	}

	f.login(t, 1, "1001")
	c = f.call(t, f.h.handleText, 1, "Search Employees")
	if c.last() != "Usage: "+usageFind {
		t.Fatalf("search button: %q", c.last())
	}
	c = f.call(t, f.h.handleText, 1, "View All Employees")
	if !strings.Contains(c.last(), "=== All Employees ===") {
		t.Fatalf("view button: %q", c.last())
	}
	c = f.call(t, f.h.handleText, 1, keyboards.LogoutLabel)
	if c.last() != "Logging out... Goodbye!" {
		t.Fatalf("logout button: %q", c.last())
	}
}

func newChat(chatID int64, payload string) *chatContext {
	return &chatContext{
		chat:    &telebot.Chat{ID: chatID},
		message: &telebot.Message{Payload: payload, Text: payload},
	}
}

// Run with -race: handlers for one chat read its session while another
// handler's modify replaces it.
func TestConcurrentModifyAndReadOfOwnSession(t *testing.T) {
	f := newFixture(t)
	f.login(t, 1, "1001")

	var wg sync.WaitGroup
	errs := make(chan error, 200)
	for i := 0; i < 50; i++ {
		wg.Add(4)
		go func() {
			defer wg.Done()
			errs <- f.h.handleModify(newChat(1, "1001 name Sarah Lee"))
		}()
		go func() {
			defer wg.Done()
			errs <- f.h.handleStart(newChat(1, ""))
		}()
		go func() {
			defer wg.Done()
			errs <- f.h.handleView(newChat(1, ""))
		}()
		go func() {
			defer wg.Done()
			errs <- f.h.handleText(newChat(1, "Search Employees"))
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("handler returned %v", err)
		}
	}

	sess, ok := f.h.Sessions.Get(1)
	if !ok || sess.User.Name != "Sarah Lee" {
		t.Fatalf("session should carry the new name: %+v %v", sess, ok)
	}
}

func TestModifyRefreshesEveryChatOfThatUser(t *testing.T) {
	f := newFixture(t)
	f.login(t, 1, "1001")
	f.login(t, 2, "3001")
	f.login(t, 3, "3002")
	before, _ := f.h.Sessions.Get(2)

	c := f.call(t, f.h.handleModify, 1, "3001 name Johnny Smith")
	if !strings.HasPrefix(c.last(), "Name updated successfully!") {
		t.Fatalf("modify: %q", c.last())
	}

	after, _ := f.h.Sessions.Get(2)
	if after.User.Name != "Johnny Smith" || after.ID != before.ID {
		t.Fatalf("chat 2 session not refreshed: %+v", after)
	}
	if before.User.Name != "John Smith" {
		t.Fatalf("old session value must not be mutated: %+v", before)
	}
	if other, _ := f.h.Sessions.Get(3); other.User.Name != "Emily Brown" {
		t.Fatalf("unrelated session changed: %+v", other)
	}
	if hr, _ := f.h.Sessions.Get(1); hr.User.Name != "Sarah Johnson" {
		t.Fatalf("editor session changed: %+v", hr)
	}
}
