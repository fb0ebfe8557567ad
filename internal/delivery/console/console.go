// Package console runs the interactive directory session on a text terminal.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"employee-directory/internal/app/service"
	"employee-directory/internal/delivery/render"
	"employee-directory/internal/domain"
)

type Console struct {
	prompter
	Auth      *service.AuthService
	Employees *service.EmployeeService
	// Credentials are advertised on the welcome banner.
	Credentials []domain.Employee

	session *service.Session
}

func New(in io.Reader, out io.Writer, auth *service.AuthService, employees *service.EmployeeService) *Console {
	return &Console{
		prompter:  prompter{in: bufio.NewScanner(in), out: out},
		Auth:      auth,
		Employees: employees,
	}
}

type menuItem struct {
	label string
	run   func() error
}

// Run logs a user in and serves the menu until logout. Domain failures are
// printed; only I/O and unexpected store errors are returned.
func (c *Console) Run() error {
	c.banner()
	for {
		ok, err := c.login()
		if err != nil {
			return err
		}
		if ok {
			break
		}
		retry, err := c.confirm("Would you like to try again? (y/n): ")
		if err != nil {
			return err
		}
		if !retry {
			c.println("Goodbye!")
			return nil
		}
	}
	defer c.logout()

	for {
		items := c.menu()
		c.displayMenu(items)
		choice, err := c.readInt(fmt.Sprintf("Enter your choice (1-%d): ", len(items)+1))
		if err != nil {
			return err
		}
		switch {
		case choice == len(items)+1:
			c.println("Logging out... Goodbye!")
			return nil
		case choice >= 1 && choice <= len(items):
			if err := items[choice-1].run(); err != nil {
				return err
			}
		default:
			c.println("Invalid choice. Please try again.")
		}
		if _, err := c.readLine("\nPress Enter to continue..."); err != nil {
			return err
		}
	}
}

func (c *Console) banner() {
	c.println("Welcome to the Employee Management Information System!")
	if len(c.Credentials) == 0 {
		return
	}
	c.println("\nDefault Login Credentials for Testing:")
	byRole := map[domain.Role][]string{}
	for _, e := range c.Credentials {
		byRole[e.Role] = append(byRole[e.Role], fmt.Sprintf("%d (%s)", e.ID, e.Name))
	}
	labels := map[domain.Role]string{
		domain.RoleHR:         "HR User",
		domain.RoleManagement: "Management User",
		domain.RoleGeneral:    "General Employee",
	}
	for _, r := range domain.Roles {
		if ids := byRole[r]; len(ids) > 0 {
			c.printf("%s: %s\n", labels[r], strings.Join(ids, ", "))
		}
	}
}

func (c *Console) login() (bool, error) {
	c.println("\n=== Employee Management System Login ===")
	id, err := c.readInt("Enter your User ID: ")
	if err != nil {
		return false, err
	}
	sess, err := c.Auth.Login(id)
	if errors.Is(err, domain.ErrLoginFailed) {
		c.println("Invalid User ID. Access denied.")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	c.session = sess
	c.printf("\nLogin successful! Welcome, %s\n", sess.User.Name)
	c.printf("User Type: %s\n", sess.Role())
	return true, nil
}

func (c *Console) logout() {
	c.Auth.Logout(c.session)
	c.session = nil
}

func (c *Console) menu() []menuItem {
	handlers := map[domain.Operation]func() error{
		domain.OpAdd:     c.addEmployee,
		domain.OpViewAll: c.viewEmployees,
		domain.OpViewOwn: c.viewEmployees,
		domain.OpSearch:  c.searchEmployees,
		domain.OpModify:  c.modifyEmployee,
		domain.OpDelete:  c.deleteEmployee,
	}
	var items []menuItem
	for _, op := range c.session.Role().Operations() {
		items = append(items, menuItem{label: render.OperationLabel(op), run: handlers[op]})
	}
	return items
}

func (c *Console) displayMenu(items []menuItem) {
	c.println("\n=== Main Menu ===")
	c.printf("Logged in as: %s (%s)\n", c.session.User.Name, c.session.Role())
	c.println(strings.Repeat("=", 40))
	for i, item := range items {
		c.printf("%d. %s\n", i+1, item.label)
	}
	c.printf("%d. Logout\n", len(items)+1)
}

func (c *Console) printEmployee(e domain.Employee) {
	c.printf("\n%s", render.EmployeeCard(e))
}

// report prints domain failures and passes anything else up.
func (c *Console) report(err error) error {
	msg, ok := render.ErrorMessage(err)
	if !ok {
		return err
	}
	c.println(msg)
	return nil
}
