// Package render formats employee records for the text front-ends.
package render

import (
	"errors"
	"fmt"
	"strings"

	"employee-directory/internal/domain"
)

// EmployeeCard is the labelled block shown for a single record.
func EmployeeCard(e domain.Employee) string {
	var b strings.Builder
	b.WriteString("--- Employee Information ---\n")
	fmt.Fprintf(&b, "Name: %s\n", e.Name)
	fmt.Fprintf(&b, "User ID: %d\n", e.ID)
	fmt.Fprintf(&b, "Department: %s\n", e.Department)
	fmt.Fprintf(&b, "Position: %s\n", e.Position)
	fmt.Fprintf(&b, "Salary: %s\n", Salary(e.Salary))
	fmt.Fprintf(&b, "User Type: %s\n", e.Role)
	fmt.Fprintf(&b, "Permissions: %s\n", e.Role.Summary())
	return b.String()
}

func Salary(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// EmployeeLine is the one-line summary used in lists.
func EmployeeLine(e domain.Employee) string {
	return fmt.Sprintf("%d | %s | %s | %s | %s | %s", e.ID, e.Name, e.Department, e.Position, Salary(e.Salary), e.Role)
}

func OperationLabel(op domain.Operation) string {
	switch op {
	case domain.OpAdd:
		return "Add Employee"
	case domain.OpViewAll:
		return "View All Employees"
	case domain.OpViewOwn:
		return "View My Information"
	case domain.OpSearch:
		return "Search Employees"
	case domain.OpModify:
		return "Modify Employee"
	case domain.OpDelete:
		return "Delete Employee"
	}
	return string(op)
}

// DeniedMessage explains a refused operation to the user.
func DeniedMessage(op domain.Operation) string {
	switch op {
	case domain.OpAdd:
		return "Access denied. Only HR can add employees."
	case domain.OpModify:
		return "Access denied. Only HR can modify employee information."
	case domain.OpDelete:
		return "Access denied. Only HR can delete employees."
	case domain.OpSearch, domain.OpViewAll:
		return "Access denied. General employees can only view their own information."
	}
	return "Access denied."
}

// ErrorMessage turns a domain failure into user-facing text. ok is false for
// errors that are not domain failures.
func ErrorMessage(err error) (msg string, ok bool) {
	var pe *domain.PermissionError
	switch {
	case errors.As(err, &pe):
		return DeniedMessage(pe.Op), true
	case errors.Is(err, domain.ErrDuplicateID):
		return "User ID already exists. Please choose a different ID.", true
	case errors.Is(err, domain.ErrSelfDelete):
		return "Cannot delete your own account while logged in.", true
	case errors.Is(err, domain.ErrInvalidSalary):
		return "Invalid input. Please enter a positive number.", true
	case errors.Is(err, domain.ErrUnknownField):
		return "Invalid choice.", true
	case errors.Is(err, domain.ErrNotFound):
		return "Employee not found.", true
	case errors.Is(err, domain.ErrLoginFailed):
		return "Invalid User ID. Access denied.", true
	}
	return "", false
}
