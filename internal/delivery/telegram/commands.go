package telegram

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"employee-directory/internal/domain"
)

var ErrUsage = errors.New("malformed command")

const (
	usageLogin  = "/login <user id>"
	usageFind   = "/find id|name|dept <text>"
	usageAdd    = "/add id;name;department;position;salary;role"
	usageModify = "/modify <id> name|department|position|salary <value>"
	usageDelete = "/delete <id>"
)

type findKind int

const (
	findByID findKind = iota
	findByName
	findByDepartment
)

type findQuery struct {
	Kind findKind
	ID   int
	Text string
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: user id %q is not a number", ErrUsage, s)
	}
	return id, nil
}

func parseSalary(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: salary %q is not a number", ErrUsage, s)
	}
	if v < 0 {
		return 0, domain.ErrInvalidSalary
	}
	return v, nil
}

// parseFind reads "<kind> <text>". The text keeps its case and inner spaces
// since matching is case-sensitive.
func parseFind(payload string) (findQuery, error) {
	kind, text, _ := strings.Cut(strings.TrimSpace(payload), " ")
	text = strings.TrimSpace(text)
	switch strings.ToLower(kind) {
	case "id":
		id, err := parseID(text)
		if err != nil {
			return findQuery{}, err
		}
		return findQuery{Kind: findByID, ID: id}, nil
	case "name":
		return findQuery{Kind: findByName, Text: text}, nil
	case "dept", "department":
		return findQuery{Kind: findByDepartment, Text: text}, nil
	}
	return findQuery{}, fmt.Errorf("%w: unknown search kind %q", ErrUsage, kind)
}

// parseAdd reads "id;name;department;position;salary;role". An unknown role
// becomes General, as on the console.
func parseAdd(payload string) (domain.Employee, bool, error) {
	parts := strings.Split(payload, ";")
	if len(parts) != 6 {
		return domain.Employee{}, false, fmt.Errorf("%w: want 6 fields separated by ';', got %d", ErrUsage, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	id, err := parseID(parts[0])
	if err != nil {
		return domain.Employee{}, false, err
	}
	salary, err := parseSalary(parts[4])
	if err != nil {
		return domain.Employee{}, false, err
	}
	role, ok := domain.ParseRole(parts[5])
	if !ok {
		role = domain.RoleGeneral
	}
	return domain.Employee{
		ID:         id,
		Name:       parts[1],
		Department: parts[2],
		Position:   parts[3],
		Salary:     salary,
		Role:       role,
	}, ok, nil
}

// parseModify reads "<id> <field> <value>"; the value may contain spaces.
func parseModify(payload string) (int, domain.Change, error) {
	fields := strings.Fields(payload)
	if len(fields) < 3 {
		return 0, domain.Change{}, fmt.Errorf("%w: want id, field and value", ErrUsage)
	}
	id, err := parseID(fields[0])
	if err != nil {
		return 0, domain.Change{}, err
	}
	field, ok := domain.ParseField(fields[1])
	if !ok {
		return 0, domain.Change{}, domain.ErrUnknownField
	}
	value := strings.Join(fields[2:], " ")

	change := domain.Change{Field: field}
	if field == domain.FieldSalary {
		change.Salary, err = parseSalary(value)
		if err != nil {
			return 0, domain.Change{}, err
		}
	} else {
		change.Text = value
	}
	return id, change, nil
}
