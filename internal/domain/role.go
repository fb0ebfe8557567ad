package domain

import "strings"

type Role string

const (
	RoleHR         Role = "HR"
	RoleManagement Role = "Management"
	RoleGeneral    Role = "General"
)

// Operation is a directory action gated by role.
type Operation string

const (
	OpAdd     Operation = "add"
	OpViewAll Operation = "view-all"
	OpViewOwn Operation = "view-own"
	OpSearch  Operation = "search"
	OpModify  Operation = "modify"
	OpDelete  Operation = "delete"
)

// RolePermissions lists each role's operations in menu order.
var RolePermissions = map[Role][]Operation{
	RoleHR:         {OpAdd, OpViewAll, OpSearch, OpModify, OpDelete},
	RoleManagement: {OpViewAll, OpSearch},
	RoleGeneral:    {OpViewOwn},
}

var roleSummaries = map[Role]string{
	RoleHR:         "Full Access: Add, View, Search, Modify, Delete employees",
	RoleManagement: "Limited Access: Search and View employees only",
	RoleGeneral:    "Restricted Access: View own information only",
}

// Roles in the order they are offered when creating a record.
var Roles = []Role{RoleHR, RoleManagement, RoleGeneral}

func (r Role) Valid() bool {
	_, ok := RolePermissions[r]
	return ok
}

func (r Role) Operations() []Operation {
	return RolePermissions[r]
}

func (r Role) Can(op Operation) bool {
	for _, allowed := range RolePermissions[r] {
		if allowed == op {
			return true
		}
	}
	return false
}

func (r Role) Summary() string {
	return roleSummaries[r]
}

// ParseRole matches the role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, true
		}
	}
	return "", false
}

// RoleByIndex maps a 1-based menu choice to a role. Out of range choices yield
// General and false.
func RoleByIndex(i int) (Role, bool) {
	if i < 1 || i > len(Roles) {
		return RoleGeneral, false
	}
	return Roles[i-1], true
}
