package domain

type EmployeeRepo interface {
	GetAllEmployees() ([]Employee, error)
	GetEmployeeByID(id int) (Employee, error)
	FindByName(substr string) ([]Employee, error)
	FindByDepartment(substr string) ([]Employee, error)
	CreateEmployee(e Employee) error
	UpdateEmployee(e Employee) error
	DeleteEmployee(id int) error
}

type Employee struct {
	ID         int
	Name       string
	Department string
	Position   string
	Salary     float64
	Role       Role
}

// Field names a mutable attribute of an Employee. ID and Role are never mutable.
type Field int

const (
	FieldName Field = iota + 1
	FieldDepartment
	FieldPosition
	FieldSalary
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldDepartment:
		return "Department"
	case FieldPosition:
		return "Position"
	case FieldSalary:
		return "Salary"
	}
	return "unknown"
}

// ParseField accepts the lower-case field name or its short form.
func ParseField(s string) (Field, bool) {
	switch s {
	case "name":
		return FieldName, true
	case "department", "dept":
		return FieldDepartment, true
	case "position", "pos":
		return FieldPosition, true
	case "salary":
		return FieldSalary, true
	}
	return 0, false
}

// Change is a single-field modification. Salary is read only for FieldSalary.
type Change struct {
	Field  Field
	Text   string
	Salary float64
}

func (c Change) Apply(e *Employee) error {
	switch c.Field {
	case FieldName:
		e.Name = c.Text
	case FieldDepartment:
		e.Department = c.Text
	case FieldPosition:
		e.Position = c.Text
	case FieldSalary:
		if c.Salary < 0 {
			return ErrInvalidSalary
		}
		e.Salary = c.Salary
	default:
		return ErrUnknownField
	}
	return nil
}

// DefaultEmployees is the directory loaded at startup.
func DefaultEmployees() []Employee {
	return []Employee{
		{ID: 1001, Name: "Sarah Johnson", Department: "Human Resources", Position: "HR Manager", Salary: 75000, Role: RoleHR},
		{ID: 2001, Name: "Mike Davis", Department: "Operations", Position: "Operations Manager", Salary: 85000, Role: RoleManagement},
		{ID: 3001, Name: "John Smith", Department: "IT", Position: "Software Developer", Salary: 65000, Role: RoleGeneral},
		{ID: 3002, Name: "Emily Brown", Department: "Marketing", Position: "Marketing Specialist", Salary: 55000, Role: RoleGeneral},
		{ID: 3003, Name: "David Wilson", Department: "Finance", Position: "Financial Analyst", Salary: 60000, Role: RoleGeneral},
	}
}
