package memory

import (
	"strings"

	"employee-directory/internal/domain"
)

// MemoryEmployeeRepo keeps records in insertion order. It is not safe for
// concurrent use.
type MemoryEmployeeRepo struct {
	employees []domain.Employee
}

func NewMemoryEmployeeRepo() *MemoryEmployeeRepo {
	return &MemoryEmployeeRepo{}
}

func (r *MemoryEmployeeRepo) CreateEmployee(e domain.Employee) error {
	if r.indexOf(e.ID) >= 0 {
		return domain.ErrDuplicateID
	}
	r.employees = append(r.employees, e)
	return nil
}

func (r *MemoryEmployeeRepo) GetAllEmployees() ([]domain.Employee, error) {
	out := make([]domain.Employee, len(r.employees))
	copy(out, r.employees)
	return out, nil
}

func (r *MemoryEmployeeRepo) GetEmployeeByID(id int) (domain.Employee, error) {
	i := r.indexOf(id)
	if i < 0 {
		return domain.Employee{}, domain.ErrNotFound
	}
	return r.employees[i], nil
}

func (r *MemoryEmployeeRepo) FindByName(substr string) ([]domain.Employee, error) {
	return r.filter(func(e domain.Employee) bool { return strings.Contains(e.Name, substr) }), nil
}

func (r *MemoryEmployeeRepo) FindByDepartment(substr string) ([]domain.Employee, error) {
	return r.filter(func(e domain.Employee) bool { return strings.Contains(e.Department, substr) }), nil
}

func (r *MemoryEmployeeRepo) UpdateEmployee(e domain.Employee) error {
	i := r.indexOf(e.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.employees[i] = e
	return nil
}

func (r *MemoryEmployeeRepo) DeleteEmployee(id int) error {
	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.employees = append(r.employees[:i], r.employees[i+1:]...)
	return nil
}

func (r *MemoryEmployeeRepo) indexOf(id int) int {
	for i, e := range r.employees {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryEmployeeRepo) filter(match func(domain.Employee) bool) []domain.Employee {
	var out []domain.Employee
	for _, e := range r.employees {
		if match(e) {
			out = append(out, e)
		}
	}
	return out
}

var _ domain.EmployeeRepo = (*MemoryEmployeeRepo)(nil)
