package service

import (
	"errors"
	"fmt"
	"log"

	"employee-directory/internal/domain"
)

// EmployeeService guards every store operation with the session's role.
type EmployeeService struct {
	Repo domain.EmployeeRepo
}

func NewEmployeeService(repo domain.EmployeeRepo) *EmployeeService {
	return &EmployeeService{Repo: repo}
}

func (s *EmployeeService) Authorize(sess *Session, op domain.Operation) error {
	if sess == nil {
		return &domain.PermissionError{Op: op}
	}
	if !sess.Role().Can(op) {
		log.Printf("[access] denied id=%d role=%s op=%s session=%s", sess.User.ID, sess.Role(), op, sess.ID)
		return &domain.PermissionError{Role: sess.Role(), Op: op}
	}
	return nil
}

func (s *EmployeeService) Exists(id int) (bool, error) {
	_, err := s.Repo.GetEmployeeByID(id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user id %d: %w", id, err)
	}
	return true, nil
}

func (s *EmployeeService) Add(sess *Session, e domain.Employee) error {
	if err := s.Authorize(sess, domain.OpAdd); err != nil {
		return err
	}
	if e.Salary < 0 {
		return domain.ErrInvalidSalary
	}
	if !e.Role.Valid() {
		e.Role = domain.RoleGeneral
	}
	if err := s.Repo.CreateEmployee(e); err != nil {
		return fmt.Errorf("failed to add employee %d: %w", e.ID, err)
	}
	log.Printf("[employees] added id=%d role=%s by=%d", e.ID, e.Role, sess.User.ID)
	return nil
}

// View returns every record for roles with view-all, and only the caller's
// own record for view-own.
func (s *EmployeeService) View(sess *Session) ([]domain.Employee, error) {
	if sess != nil && sess.Role().Can(domain.OpViewAll) {
		employees, err := s.Repo.GetAllEmployees()
		if err != nil {
			return nil, fmt.Errorf("failed to list employees: %w", err)
		}
		return employees, nil
	}
	if err := s.Authorize(sess, domain.OpViewOwn); err != nil {
		return nil, err
	}
	me, err := s.Repo.GetEmployeeByID(sess.User.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load own record: %w", err)
	}
	return []domain.Employee{me}, nil
}

func (s *EmployeeService) FindByID(sess *Session, id int) (domain.Employee, error) {
	return s.Get(sess, domain.OpSearch, id)
}

func (s *EmployeeService) FindByName(sess *Session, text string) ([]domain.Employee, error) {
	if err := s.Authorize(sess, domain.OpSearch); err != nil {
		return nil, err
	}
	found, err := s.Repo.FindByName(text)
	if err != nil {
		return nil, fmt.Errorf("failed to search by name: %w", err)
	}
	return found, nil
}

func (s *EmployeeService) FindByDepartment(sess *Session, text string) ([]domain.Employee, error) {
	if err := s.Authorize(sess, domain.OpSearch); err != nil {
		return nil, err
	}
	found, err := s.Repo.FindByDepartment(text)
	if err != nil {
		return nil, fmt.Errorf("failed to search by department: %w", err)
	}
	return found, nil
}

// Get loads one record on behalf of op, e.g. the preview before a modify.
func (s *EmployeeService) Get(sess *Session, op domain.Operation, id int) (domain.Employee, error) {
	if err := s.Authorize(sess, op); err != nil {
		return domain.Employee{}, err
	}
	e, err := s.Repo.GetEmployeeByID(id)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("failed to find employee %d: %w", id, err)
	}
	return e, nil
}

// Modify returns the stored record. The caller's session is left untouched;
// callers swap in Session.WithUser when the record is their own.
func (s *EmployeeService) Modify(sess *Session, id int, change domain.Change) (domain.Employee, error) {
	e, err := s.Get(sess, domain.OpModify, id)
	if err != nil {
		return domain.Employee{}, err
	}
	if err := change.Apply(&e); err != nil {
		return domain.Employee{}, err
	}
	if err := s.Repo.UpdateEmployee(e); err != nil {
		return domain.Employee{}, fmt.Errorf("failed to update employee %d: %w", id, err)
	}
	log.Printf("[employees] modified id=%d field=%s by=%d", id, change.Field, sess.User.ID)
	return e, nil
}

func (s *EmployeeService) Delete(sess *Session, id int) error {
	if err := s.Authorize(sess, domain.OpDelete); err != nil {
		return err
	}
	if id == sess.User.ID {
		return domain.ErrSelfDelete
	}
	if err := s.Repo.DeleteEmployee(id); err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	log.Printf("[employees] deleted id=%d by=%d", id, sess.User.ID)
	return nil
}

// SeedEmployees loads records that are not already present.
func SeedEmployees(repo domain.EmployeeRepo, records []domain.Employee) error {
	added := 0
	for _, e := range records {
		err := repo.CreateEmployee(e)
		if errors.Is(err, domain.ErrDuplicateID) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to seed employee %d: %w", e.ID, err)
		}
		added++
	}
	log.Printf("[seed] loaded %d of %d records", added, len(records))
	return nil
}
