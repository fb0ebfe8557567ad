package sqlite

import (
	"database/sql"
	"errors"

	"employee-directory/internal/domain"

	"github.com/mattn/go-sqlite3"
)

const selectEmployees = `SELECT id, name, department, position, salary, role FROM employees`

type SqliteEmployeeRepo struct {
	db *sql.DB
}

func NewSqliteEmployeeRepo(db *sql.DB) *SqliteEmployeeRepo {
	return &SqliteEmployeeRepo{db: db}
}

func (r *SqliteEmployeeRepo) CreateEmployee(e domain.Employee) error {
	_, err := r.db.Exec(
		`INSERT INTO employees (id, name, department, position, salary, role) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Department, e.Position, e.Salary, string(e.Role),
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateID
	}
	return err
}

func (r *SqliteEmployeeRepo) GetAllEmployees() ([]domain.Employee, error) {
	return r.query(selectEmployees + ` ORDER BY seq`)
}

func (r *SqliteEmployeeRepo) GetEmployeeByID(id int) (domain.Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(selectEmployees+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Employee{}, domain.ErrNotFound
	}
	return e, err
}

// instr is case-sensitive, unlike LIKE.
func (r *SqliteEmployeeRepo) FindByName(substr string) ([]domain.Employee, error) {
	return r.query(selectEmployees+` WHERE instr(name, ?) > 0 ORDER BY seq`, substr)
}

func (r *SqliteEmployeeRepo) FindByDepartment(substr string) ([]domain.Employee, error) {
	return r.query(selectEmployees+` WHERE instr(department, ?) > 0 ORDER BY seq`, substr)
}

func (r *SqliteEmployeeRepo) UpdateEmployee(e domain.Employee) error {
	res, err := r.db.Exec(
		`UPDATE employees SET name = ?, department = ?, position = ?, salary = ? WHERE id = ?`,
		e.Name, e.Department, e.Position, e.Salary, e.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SqliteEmployeeRepo) DeleteEmployee(id int) error {
	res, err := r.db.Exec(`DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SqliteEmployeeRepo) query(q string, args ...any) ([]domain.Employee, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(s scanner) (domain.Employee, error) {
	var e domain.Employee
	var role string
	if err := s.Scan(&e.ID, &e.Name, &e.Department, &e.Position, &e.Salary, &role); err != nil {
		return domain.Employee{}, err
	}
	e.Role = domain.Role(role)
	return e, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

var _ domain.EmployeeRepo = (*SqliteEmployeeRepo)(nil)
