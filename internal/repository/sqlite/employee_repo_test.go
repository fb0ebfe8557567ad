package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"employee-directory/internal/domain"
	"employee-directory/internal/repository/repotest"
)

func openTestDB(t *testing.T, dsn string) *SqliteEmployeeRepo {
	t.Helper()
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open(%q): %v", dsn, err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSqliteEmployeeRepo(db)
}

func TestSqliteEmployeeRepoContract(t *testing.T) {
	repotest.RunEmployeeRepoContract(t, func(t *testing.T) domain.EmployeeRepo {
		return openTestDB(t, ":memory:")
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestFileDatabasePersists(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "directory.db")

	repo := openTestDB(t, dsn)
	if err := repo.CreateEmployee(domain.Employee{ID: 7, Name: "Kept", Department: "IT", Position: "Dev", Salary: 1, Role: domain.RoleManagement}); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	reopened := openTestDB(t, dsn)
	e, err := reopened.GetEmployeeByID(7)
	if err != nil {
		t.Fatalf("GetEmployeeByID after reopen: %v", err)
	}
	if e.Name != "Kept" || e.Role != domain.RoleManagement {
		t.Fatalf("unexpected record: %+v", e)
	}
}

func TestNegativeSalaryRejectedBySchema(t *testing.T) {
	repo := openTestDB(t, ":memory:")
	err := repo.CreateEmployee(domain.Employee{ID: 1, Name: "A", Salary: -5, Role: domain.RoleGeneral})
	if err == nil {
		t.Fatalf("expected check constraint failure")
	}
	if errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("check failure must not be reported as duplicate id")
	}
}
