// Package repotest holds the behaviour every domain.EmployeeRepo must share.
package repotest

import (
	"errors"
	"strconv"
	"testing"

	"employee-directory/internal/domain"
)

// RunEmployeeRepoContract exercises repo implementations against the same
// expectations. newRepo must return an empty store.
func RunEmployeeRepoContract(t *testing.T, newRepo func(t *testing.T) domain.EmployeeRepo) {
	t.Run("CreateKeepsOrder", func(t *testing.T) {
		repo := seeded(t, newRepo(t))
		all, err := repo.GetAllEmployees()
		if err != nil {
			t.Fatalf("GetAllEmployees: %v", err)
		}
		want := domain.DefaultEmployees()
		if len(all) != len(want) {
			t.Fatalf("expected %d records, got %d", len(want), len(all))
		}
		for i := range want {
			if all[i] != want[i] {
				t.Fatalf("record %d: got %+v, want %+v", i, all[i], want[i])
			}
		}
	})

	t.Run("CreateRejectsDuplicate", func(t *testing.T) {
		repo := seeded(t, newRepo(t))
		err := repo.CreateEmployee(domain.Employee{ID: 2001, Name: "Clone", Role: domain.RoleGeneral})
		if !errors.Is(err, domain.ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID, got %v", err)
		}
		e, err := repo.GetEmployeeByID(2001)
		if err != nil || e.Name != "Mike Davis" {
			t.Fatalf("original record changed: %+v %v", e, err)
		}
	})

	t.Run("GetByIDNotFound", func(t *testing.T) {
		repo := seeded(t, newRepo(t))
		if _, err := repo.GetEmployeeByID(9999); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("FindIsCaseSensitive", func(t *testing.T) {
		repo := seeded(t, newRepo(t))
		got, err := repo.FindByName("John")
		if err != nil {
			t.Fatalf("FindByName: %v", err)
		}
		if ids(got) != "1001,3001" {
			t.Fatalf("unexpected matches for John: %s", ids(got))
		}
		got, err = repo.FindByName("john")
		if err != nil {
			t.Fatalf("FindByName: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no matches for lower-case john, got %s", ids(got))
		}
		got, err = repo.FindByDepartment("Op")
		if err != nil {
			t.Fatalf("FindByDepartment: %v", err)
		}
		if ids(got) != "2001" {
			t.Fatalf("unexpected matches for Op: %s", ids(got))
		}
		got, err = repo.FindByDepartment("")
		if err != nil {
			t.Fatalf("FindByDepartment: %v", err)
		}
		if len(got) != len(domain.DefaultEmployees()) {
			t.Fatalf("empty text should match every record, got %d", len(got))
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := seeded(t, newRepo(t))
		e, _ := repo.GetEmployeeByID(3002)
		e.Position = "Brand Lead"
		e.Salary = 58000.5
		if err := repo.UpdateEmployee(e); err != nil {
			t.Fatalf("UpdateEmployee: %v", err)
		}
		got, err := repo.GetEmployeeByID(3002)
		if err != nil || got != e {
			t.Fatalf("update not stored: %+v %v", got, err)
		}
		if err := repo.UpdateEmployee(domain.Employee{ID: 42}); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := seeded(t, newRepo(t))
		if err := repo.DeleteEmployee(3001); err != nil {
			t.Fatalf("DeleteEmployee: %v", err)
		}
		all, _ := repo.GetAllEmployees()
		if ids(all) != "1001,2001,3002,3003" {
			t.Fatalf("unexpected records after delete: %s", ids(all))
		}
		if err := repo.DeleteEmployee(3001); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
		if err := repo.CreateEmployee(domain.Employee{ID: 3001, Name: "Again", Role: domain.RoleGeneral}); err != nil {
			t.Fatalf("re-adding a deleted id should work: %v", err)
		}
		all, _ = repo.GetAllEmployees()
		if ids(all) != "1001,2001,3002,3003,3001" {
			t.Fatalf("re-added record should be appended: %s", ids(all))
		}
	})
}

func seeded(t *testing.T, repo domain.EmployeeRepo) domain.EmployeeRepo {
	t.Helper()
	for _, e := range domain.DefaultEmployees() {
		if err := repo.CreateEmployee(e); err != nil {
			t.Fatalf("seed %d: %v", e.ID, err)
		}
	}
	return repo
}

func ids(es []domain.Employee) string {
	out := ""
	for i, e := range es {
		if i > 0 {
			out += ","
		}
		out += strconv.Itoa(e.ID)
	}
	return out
}
