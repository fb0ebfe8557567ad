package keyboards

import (
	"testing"

	"employee-directory/internal/domain"
)

func labels(t *testing.T, role domain.Role) [][]string {
	t.Helper()
	var out [][]string
	for _, row := range BuildMenuKeyboard(role).ReplyKeyboard {
		var texts []string
		for _, b := range row {
			texts = append(texts, b.Text)
		}
		out = append(out, texts)
	}
	return out
}

func TestBuildMenuKeyboard(t *testing.T) {
	tests := []struct {
		role domain.Role
		want [][]string
	}{
		{domain.RoleHR, [][]string{
			{"Add Employee", "View All Employees"},
			{"Search Employees", "Modify Employee"},
			{"Delete Employee"},
			{"Logout"},
		}},
		{domain.RoleManagement, [][]string{
			{"View All Employees", "Search Employees"},
			{"Logout"},
		}},
		{domain.RoleGeneral, [][]string{
			{"View My Information"},
			{"Logout"},
		}},
	}
	for _, tt := range tests {
		got := labels(t, tt.role)
		if len(got) != len(tt.want) {
			t.Fatalf("%s: rows = %v, want %v", tt.role, got, tt.want)
		}
		for i := range got {
			if len(got[i]) != len(tt.want[i]) {
				t.Fatalf("%s row %d: %v, want %v", tt.role, i, got[i], tt.want[i])
			}
			for j := range got[i] {
				if got[i][j] != tt.want[i][j] {
					t.Fatalf("%s row %d: %v, want %v", tt.role, i, got[i], tt.want[i])
				}
			}
		}
	}
}

func TestBuildDeleteConfirm(t *testing.T) {
	m := BuildDeleteConfirm(3002)
	if len(m.InlineKeyboard) != 1 || len(m.InlineKeyboard[0]) != 2 {
		t.Fatalf("unexpected layout: %+v", m.InlineKeyboard)
	}
	yes, no := m.InlineKeyboard[0][0], m.InlineKeyboard[0][1]
	if yes.Unique != DeleteYes || yes.Data != "3002" {
		t.Fatalf("yes button = %+v", yes)
	}
	if no.Unique != DeleteNo || no.Data != "3002" {
		t.Fatalf("no button = %+v", no)
	}
}
