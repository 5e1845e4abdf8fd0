package migration

import "testing"

func TestMigrationsAreNamedAndUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Migrations() {
		if m.Name == "" || m.Up == nil {
			t.Fatalf("incomplete migration %+v", m)
		}
		if seen[m.Name] {
			t.Fatalf("duplicate migration %q", m.Name)
		}
		seen[m.Name] = true
	}
	if !seen["create_resumes_table"] {
		t.Fatal("create_resumes_table must be part of the migration set")
	}
	if Migrations()[0].Name != "create_resumes_table" {
		t.Fatal("the table must be created before anything else")
	}
}
