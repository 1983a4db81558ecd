package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// The cascade and composite-key rules live in the schema, not in Go code:
// deleting a user, role or event type must take its join rows, grants and
// events with it, and (role_id, event_type_id) must admit at most one grant.
// These tests pin the DDL so a migration edit cannot drop them silently.

func readInitMigration(t *testing.T) string {
	t.Helper()
	path := filepath.Join("..", "..", "..", "migrations", "0001_init.sql")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read migration: %v", err)
	}
	return string(data)
}

func tableDDL(t *testing.T, schema, table string) string {
	t.Helper()
	marker := "CREATE TABLE " + table + " ("
	start := strings.Index(schema, marker)
	if start < 0 {
		t.Fatalf("table %s missing from migration", table)
	}
	rest := schema[start:]
	end := strings.Index(rest, ");")
	if end < 0 {
		t.Fatalf("table %s: unterminated definition", table)
	}
	return rest[:end]
}

func TestSchemaCompositeKeys(t *testing.T) {
	schema := readInitMigration(t)

	if ddl := tableDDL(t, schema, "user_roles"); !strings.Contains(ddl, "PRIMARY KEY (user_id, role_id)") {
		t.Error("user_roles: composite primary key missing")
	}
	if ddl := tableDDL(t, schema, "role_event_type_permissions"); !strings.Contains(ddl, "PRIMARY KEY (role_id, event_type_id)") {
		t.Error("role_event_type_permissions: composite primary key missing")
	}
}

func TestSchemaCascadeDeletes(t *testing.T) {
	schema := readInitMigration(t)

	cascades := map[string]int{
		"user_roles":                  2, // user and role
		"events":                      2, // event type and creator
		"role_event_type_permissions": 2, // role and event type
	}
	for table, want := range cascades {
		ddl := tableDDL(t, schema, table)
		if got := strings.Count(ddl, "ON DELETE CASCADE"); got != want {
			t.Errorf("%s: expected %d ON DELETE CASCADE clauses, got %d", table, want, got)
		}
	}
}

func TestSchemaFlagDefaults(t *testing.T) {
	schema := readInitMigration(t)

	ddl := tableDDL(t, schema, "role_event_type_permissions")
	for _, flag := range []string{"can_see", "can_edit", "can_add"} {
		var line string
		for _, l := range strings.Split(ddl, "\n") {
			if strings.Contains(l, flag) {
				line = l
				break
			}
		}
		if line == "" {
			t.Errorf("flag column %s missing", flag)
			continue
		}
		if !strings.Contains(line, "NOT NULL") || !strings.Contains(line, "DEFAULT FALSE") {
			t.Errorf("flag column %s must be NOT NULL DEFAULT FALSE, got %q", flag, strings.TrimSpace(line))
		}
	}
}
