package database

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/somo/core"
)

func TestDSN(t *testing.T) {
	conf := core.DatabaseConfig{
		Engine: "postgres", Host: "db", Port: "5432", Name: "somo",
		User: "app", Password: "p@ss", AdminUser: "root", AdminPassword: "secret",
	}

	tests := []struct {
		name     string
		admin    bool
		tls      bool
		wantUser string
		wantSSL  string
	}{
		{name: "app user", wantUser: "app", wantSSL: "require"},
		{name: "admin user", admin: true, wantUser: "root", wantSSL: "require"},
		{name: "tls disabled", tls: true, wantUser: "app", wantSSL: "disable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := conf
			c.DisableTLS = tt.tls
			u, err := url.Parse(dsn("somo", tt.admin, c))
			if err != nil {
				t.Fatalf("dsn() unparseable: %v", err)
			}
			assert.Equal(t, "postgres", u.Scheme)
			assert.Equal(t, "db:5432", u.Host)
			assert.Equal(t, "/somo", u.Path)
			assert.Equal(t, tt.wantUser, u.User.Username())
			assert.Equal(t, tt.wantSSL, u.Query().Get("sslmode"))
			assert.Equal(t, "utc", u.Query().Get("timezone"))
		})
	}
}

func TestCreateStmt(t *testing.T) {
	got := createStmt("Tasks", []string{"Status", "Project Name"})
	want := `CREATE TABLE IF NOT EXISTS "Tasks" ("_pos" INTEGER NOT NULL, "Status" TEXT NOT NULL DEFAULT '', "Project Name" TEXT NOT NULL DEFAULT '')`
	assert.Equal(t, want, got)
}

func TestSelectStmt(t *testing.T) {
	assert.Equal(t, `SELECT "Day", "Time" FROM "Schedule" ORDER BY "_pos"`, selectStmt("Schedule", []string{"Day", "Time"}))
}

func TestInsertStmt(t *testing.T) {
	stmt, args := insertStmt("Tasks", []string{"Task", "Notes"}, 10, [][]string{{"Essay", "x"}, {"Lab"}})
	assert.Equal(t, `INSERT INTO "Tasks" ("_pos", "Task", "Notes") VALUES ($1, $2, $3), ($4, $5, $6)`, stmt)
	assert.Equal(t, []interface{}{10, "Essay", "x", 11, "Lab", ""}, args)
}

func TestBatches(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}}
	got := batches(rows, 2)
	if assert.Len(t, got, 3) {
		assert.Equal(t, 0, got[0].offset)
		assert.Equal(t, 4, got[2].offset)
		assert.Equal(t, [][]string{{"e"}}, got[2].rows)
	}
	assert.Empty(t, batches(nil, 2))
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "", cellText(nil))
	assert.Equal(t, "abc", cellText([]byte("abc")))
	assert.Equal(t, "12", cellText(int64(12)))
}
