package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		name TEXT,
		email TEXT,
		password_hash TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPolicyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE policies (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		policy_name TEXT NOT NULL,
		policy_number TEXT NOT NULL,
		insurance_company TEXT NOT NULL,
		policy_type TEXT,
		premium_amount REAL,
		premium_frequency TEXT,
		coverage_amount REAL,
		status TEXT,
		start_date DATETIME,
		end_date DATETIME,
		notes TEXT,
		documents TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
