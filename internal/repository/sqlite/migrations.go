package sqlite

import (
	"database/sql"
)

// seq keeps insertion order; id is the employee's user id.
const createEmployeesTable = `
CREATE TABLE IF NOT EXISTS employees (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id INTEGER NOT NULL UNIQUE,
    name TEXT NOT NULL,
    department TEXT NOT NULL,
    position TEXT NOT NULL,
    salary REAL NOT NULL CHECK (salary >= 0),
    role TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(createEmployeesTable); err != nil {
		return err
	}
	return nil
}

// Open connects to dsn and migrates the schema. A single connection is kept so
// that ":memory:" refers to one database for the process lifetime.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
