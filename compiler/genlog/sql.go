package genlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// DefaultTable is the table entries are inserted into.
const DefaultTable = "mapgen_log"

// Drivers returns the names of the supported database drivers.
func Drivers() []string {
	return []string{MySQL, Postgres, SQLite}
}

// SQLLog inserts one row per entry into a database table.
type SQLLog struct {
	recorder
	driver string
	dsn    string
	table  string
	db     *sql.DB
	ownDB  bool
}

// NewSQLLog returns a log that opens its own connection pool.
func NewSQLLog(driver, dsn string) *SQLLog {
	return &SQLLog{driver: driver, dsn: dsn, table: DefaultTable, ownDB: true}
}

// NewSQLLogDB returns a log on top of an existing connection pool. The
// pool is not closed by Close.
func NewSQLLogDB(db *sql.DB, driver string) *SQLLog {
	return &SQLLog{driver: driver, table: DefaultTable, db: db}
}

// DB returns the underlying connection pool.
func (l *SQLLog) DB() *sql.DB {
	return l.db
}

// Open implements Log. It creates the log table if it does not exist.
func (l *SQLLog) Open(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		db, err := sql.Open(l.driver, l.dsn)
		if err != nil {
			return fmt.Errorf("genlog: open %s: %w", l.driver, err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return fmt.Errorf("genlog: connect %s: %w", l.driver, err)
		}
		l.db = db
	}
	if _, err := l.db.ExecContext(ctx, l.createTable()); err != nil {
		if l.ownDB {
			l.db.Close()
			l.db = nil
		}
		return fmt.Errorf("genlog: create table %s: %w", l.table, err)
	}
	l.start()
	return nil
}

// Record implements Log.
func (l *SQLLog) Record(ctx context.Context, e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.claim(e); err != nil {
		return err
	}
	_, err := l.db.ExecContext(ctx, l.insert(), e.RunID, e.Type, e.Status.String(), e.Reason, e.Time.UTC())
	if err != nil {
		return fmt.Errorf("genlog: insert %s: %w", e.Type, err)
	}
	return nil
}

// Close implements Log.
func (l *SQLLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stop()
	if !l.ownDB || l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

func (l *SQLLog) createTable() string {
	return "CREATE TABLE IF NOT EXISTS " + l.table + " (" +
		"run_id VARCHAR(36) NOT NULL, " +
		"type_name VARCHAR(255) NOT NULL, " +
		"status VARCHAR(16) NOT NULL, " +
		"reason TEXT, " +
		"recorded_at TIMESTAMP NOT NULL, " +
		"PRIMARY KEY (run_id, type_name))"
}

func (l *SQLLog) insert() string {
	cols := []string{"run_id", "type_name", "status", "reason", "recorded_at"}
	args := make([]string, len(cols))
	for i := range cols {
		if l.driver == Postgres {
			args[i] = fmt.Sprintf("$%d", i+1)
		} else {
			args[i] = "?"
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", l.table, strings.Join(cols, ", "), strings.Join(args, ", "))
}
