package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

var sqlSchemas = map[string]string{
	"sqlite3": `CREATE TABLE IF NOT EXISTS transcripts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at BIGINT NOT NULL,
		remote TEXT NOT NULL,
		path TEXT NOT NULL,
		body TEXT NOT NULL
	)`,
	"mysql": `CREATE TABLE IF NOT EXISTS transcripts (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		created_at BIGINT NOT NULL,
		remote VARCHAR(255) NOT NULL,
		path VARCHAR(255) NOT NULL,
		body TEXT NOT NULL
	)`,
}

// SqlSink stores records in a transcripts table.
type SqlSink struct {
	driver string
	db     *sql.DB
}

func NewSqlSink(driver, dsn string) (*SqlSink, error) {
	schema, ok := sqlSchemas[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s database: %w", driver, err)
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to create transcripts table: %w", err)
	}
	return &SqlSink{driver: driver, db: db}, nil
}

func (s *SqlSink) String() string {
	return "transcript-" + s.driver
}

func (s *SqlSink) Append(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO transcripts (created_at, remote, path, body) VALUES (?, ?, ?, ?)",
		rec.Time.UnixNano(), rec.Remote, rec.Path, rec.Text)
	return err
}

func (s *SqlSink) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT created_at, remote, path, body FROM transcripts ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var nanos int64
		var rec Record
		if err := rows.Scan(&nanos, &rec.Remote, &rec.Path, &rec.Text); err != nil {
			return nil, err
		}
		rec.Time = time.Unix(0, nanos)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *SqlSink) Close() error {
	return s.db.Close()
}
