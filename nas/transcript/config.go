package transcript

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendSql    = "sql"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

var backends = []string{BackendFile, BackendBadger, BackendSql, BackendRedis, BackendNone}

type Config struct {
	// Backend selects the sink: file, badger, sql, redis or none.
	Backend string `json:"backend"`
	// Path of the transcript file, or badger directory.
	Path string `json:"path"`
	// SqlDriver is sqlite3 or mysql.
	SqlDriver string `json:"sql_driver"`
	// SqlDsn is the data source name passed to the driver.
	SqlDsn string `json:"sql_dsn"`
	// RedisAddr is the host:port of the redis server.
	RedisAddr string `json:"redis_addr"`
	// RedisKey is the list records are pushed onto.
	RedisKey string `json:"redis_key"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:   BackendFile,
		Path:      "output.txt",
		SqlDriver: "sqlite3",
		SqlDsn:    "transcripts.db",
		RedisAddr: "localhost:6379",
		RedisKey:  "nas_transcripts",
	}
}

// Parse validates the configuration. Relative paths resolve against base.
func (c *Config) Parse(base string) error {
	if !slices.Contains(backends, c.Backend) {
		return fmt.Errorf("unknown transcript backend %q", c.Backend)
	}

	switch c.Backend {
	case BackendFile, BackendBadger:
		if c.Path == "" {
			return fmt.Errorf("transcript path must be set for backend %s", c.Backend)
		}
		if !filepath.IsAbs(c.Path) && base != "" {
			c.Path = filepath.Join(base, c.Path)
		}
	case BackendSql:
		if _, ok := sqlSchemas[c.SqlDriver]; !ok {
			return fmt.Errorf("unsupported sql driver %q", c.SqlDriver)
		}
		if c.SqlDsn == "" {
			return fmt.Errorf("sql_dsn must be set")
		}
		// sqlite3 DSNs are file paths, optionally as file: URIs
		if c.SqlDriver == "sqlite3" && base != "" && !isSqliteSpecial(c.SqlDsn) && !filepath.IsAbs(c.SqlDsn) {
			c.SqlDsn = filepath.Join(base, c.SqlDsn)
		}
	case BackendRedis:
		if c.RedisAddr == "" || c.RedisKey == "" {
			return fmt.Errorf("redis_addr and redis_key must be set")
		}
	}
	return nil
}

func isSqliteSpecial(dsn string) bool {
	return strings.HasPrefix(dsn, "file:") || strings.HasPrefix(dsn, ":memory:")
}

// Open creates the sink selected by the configuration.
func Open(c *Config) (Sink, error) {
	switch c.Backend {
	case BackendFile:
		return NewFileSink(c.Path), nil
	case BackendBadger:
		return NewBadgerSink(c.Path)
	case BackendSql:
		return NewSqlSink(c.SqlDriver, c.SqlDsn)
	case BackendRedis:
		return NewRedisSink(c.RedisAddr, c.RedisKey), nil
	case BackendNone:
		return discardSink{}, nil
	}
	return nil, fmt.Errorf("unknown transcript backend %q", c.Backend)
}
