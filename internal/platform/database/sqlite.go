package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteDriverName is the sqlite driver with a Unicode-aware lower().
const SQLiteDriverName = "sqlite3_unicode"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			// sqlite's builtin lower() folds ASCII only.
			return conn.RegisterFunc("lower", unicodeLower, true)
		},
	})
}

func unicodeLower(v interface{}) interface{} {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		// the driver hands NULL over as a nil slice
		if s == nil {
			return nil
		}
		return strings.ToLower(string(s))
	default:
		return v
	}
}

// SQLite returns a GORM dialector for dsn on SQLiteDriverName.
func SQLite(dsn string) gorm.Dialector {
	return &sqlite.Dialector{DriverName: SQLiteDriverName, DSN: dsn}
}
