package database

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

func (d *MySQLDialect) DSN(config DialectConfig) string {
	// The mysql driver expects DSNs without a scheme prefix
	dsn := strings.TrimPrefix(config.URL, "mysql://")
	if !strings.Contains(dsn, "parseTime=") {
		if strings.Contains(dsn, "?") {
			dsn += "&parseTime=true"
		} else {
			dsn += "?parseTime=true"
		}
	}
	return dsn
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	// MySQL uses ? placeholders, no rewrite needed
	return query
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
	return nil
}

func (d *MySQLDialect) CreateDocumentsTableQuery() string {
	// TEXT columns cannot be primary keys in MySQL, so the key parts are VARCHAR
	return `
		CREATE TABLE IF NOT EXISTS documents (
			collection VARCHAR(64) NOT NULL,
			doc_key VARCHAR(128) NOT NULL,
			doc_value MEDIUMTEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (collection, doc_key)
		);
	`
}

func (d *MySQLDialect) UpsertDocumentQuery() string {
	return `
		INSERT INTO documents (collection, doc_key, doc_value, updated_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE doc_value = VALUES(doc_value), updated_at = VALUES(updated_at)
	`
}
