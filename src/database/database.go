package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/edvhesabat/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database migrations for:", databasePath)
	}
	migrateBatchTable()

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS batches (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		loaded INTEGER NOT NULL,
		skipped_bad_date INTEGER NOT NULL DEFAULT 0,
		skipped_bad_amount INTEGER NOT NULL DEFAULT 0,
		skipped_missing_field INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS edv_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL,
		record_id TEXT NOT NULL,
		date TEXT NOT NULL,
		direction TEXT NOT NULL,
		counterparty_voen TEXT,
		counterparty_name TEXT,
		document_series TEXT,
		document_number TEXT,
		net_amount TEXT NOT NULL,
		tax_rate INTEGER NOT NULL,
		tax_amount TEXT NOT NULL,
		gross_amount TEXT NOT NULL,
		status TEXT,
		FOREIGN KEY(batch_id) REFERENCES batches(id)
	);

	CREATE INDEX IF NOT EXISTS idx_edv_records_batch ON edv_records(batch_id);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

func migrateBatchTable() {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='batches'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			// Table does not exist yet; CREATE TABLE below covers it.
			return
		}
		if logger.L != nil {
			logger.L.Error("Error checking for 'batches' table", "error", err)
		} else {
			stdlog.Printf("Error checking for 'batches' table: %v", err)
		}
		return
	}

	rows, err := DB.Query("PRAGMA table_info(batches)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for 'batches'", "error", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for 'batches'", "error", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for 'batches'", "error", err)
		}
		return
	}

	if _, ok := columnExists["skipped_missing_field"]; !ok {
		_, err := DB.Exec("ALTER TABLE batches ADD COLUMN skipped_missing_field INTEGER NOT NULL DEFAULT 0")
		if err != nil {
			logger.L.Error("Error adding 'skipped_missing_field' column to 'batches' table", "error", err)
		} else {
			logger.L.Info("Added 'skipped_missing_field' column to 'batches' table")
		}
	}
}
