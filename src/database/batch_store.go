package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/username/edvhesabat/backend/src/models"
	"github.com/username/edvhesabat/backend/src/utils"
)

// ErrBatchNotFound is returned when a batch ID has no stored batch.
var ErrBatchNotFound = errors.New("batch not found")

// InsertBatch persists a batch header and its records in one transaction.
// Batches are write-once: they are never updated after this insert, which
// is what makes report recomputation idempotent.
func InsertBatch(batchID, source string, records []models.EDVRecord, report models.SkipReport) error {
	dbTx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	_, err = dbTx.Exec(`INSERT INTO batches (id, source, loaded, skipped_bad_date, skipped_bad_amount, skipped_missing_field) VALUES (?, ?, ?, ?, ?, ?)`,
		batchID, source, report.Loaded, report.BadDate, report.BadAmount, report.MissingField)
	if err != nil {
		return fmt.Errorf("error inserting batch header: %w", err)
	}

	stmt, err := dbTx.Prepare(`INSERT INTO edv_records (batch_id, record_id, date, direction, counterparty_voen, counterparty_name, document_series, document_number, net_amount, tax_rate, tax_amount, gross_amount, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			batchID, r.ID, r.Date.Format("2006-01-02"), string(r.Direction),
			r.CounterpartyVOEN, r.CounterpartyName, r.DocumentSeries, r.DocumentNumber,
			r.NetAmount.StringFixed(2), r.TaxRate, r.TaxAmount.StringFixed(2), r.GrossAmount.StringFixed(2),
			r.Status,
		)
		if err != nil {
			return fmt.Errorf("error inserting record (ID: %s): %w", r.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("error committing batch: %w", err)
	}
	return nil
}

// FetchBatchRecords loads every record of a batch back into its canonical
// form. Amounts are stored as 2dp decimal strings, so the round-trip is
// exact.
func FetchBatchRecords(batchID string) ([]models.EDVRecord, error) {
	rows, err := DB.Query(`
		SELECT record_id, date, direction, counterparty_voen, counterparty_name,
		document_series, document_number, net_amount, tax_rate, tax_amount, gross_amount, status
		FROM edv_records
		WHERE batch_id = ?
		ORDER BY date, id`, batchID)
	if err != nil {
		return nil, fmt.Errorf("error querying records for batch %s: %w", batchID, err)
	}
	defer rows.Close()

	var records []models.EDVRecord
	for rows.Next() {
		var r models.EDVRecord
		var dateStr, direction, netStr, taxStr, grossStr string
		if err := rows.Scan(
			&r.ID, &dateStr, &direction, &r.CounterpartyVOEN, &r.CounterpartyName,
			&r.DocumentSeries, &r.DocumentNumber, &netStr, &r.TaxRate, &taxStr, &grossStr, &r.Status,
		); err != nil {
			return nil, fmt.Errorf("error scanning record for batch %s: %w", batchID, err)
		}
		r.Direction = models.Direction(direction)
		if r.Date, err = utils.ParseFlexibleDate(dateStr); err != nil {
			return nil, fmt.Errorf("corrupt date %q in stored batch %s: %w", dateStr, batchID, err)
		}
		if r.NetAmount, err = models.MoneyFromString(netStr); err != nil {
			return nil, fmt.Errorf("corrupt net amount in stored batch %s: %w", batchID, err)
		}
		if r.TaxAmount, err = models.MoneyFromString(taxStr); err != nil {
			return nil, fmt.Errorf("corrupt tax amount in stored batch %s: %w", batchID, err)
		}
		if r.GrossAmount, err = models.MoneyFromString(grossStr); err != nil {
			return nil, fmt.Errorf("corrupt gross amount in stored batch %s: %w", batchID, err)
		}
		records = append(records, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over records for batch %s: %w", batchID, err)
	}

	if records == nil {
		// Distinguish an empty batch from an unknown one.
		var exists int
		err := DB.QueryRow("SELECT COUNT(1) FROM batches WHERE id = ?", batchID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("error checking batch %s: %w", batchID, err)
		}
		if exists == 0 {
			return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
		}
		records = []models.EDVRecord{}
	}
	return records, nil
}

// GetBatchInfo returns the stored header of one batch.
func GetBatchInfo(batchID string) (models.BatchInfo, error) {
	var info models.BatchInfo
	err := DB.QueryRow(`
		SELECT id, source, loaded, skipped_bad_date, skipped_bad_amount, skipped_missing_field, created_at
		FROM batches WHERE id = ?`, batchID).
		Scan(&info.ID, &info.Source, &info.SkipReport.Loaded, &info.SkipReport.BadDate,
			&info.SkipReport.BadAmount, &info.SkipReport.MissingField, &info.CreatedAt)
	if err == sql.ErrNoRows {
		return models.BatchInfo{}, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
	}
	if err != nil {
		return models.BatchInfo{}, fmt.Errorf("error querying batch %s: %w", batchID, err)
	}
	return info, nil
}
