package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/ecocafe/internal/db"
	"github.com/alexanderramin/ecocafe/internal/domain"
)

// SQLiteReportRepo implements ReportRepo using a SQLite database.
type SQLiteReportRepo struct {
	db db.DBTX
}

func NewSQLiteReportRepo(conn db.DBTX) *SQLiteReportRepo {
	return &SQLiteReportRepo{db: conn}
}

func (r *SQLiteReportRepo) Create(ctx context.Context, rep *domain.ReportRecord) error {
	sel, err := nullableJSON(rep.Selection)
	if err != nil {
		return fmt.Errorf("encoding selection: %w", err)
	}
	query := `INSERT INTO reports (` + reportColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rep.ID,
		string(rep.Context),
		rep.ContextLabel,
		rep.Message,
		bytesToValue(sel),
		formatTime(rep.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}
	return nil
}

func (r *SQLiteReportRepo) List(ctx context.Context) ([]*domain.ReportRecord, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var out []*domain.ReportRecord
	for rows.Next() {
		var rep domain.ReportRecord
		var reportCtx, createdAt string
		var sel sql.NullString
		if err := rows.Scan(&rep.ID, &reportCtx, &rep.ContextLabel, &rep.Message, &sel, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		rep.Context = domain.ReportContext(reportCtx)
		if rep.Selection, err = decodeSelection(nullBytes(sel)); err != nil {
			return nil, err
		}
		if rep.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, &rep)
	}
	return out, rows.Err()
}
