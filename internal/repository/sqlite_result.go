package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/ecocafe/internal/db"
	"github.com/alexanderramin/ecocafe/internal/domain"
)

// SQLiteResultRepo implements ResultRepo using a SQLite database.
type SQLiteResultRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLiteResultRepo creates a new SQLiteResultRepo.
func NewSQLiteResultRepo(conn *sql.DB) *SQLiteResultRepo {
	return &SQLiteResultRepo{db: conn, uow: db.NewSQLiteUnitOfWork(conn)}
}

// NewSQLiteResultRepoWithUoW creates a repo whose batch inserts run through
// the given unit of work.
func NewSQLiteResultRepoWithUoW(conn db.DBTX, uow db.UnitOfWork) *SQLiteResultRepo {
	return &SQLiteResultRepo{db: conn, uow: uow}
}

func (r *SQLiteResultRepo) Create(ctx context.Context, rec *domain.ResultRecord) error {
	return insertSQLiteResult(ctx, r.db, rec)
}

func (r *SQLiteResultRepo) CreateAll(ctx context.Context, recs []*domain.ResultRecord) error {
	if r.uow == nil {
		return errors.New("batch insert requires a unit of work")
	}
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for _, rec := range recs {
			if err := insertSQLiteResult(ctx, tx, rec); err != nil {
				return fmt.Errorf("result %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}

func insertSQLiteResult(ctx context.Context, conn db.DBTX, rec *domain.ResultRecord) error {
	enc, err := encodeResult(rec)
	if err != nil {
		return err
	}
	query := `INSERT INTO survey_results (` + resultColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = conn.ExecContext(ctx, query,
		rec.ID,
		rec.SubjectName,
		rec.SubjectAddress,
		boolToInt(rec.GPSEnabled),
		nullableFloat(enc.lat),
		nullableFloat(enc.lng),
		string(enc.answers),
		string(enc.answersBool),
		string(rec.Grade.Tier),
		rec.Grade.Icon,
		rec.Grade.Stars,
		rec.Grade.Message,
		rec.Grade.Percent,
		bytesToValue(enc.selection),
		string(enc.tags),
		formatTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting survey result: %w", err)
	}
	return nil
}

func (r *SQLiteResultRepo) GetByID(ctx context.Context, id string) (*domain.ResultRecord, error) {
	query := `SELECT ` + resultColumns + ` FROM survey_results WHERE id = ?`
	rec, err := scanSQLiteResult(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("survey result: %w", ErrNotFound)
		}
		return nil, err
	}
	return rec, nil
}

func (r *SQLiteResultRepo) List(ctx context.Context) ([]*domain.ResultRecord, error) {
	query := `SELECT ` + resultColumns + ` FROM survey_results ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing survey results: %w", err)
	}
	defer rows.Close()

	var out []*domain.ResultRecord
	for rows.Next() {
		rec, err := scanSQLiteResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteResult(row rowScanner) (*domain.ResultRecord, error) {
	var rec domain.ResultRecord
	var gps int
	var lat, lng sql.NullFloat64
	var answers, answersBool, tags, tier, createdAt string
	var selection sql.NullString

	err := row.Scan(
		&rec.ID, &rec.SubjectName, &rec.SubjectAddress, &gps, &lat, &lng,
		&answers, &answersBool,
		&tier, &rec.Grade.Icon, &rec.Grade.Stars, &rec.Grade.Message, &rec.Grade.Percent,
		&selection, &tags, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning survey result: %w", err)
	}

	rec.GPSEnabled = intToBool(gps)
	rec.Grade.Tier = domain.GradeTier(tier)
	enc := encodedResult{
		answers:     []byte(answers),
		answersBool: []byte(answersBool),
		selection:   nullBytes(selection),
		tags:        []byte(tags),
	}
	if lat.Valid && lng.Valid {
		enc.lat, enc.lng = &lat.Float64, &lng.Float64
	}
	if err := enc.decodeInto(&rec); err != nil {
		return nil, err
	}
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &rec, nil
}
