package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgExecer is satisfied by *pgxpool.Pool and pgx.Tx.
type pgExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PgResultRepo implements ResultRepo using PostgreSQL.
type PgResultRepo struct {
	pool *pgxpool.Pool
}

func NewPgResultRepo(pool *pgxpool.Pool) *PgResultRepo {
	return &PgResultRepo{pool: pool}
}

func (r *PgResultRepo) Create(ctx context.Context, rec *domain.ResultRecord) error {
	return insertPgResult(ctx, r.pool, rec)
}

func (r *PgResultRepo) CreateAll(ctx context.Context, recs []*domain.ResultRecord) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, rec := range recs {
			if err := insertPgResult(ctx, tx, rec); err != nil {
				return fmt.Errorf("result %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}

func insertPgResult(ctx context.Context, conn pgExecer, rec *domain.ResultRecord) error {
	enc, err := encodeResult(rec)
	if err != nil {
		return err
	}
	query := `INSERT INTO survey_results (` + resultColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = conn.Exec(ctx, query,
		rec.ID,
		rec.SubjectName,
		rec.SubjectAddress,
		rec.GPSEnabled,
		enc.lat,
		enc.lng,
		string(enc.answers),
		string(enc.answersBool),
		string(rec.Grade.Tier),
		rec.Grade.Icon,
		rec.Grade.Stars,
		rec.Grade.Message,
		rec.Grade.Percent,
		bytesToValue(enc.selection),
		string(enc.tags),
		rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting survey result: %w", err)
	}
	return nil
}

func (r *PgResultRepo) GetByID(ctx context.Context, id string) (*domain.ResultRecord, error) {
	query := `SELECT ` + resultColumns + ` FROM survey_results WHERE id = $1`
	rec, err := scanPgResult(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("survey result: %w", ErrNotFound)
	}
	return rec, err
}

func (r *PgResultRepo) List(ctx context.Context) ([]*domain.ResultRecord, error) {
	query := `SELECT ` + resultColumns + ` FROM survey_results ORDER BY created_at DESC, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing survey results: %w", err)
	}
	defer rows.Close()

	var out []*domain.ResultRecord
	for rows.Next() {
		rec, err := scanPgResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanPgResult(row pgx.Row) (*domain.ResultRecord, error) {
	var rec domain.ResultRecord
	var tier string
	var enc encodedResult

	err := row.Scan(
		&rec.ID, &rec.SubjectName, &rec.SubjectAddress, &rec.GPSEnabled, &enc.lat, &enc.lng,
		&enc.answers, &enc.answersBool,
		&tier, &rec.Grade.Icon, &rec.Grade.Stars, &rec.Grade.Message, &rec.Grade.Percent,
		&enc.selection, &enc.tags, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning survey result: %w", err)
	}
	rec.Grade.Tier = domain.GradeTier(tier)
	rec.CreatedAt = rec.CreatedAt.UTC()
	if err := enc.decodeInto(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// PgReportRepo implements ReportRepo using PostgreSQL.
type PgReportRepo struct {
	pool *pgxpool.Pool
}

func NewPgReportRepo(pool *pgxpool.Pool) *PgReportRepo {
	return &PgReportRepo{pool: pool}
}

func (r *PgReportRepo) Create(ctx context.Context, rep *domain.ReportRecord) error {
	sel, err := nullableJSON(rep.Selection)
	if err != nil {
		return fmt.Errorf("encoding selection: %w", err)
	}
	query := `INSERT INTO reports (` + reportColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.pool.Exec(ctx, query,
		rep.ID, string(rep.Context), rep.ContextLabel, rep.Message, bytesToValue(sel), rep.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}
	return nil
}

func (r *PgReportRepo) List(ctx context.Context) ([]*domain.ReportRecord, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var out []*domain.ReportRecord
	for rows.Next() {
		var rep domain.ReportRecord
		var reportCtx string
		var sel []byte
		var createdAt time.Time
		if err := rows.Scan(&rep.ID, &reportCtx, &rep.ContextLabel, &rep.Message, &sel, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		rep.Context = domain.ReportContext(reportCtx)
		rep.CreatedAt = createdAt.UTC()
		if rep.Selection, err = decodeSelection(sel); err != nil {
			return nil, err
		}
		out = append(out, &rep)
	}
	return out, rows.Err()
}
