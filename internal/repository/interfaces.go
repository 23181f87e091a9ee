package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/ecocafe/internal/domain"
)

// ErrNotFound is wrapped by every backend when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// ResultRepo persists finalized survey results. List returns newest first.
type ResultRepo interface {
	Create(ctx context.Context, r *domain.ResultRecord) error
	// CreateAll inserts all records or none.
	CreateAll(ctx context.Context, rs []*domain.ResultRecord) error
	GetByID(ctx context.Context, id string) (*domain.ResultRecord, error)
	List(ctx context.Context) ([]*domain.ResultRecord, error)
}

// ReportRepo persists user feedback reports. List returns newest first.
type ReportRepo interface {
	Create(ctx context.Context, r *domain.ReportRecord) error
	List(ctx context.Context) ([]*domain.ReportRecord, error)
}
