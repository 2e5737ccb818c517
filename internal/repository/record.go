// Package repository loads stored legal records and keeps track of the
// documents generated from them.
package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	apperrors "legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/documents"
)

// RecordRepository loads a record owned by ownerID.
type RecordRepository interface {
	GetRecordByID(ctx context.Context, id, ownerID string) (*documents.Record, error)
}

// PostgresRecordRepository reads records from a table with the columns
// id, owner_id, document_type, fields (jsonb) and blocks (jsonb, nullable).
type PostgresRecordRepository struct {
	db    *sql.DB
	query string
}

// NewPostgresRecordRepository creates a repository over table.
func NewPostgresRecordRepository(db *sql.DB, table string) *PostgresRecordRepository {
	return &PostgresRecordRepository{
		db: db,
		query: fmt.Sprintf(
			"SELECT id, owner_id, document_type, fields, blocks FROM %s WHERE id = $1 AND owner_id = $2",
			pq.QuoteIdentifier(table),
		),
	}
}

func (r *PostgresRecordRepository) GetRecordByID(ctx context.Context, id, ownerID string) (*documents.Record, error) {
	var (
		rec    documents.Record
		fields []byte
		blocks []byte
	)
	err := r.db.QueryRowContext(ctx, r.query, id, ownerID).
		Scan(&rec.ID, &rec.OwnerID, &rec.Type, &fields, &blocks)
	if err != nil {
		return nil, classify(err, id, ownerID)
	}

	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &rec.Fields); err != nil {
			return nil, apperrors.NewMalformedInputError("fields", err.Error())
		}
	}
	if len(blocks) > 0 {
		if err := json.Unmarshal(blocks, &rec.Blocks); err != nil {
			return nil, apperrors.NewMalformedInputError("blocks", err.Error())
		}
	}
	return &rec, nil
}

func classify(err error, id, ownerID string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperrors.NewRecordNotFoundError(id, ownerID)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewQueryTimeoutError("get_record")
	case errors.Is(err, driver.ErrBadConn):
		return apperrors.NewDatabaseConnectionFailedError(err)
	default:
		return apperrors.NewQueryExecutionFailedError("get_record", err)
	}
}
