package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/NordCoder/Uptimer/internal/domain/record"
)

var _ record.Store = (*RecordRepo)(nil)

// RecordRepo keeps records as jsonb rows keyed by (category, id).
type RecordRepo struct {
	db *DB
}

func NewRecordRepo(db *DB) *RecordRepo { return &RecordRepo{db: db} }

const (
	qList = `
SELECT id
FROM records
WHERE category = $1
ORDER BY id;
`

	qRead = `
SELECT data
FROM records
WHERE category = $1 AND id = $2;
`

	qCreate = `
INSERT INTO records (category, id, data)
VALUES ($1, $2, $3);
`

	qUpdate = `
UPDATE records
SET data = $3, updated_at = NOW()
WHERE category = $1 AND id = $2;
`

	qDelete = `DELETE FROM records WHERE category = $1 AND id = $2;`
)

func (r *RecordRepo) List(ctx context.Context, category string) ([]string, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qList, category)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (r *RecordRepo) Read(ctx context.Context, category, id string) (record.Record, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var data map[string]any
	if err := r.db.Pool.QueryRow(ctx, qRead, category, id).Scan(&data); err != nil {
		if err = mapErr(err); errors.Is(err, record.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("read record %s/%s: %w", category, id, err)
	}
	return record.Record(data), nil
}

func (r *RecordRepo) Create(ctx context.Context, category, id string, rec record.Record) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.Pool.Exec(ctx, qCreate, category, id, map[string]any(rec)); err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *RecordRepo) Update(ctx context.Context, category, id string, rec record.Record) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	cmd, err := r.db.Pool.Exec(ctx, qUpdate, category, id, map[string]any(rec))
	if err != nil {
		return fmt.Errorf("update record %s/%s: %w", category, id, err)
	}
	if cmd.RowsAffected() == 0 {
		return record.ErrNotFound
	}
	return nil
}

func (r *RecordRepo) Delete(ctx context.Context, category, id string) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	cmd, err := r.db.Pool.Exec(ctx, qDelete, category, id)
	if err != nil {
		return fmt.Errorf("delete record %s/%s: %w", category, id, err)
	}
	if cmd.RowsAffected() == 0 {
		return record.ErrNotFound
	}
	return nil
}
