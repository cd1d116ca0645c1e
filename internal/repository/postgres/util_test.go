package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/NordCoder/Uptimer/internal/domain/record"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(fmt.Errorf("scan: %w", pgx.ErrNoRows)), record.ErrNotFound)
	assert.ErrorIs(t, mapErr(&pgconn.PgError{Code: pgUniqueViolation}), record.ErrConflict)

	other := &pgconn.PgError{Code: "42P01"}
	assert.Same(t, other, mapErr(other))

	boom := errors.New("boom")
	assert.Equal(t, boom, mapErr(boom))
}
