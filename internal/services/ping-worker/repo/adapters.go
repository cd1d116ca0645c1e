package repo

import (
	"context"

	"github.com/NordCoder/Uptimer/internal/domain/check"
	"github.com/NordCoder/Uptimer/internal/domain/record"
)

// Checks exposes the checks category of a record store to the worker.
type Checks struct {
	S        record.Store
	Category string
}

func NewChecks(s record.Store) Checks { return Checks{S: s, Category: check.Category} }

func (a Checks) IDs(ctx context.Context) ([]string, error) {
	return a.S.List(ctx, a.Category)
}

func (a Checks) Load(ctx context.Context, id string) (record.Record, error) {
	return a.S.Read(ctx, a.Category, id)
}

func (a Checks) Save(ctx context.Context, id string, rec record.Record) error {
	return a.S.Update(ctx, a.Category, id, rec)
}
