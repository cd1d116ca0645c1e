package record

import "context"

type Store interface {
	List(ctx context.Context, category string) ([]string, error)
	Read(ctx context.Context, category, id string) (Record, error)
	Create(ctx context.Context, category, id string, rec Record) error
	Update(ctx context.Context, category, id string, rec Record) error
	Delete(ctx context.Context, category, id string) error
}
