package client

import (
	"context"

	"github.com/orris-inc/backoffice/internal/shared/query"
)

// Repository persists clients. Lookups return (nil, nil) for missing or
// soft-deleted rows.
type Repository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id uint) (*Client, error)
	// GetByIDForUpdate locks the client row for the rest of the transaction.
	// Subscription writes take this lock to serialise overlap checks per client.
	GetByIDForUpdate(ctx context.Context, id uint) (*Client, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter Filter) ([]*Client, int64, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
}

type Filter struct {
	query.BaseFilter
	OwnerID *uint
	Status  *Status
	Search  string
}
