package request

import (
	"context"
	"time"

	"github.com/ekovaleva/procurement-assist/internal/types/request"
)

type Repository interface {
	CreateRequest(ctx context.Context, r *request.Request) error
	GetRequest(ctx context.Context, id string) (*request.Request, error)
	ListRequests(ctx context.Context) ([]request.Request, error)
	AppendStatus(ctx context.Context, id string, st request.Status, at time.Time) error
	CountRequests(ctx context.Context) (int, error)
}
