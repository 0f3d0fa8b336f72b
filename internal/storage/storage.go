package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ekovaleva/procurement-assist/internal/types/request"
	"github.com/ekovaleva/procurement-assist/internal/types/user"
)

var (
	ErrNotFound   = errors.New("request not found")
	ErrUserExists = errors.New("user already exists")
)

// RequestRepository persists procurement requests and their status history.
type RequestRepository interface {
	// CreateRequest stores the request, its order lines and the initial
	// status history entry atomically.
	CreateRequest(ctx context.Context, r *request.Request) error
	// GetRequest returns the full request including status history,
	// or ErrNotFound.
	GetRequest(ctx context.Context, id string) (*request.Request, error)
	// ListRequests returns all requests newest first, history omitted.
	ListRequests(ctx context.Context) ([]request.Request, error)
	// AppendStatus sets the current status and appends a history entry,
	// or returns ErrNotFound.
	AppendStatus(ctx context.Context, id string, st request.Status, at time.Time) error
	// CountRequests reports how many requests exist; ids are derived from it.
	CountRequests(ctx context.Context) (int, error)
}

// UserRepository handles the login accounts behind the optional auth layer.
type UserRepository interface {
	CreateUser(ctx context.Context, u *user.User) error
	FindByLogin(ctx context.Context, login string) (*user.User, error)
}

// Storage bundles all repositories plus connection management.
type Storage interface {
	RequestRepository
	UserRepository

	Ping(ctx context.Context) error
	Close() error
}
