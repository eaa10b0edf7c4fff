package ports

import (
	"context"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

// UserRepository defines persistence for users.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// UpdateActiveContext persists the outcome of a context switch: the
	// active company/client pair plus the whole last-active-client map.
	// Concurrent calls for the same user are last-write-wins.
	UpdateActiveContext(ctx context.Context, userID, companyID, clientID string, lastActive map[string]string) error
}
