package ports

import (
	"context"

	"github.com/biovote/registry/internal/core/domain"
)

// AdminService gates destructive registry maintenance behind the admin
// credential. Credential verification happens inside the service so the
// contract holds even for callers that bypass the HTTP layer.
type AdminService interface {
	DeleteVoter(ctx context.Context, number int, credential string) error
	ResetAllVotes(ctx context.Context, credential string) error
	Stats(ctx context.Context) (*domain.Stats, error)
}

type AuthService interface {
	// Login exchanges the admin username/password for a signed credential.
	Login(ctx context.Context, username, password string) (string, error)
	// Verify checks a credential previously issued by Login.
	Verify(credential string) error
}
