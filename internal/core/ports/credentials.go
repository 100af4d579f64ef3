package ports

import (
	"time"

	"github.com/accesshub/accounts-api/internal/core/domain"
)

// Credentials issues and verifies signed, time-limited bearer tokens.
type Credentials interface {
	Issue(identity domain.Identity) (token string, expiresAt time.Time, err error)
	// Verify takes the raw Authorization header value, including the
	// "Bearer " prefix.
	Verify(header string) (domain.Identity, error)
}
