// Package refreshtokens declares the persistence contract for refresh
// tokens. Rows are never deleted: revoked tokens are retained so replays
// of an already-rotated token can be detected.
package refreshtokens

import (
	"context"
	"time"

	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/models"
)

// Repository defines storage access scoped to refresh tokens. Writes are
// staged against whatever DBTX the repository was bound to; callers own
// the transaction boundary.
type Repository interface {
	// Create inserts the record and returns it with the generated id.
	Create(ctx context.Context, token *models.RefreshToken) (*models.RefreshToken, error)

	// FindByToken looks up a record by its opaque token string. The
	// owning user is joined in the same round trip. Absent tokens yield
	// common.ErrorNotFound.
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)

	// Revoke sets revoked_at on the row with the given id, but only if
	// it is not revoked yet. When another request already consumed the
	// row, no rows match and common.ErrorNotFound is returned; this
	// conditional update is what guarantees a token is redeemed by at
	// most one concurrent caller.
	Revoke(ctx context.Context, id int64, revokedAt time.Time) error

	// RevokeAllActiveByUser revokes every active token of the user in
	// one statement and reports how many rows it touched.
	RevokeAllActiveByUser(ctx context.Context, userID int64, revokedAt time.Time) (int64, error)

	// FindActiveByUser returns tokens with revoked_at unset and an
	// expiry after now.
	FindActiveByUser(ctx context.Context, userID int64, now time.Time) ([]*models.RefreshToken, error)
}
