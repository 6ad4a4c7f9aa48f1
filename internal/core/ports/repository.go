package ports

import (
	"context"

	"go.trai.ch/mason/internal/core/domain"
)

// Repository is the remote package repository used for existence checks
// and artifact uploads.
//
//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks
type Repository interface {
	// Find queries the repository for a published distribution under the
	// given user. It returns domain.ErrDistributionNotFound when the
	// distribution does not exist.
	Find(ctx context.Context, user string, spec domain.DistSpec) (*domain.Distribution, error)

	// Upload publishes a local artifact file under the target user. The
	// token is optional; when empty, the uploader's ambient credentials
	// apply. Returned errors must not contain the token or the upload
	// command's arguments.
	Upload(ctx context.Context, user, artifactPath, token string) error
}
