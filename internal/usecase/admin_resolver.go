package usecase

import (
	"context"
	"errors"

	"elitepainters/internal/repository"
)

// AdminResolver names the single admin identity every conversation is held
// with.
type AdminResolver interface {
	AdminId(ctx context.Context) (string, error)
}

type adminResolver struct {
	configuredId string
	adminRepo    repository.UserRepository
}

// NewAdminResolver pins the identity to configuredId when it is set;
// otherwise each call looks up the earliest registered admin.
func NewAdminResolver(configuredId string, adminRepo repository.UserRepository) AdminResolver {
	return &adminResolver{
		configuredId: configuredId,
		adminRepo:    adminRepo,
	}
}

func (r *adminResolver) AdminId(ctx context.Context) (string, error) {
	if r.configuredId != "" {
		return r.configuredId, nil
	}

	admin, err := r.adminRepo.GetFirst(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUnresolvedRecipient
		}
		return "", storeError(err)
	}

	return admin.Id, nil
}
