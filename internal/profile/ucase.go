package profile

import (
	"context"

	"github.com/pot-code/course-platform/internal/domain"
	"go.elastic.co/apm"
)

// ProfileUseCaseImpl ...
type ProfileUseCaseImpl struct {
	ProfileRepository ProfileRepository
}

var _ ProfileUseCase = &ProfileUseCaseImpl{}

// NewProfileUseCase ...
func NewProfileUseCase(ProfileRepository ProfileRepository) *ProfileUseCaseImpl {
	return &ProfileUseCaseImpl{ProfileRepository}
}

// ListUsers every profile, no placeholder rows are ever added
func (pu *ProfileUseCaseImpl) ListUsers(ctx context.Context) ([]*Profile, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProfileUseCaseImpl.ListUsers", "service")
	defer apmSpan.End()

	return pu.ProfileRepository.ListProfiles(ctx)
}

func (pu *ProfileUseCaseImpl) GetProfile(ctx context.Context, id string) (*Profile, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProfileUseCaseImpl.GetProfile", "service")
	defer apmSpan.End()

	if err := domain.Required("userId", id); err != nil {
		return nil, err
	}
	p, err := pu.ProfileRepository.FindProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// IsAdmin a blocked admin is not an admin
func (pu *ProfileUseCaseImpl) IsAdmin(ctx context.Context, id string) (bool, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProfileUseCaseImpl.IsAdmin", "service")
	defer apmSpan.End()

	p, err := pu.ProfileRepository.FindProfile(ctx, id)
	if err != nil {
		return false, err
	}
	return p != nil && p.Role == RoleAdmin && p.Status != StatusBlocked, nil
}

func (pu *ProfileUseCaseImpl) UpdateRole(ctx context.Context, id, role string) error {
	apmSpan, ctx := apm.StartSpan(ctx, "ProfileUseCaseImpl.UpdateRole", "service")
	defer apmSpan.End()

	if err := domain.Required("userId", id, "role", role); err != nil {
		return err
	}
	if role != RoleUser && role != RoleAdmin {
		return domain.NewArgumentError("role", "role must be one of (user admin)")
	}
	return found(pu.ProfileRepository.UpdateRole(ctx, id, role))
}

func (pu *ProfileUseCaseImpl) UpdateStatus(ctx context.Context, id, status string) error {
	apmSpan, ctx := apm.StartSpan(ctx, "ProfileUseCaseImpl.UpdateStatus", "service")
	defer apmSpan.End()

	if err := domain.Required("userId", id, "status", status); err != nil {
		return err
	}
	if status != StatusActive && status != StatusBlocked {
		return domain.NewArgumentError("status", "status must be one of (active blocked)")
	}
	return found(pu.ProfileRepository.UpdateStatus(ctx, id, status))
}

func found(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
