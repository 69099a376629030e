package profile

import (
	"context"
	"time"
)

// roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// account status
const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

// Profile user profile managed alongside the hosted auth account
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileRepository interface {
	ListProfiles(ctx context.Context) ([]*Profile, error)
	FindProfile(ctx context.Context, id string) (*Profile, error)
	UpdateRole(ctx context.Context, id, role string) (bool, error)
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
}

type ProfileUseCase interface {
	ListUsers(ctx context.Context) ([]*Profile, error)
	GetProfile(ctx context.Context, id string) (*Profile, error)
	IsAdmin(ctx context.Context, id string) (bool, error)
	UpdateRole(ctx context.Context, id, role string) error
	UpdateStatus(ctx context.Context, id, status string) error
}
