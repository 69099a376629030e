package module

import (
	"context"
	"time"
)

// Module ordered section of a course
type Module struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ModulePatch partial update, nil fields are left untouched
type ModulePatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

type ModuleRepository interface {
	// ListModules modules of course by order
	ListModules(ctx context.Context, courseID string) ([]*Module, error)
	FindModule(ctx context.Context, id string) (*Module, error)
	MaxOrder(ctx context.Context, courseID string) (int, error)
	SaveModule(ctx context.Context, module *Module) error
	UpdateModule(ctx context.Context, id string, patch *ModulePatch) (bool, error)
	// Reorder rewrites order keys to 1..n following ids, in one transaction
	Reorder(ctx context.Context, courseID string, ids []string) error
}

type ModuleUseCase interface {
	ListModules(ctx context.Context, courseID string) ([]*Module, error)
	GetModule(ctx context.Context, id string) (*Module, error)
	CreateModule(ctx context.Context, module *Module) (*Module, error)
	UpdateModule(ctx context.Context, id string, patch *ModulePatch) (*Module, error)
	ReorderModules(ctx context.Context, courseID string, ids []string) error
}
