package module

import (
	"context"

	"github.com/pot-code/course-platform/internal/domain"
	"go.elastic.co/apm"
)

// ModuleUseCaseImpl ...
type ModuleUseCaseImpl struct {
	ModuleRepository ModuleRepository
}

var _ ModuleUseCase = &ModuleUseCaseImpl{}

// NewModuleUseCase ...
func NewModuleUseCase(ModuleRepository ModuleRepository) *ModuleUseCaseImpl {
	return &ModuleUseCaseImpl{ModuleRepository}
}

func (mu *ModuleUseCaseImpl) ListModules(ctx context.Context, courseID string) ([]*Module, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ModuleUseCaseImpl.ListModules", "service")
	defer apmSpan.End()

	if err := domain.Required("courseId", courseID); err != nil {
		return nil, err
	}
	return mu.ModuleRepository.ListModules(ctx, courseID)
}

func (mu *ModuleUseCaseImpl) GetModule(ctx context.Context, id string) (*Module, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ModuleUseCaseImpl.GetModule", "service")
	defer apmSpan.End()

	if err := domain.Required("moduleId", id); err != nil {
		return nil, err
	}
	m, err := mu.ModuleRepository.FindModule(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// CreateModule appends the module after the last one unless an order is given
func (mu *ModuleUseCaseImpl) CreateModule(ctx context.Context, module *Module) (*Module, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ModuleUseCaseImpl.CreateModule", "service")
	defer apmSpan.End()

	if err := domain.Required("course_id", module.CourseID, "title", module.Title); err != nil {
		return nil, err
	}

	mr := mu.ModuleRepository
	if module.Order <= 0 {
		max, err := mr.MaxOrder(ctx, module.CourseID)
		if err != nil {
			return nil, err
		}
		module.Order = max + 1
	}
	if err := mr.SaveModule(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

func (mu *ModuleUseCaseImpl) UpdateModule(ctx context.Context, id string, patch *ModulePatch) (*Module, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ModuleUseCaseImpl.UpdateModule", "service")
	defer apmSpan.End()

	if err := domain.Required("moduleId", id); err != nil {
		return nil, err
	}
	ok, err := mu.ModuleRepository.UpdateModule(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return mu.GetModule(ctx, id)
}

// ReorderModules ids lists the modules of the course in their new order
func (mu *ModuleUseCaseImpl) ReorderModules(ctx context.Context, courseID string, ids []string) error {
	apmSpan, ctx := apm.StartSpan(ctx, "ModuleUseCaseImpl.ReorderModules", "service")
	defer apmSpan.End()

	if err := domain.Required("course_id", courseID); err != nil {
		return err
	}
	if len(ids) == 0 {
		return domain.NewArgumentError("module_ids", "module_ids is required")
	}
	return mu.ModuleRepository.Reorder(ctx, courseID, ids)
}
