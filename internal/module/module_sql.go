package module

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
	"github.com/pot-code/course-platform/internal/infrastructure/uuid"
)

type ModuleSQL struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ ModuleRepository = &ModuleSQL{}

func NewModuleRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *ModuleSQL {
	return &ModuleSQL{Conn, UUIDGenerator}
}

const moduleColumns = `"id", "course_id", "title", COALESCE("description", ''), "order", "created_at", "updated_at"`

func (repo *ModuleSQL) queryModules(ctx context.Context, op, query string, args ...interface{}) ([]*Module, error) {
	rows, err := repo.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	defer rows.Close()

	result := []*Module{}
	for rows.Next() {
		item := new(Module)
		if err := rows.Scan(&item.ID, &item.CourseID, &item.Title, &item.Description,
			&item.Order, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, domain.NewStoreError(op, err)
		}
		result = append(result, item)
	}
	return result, domain.NewStoreError(op, rows.Err())
}

func (repo *ModuleSQL) ListModules(ctx context.Context, courseID string) ([]*Module, error) {
	return repo.queryModules(ctx, "ListModules", `SELECT `+moduleColumns+` FROM "modules"
	WHERE "course_id" = $1 ORDER BY "order" ASC`, courseID)
}

func (repo *ModuleSQL) FindModule(ctx context.Context, id string) (*Module, error) {
	modules, err := repo.queryModules(ctx, "FindModule", `SELECT `+moduleColumns+` FROM "modules" WHERE "id" = $1`, id)
	if err != nil || len(modules) == 0 {
		return nil, err
	}
	return modules[0], nil
}

// MaxOrder 0 when the course has no module
func (repo *ModuleSQL) MaxOrder(ctx context.Context, courseID string) (int, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT MAX("order") FROM "modules" WHERE "course_id" = $1`, courseID)
	if err != nil {
		return 0, domain.NewStoreError("MaxOrder", err)
	}
	defer rows.Close()

	var max sql.NullInt64
	if rows.Next() {
		if err := rows.Scan(&max); err != nil {
			return 0, domain.NewStoreError("MaxOrder", err)
		}
	}
	return int(max.Int64), domain.NewStoreError("MaxOrder", rows.Err())
}

func (repo *ModuleSQL) SaveModule(ctx context.Context, module *Module) error {
	id, err := repo.UUIDGenerator.Generate()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	module.ID = id
	module.CreatedAt = now
	module.UpdatedAt = now

	_, err = repo.Conn.ExecContext(ctx, `INSERT INTO "modules"("id", "course_id", "title", "description", "order", "created_at", "updated_at")
	VALUES($1, $2, $3, $4, $5, $6, $7)`,
		module.ID, module.CourseID, module.Title, module.Description, module.Order, module.CreatedAt, module.UpdatedAt)
	return domain.NewStoreError("SaveModule", err)
}

func (repo *ModuleSQL) UpdateModule(ctx context.Context, id string, patch *ModulePatch) (bool, error) {
	set := new(driver.SetClause)
	if patch != nil {
		if patch.Title != nil {
			set.Add("title", *patch.Title)
		}
		if patch.Description != nil {
			set.Add("description", *patch.Description)
		}
		if patch.Order != nil {
			set.Add("order", *patch.Order)
		}
	}
	set.Add("updated_at", time.Now().UTC())

	res, err := repo.Conn.ExecContext(ctx, `UPDATE "modules" SET `+set.String()+` WHERE "id" = `+set.Next(), set.Args(id)...)
	if err != nil {
		return false, domain.NewStoreError("UpdateModule", err)
	}
	n, err := res.RowsAffected()
	return n > 0, domain.NewStoreError("UpdateModule", err)
}

func (repo *ModuleSQL) Reorder(ctx context.Context, courseID string, ids []string) (err error) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return domain.NewArgumentError("module_ids", fmt.Sprintf("module %s is listed more than once", id))
		}
		seen[id] = true
	}

	tx, err := repo.Conn.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStoreError("Reorder", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	// every module gets a new key, otherwise the left-out ones collide with 1..n
	rows, err := tx.QueryContext(ctx, `SELECT COUNT(*) FROM "modules" WHERE "course_id" = $1`, courseID)
	if err != nil {
		return domain.NewStoreError("Reorder", err)
	}
	total, err := driver.ScanCount(rows)
	if err != nil {
		return domain.NewStoreError("Reorder", err)
	}
	if total != len(ids) {
		return domain.NewArgumentError("module_ids", fmt.Sprintf("course %s has %d modules, got %d", courseID, total, len(ids)))
	}

	now := time.Now().UTC()
	for i, id := range ids {
		res, err := tx.ExecContext(ctx, `UPDATE "modules" SET "order" = $1, "updated_at" = $2
		WHERE "id" = $3 AND "course_id" = $4`, i+1, now, id, courseID)
		if err != nil {
			return domain.NewStoreError("Reorder", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return domain.NewStoreError("Reorder", err)
		} else if n == 0 {
			return domain.NewArgumentError("module_ids", fmt.Sprintf("module %s does not belong to course %s", id, courseID))
		}
	}
	return domain.NewStoreError("Reorder", tx.Commit(ctx))
}
