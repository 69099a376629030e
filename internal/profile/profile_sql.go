package profile

import (
	"context"
	"time"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
)

type ProfileSQL struct {
	Conn driver.ITransactionalDB
}

var _ ProfileRepository = &ProfileSQL{}

func NewProfileRepository(Conn driver.ITransactionalDB) *ProfileSQL {
	return &ProfileSQL{Conn}
}

const profileColumns = `"id", "email", COALESCE("name", ''), COALESCE("avatar_url", ''), "role", "status", "created_at"`

func scanProfile(rows driver.ISQLRows) (*Profile, error) {
	item := new(Profile)
	err := rows.Scan(&item.ID, &item.Email, &item.Name, &item.AvatarURL, &item.Role, &item.Status, &item.CreatedAt)
	return item, err
}

// ListProfiles newest first
func (repo *ProfileSQL) ListProfiles(ctx context.Context) ([]*Profile, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT `+profileColumns+` FROM "profiles" ORDER BY "created_at" DESC`)
	if err != nil {
		return nil, domain.NewStoreError("ListProfiles", err)
	}
	defer rows.Close()

	result := []*Profile{}
	for rows.Next() {
		item, err := scanProfile(rows)
		if err != nil {
			return nil, domain.NewStoreError("ListProfiles", err)
		}
		result = append(result, item)
	}
	return result, domain.NewStoreError("ListProfiles", rows.Err())
}

func (repo *ProfileSQL) FindProfile(ctx context.Context, id string) (*Profile, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT `+profileColumns+` FROM "profiles" WHERE "id" = $1`, id)
	if err != nil {
		return nil, domain.NewStoreError("FindProfile", err)
	}
	defer rows.Close()

	if rows.Next() {
		item, err := scanProfile(rows)
		if err != nil {
			return nil, domain.NewStoreError("FindProfile", err)
		}
		return item, nil
	}
	return nil, domain.NewStoreError("FindProfile", rows.Err())
}

func (repo *ProfileSQL) UpdateRole(ctx context.Context, id, role string) (bool, error) {
	return repo.update(ctx, "UpdateRole", `UPDATE "profiles" SET "role" = $1 WHERE "id" = $2`, role, id)
}

func (repo *ProfileSQL) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	return repo.update(ctx, "UpdateStatus", `UPDATE "profiles" SET "status" = $1 WHERE "id" = $2`, status, id)
}

func (repo *ProfileSQL) update(ctx context.Context, op, query string, args ...interface{}) (bool, error) {
	res, err := repo.Conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, domain.NewStoreError(op, err)
	}
	n, err := res.RowsAffected()
	return n > 0, domain.NewStoreError(op, err)
}

// SaveProfile insert a profile, used when seeding accounts
func (repo *ProfileSQL) SaveProfile(ctx context.Context, profile *Profile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	_, err := repo.Conn.ExecContext(ctx, `INSERT INTO "profiles"("id", "email", "name", "avatar_url", "role", "status", "created_at")
	VALUES($1, $2, $3, $4, $5, $6, $7)`,
		profile.ID, profile.Email, profile.Name, profile.AvatarURL, profile.Role, profile.Status, profile.CreatedAt)
	return domain.NewStoreError("SaveProfile", err)
}
