package auth

import (
	"context"
	"time"

	"github.com/frahmantamala/edumaster/internal/auth"
	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.RepositoryAPI {
	return &Repository{
		db: db,
	}
}

func (r *Repository) withGrants(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Role").
		Preload("Role.Permissions").
		Preload("AdditionalPermissions")
}

func (r *Repository) FindActiveByIdentifier(ctx context.Context, identifier string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.withGrants(ctx).
		Where("is_active = ?", true).
		Where("LOWER(email) = LOWER(?) OR employee_id = ? OR student_code = ? OR custom_id = ?",
			identifier, identifier, identifier, identifier).
		First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetWithGrants(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.withGrants(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetRoleByID(ctx context.Context, id int64) (*userDatamodel.Role, error) {
	var rl userDatamodel.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Where("id = ?", id).First(&rl).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rl, nil
}

func (r *Repository) CreateUser(ctx context.Context, u *userDatamodel.User) error {
	return r.db.WithContext(ctx).Omit("Role", "AdditionalPermissions").Create(u).Error
}

func (r *Repository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&userDatamodel.User{}).Where("id = ?", id).Update("last_login", at).Error
}
