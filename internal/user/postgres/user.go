package postgres

import (
	"context"
	"strings"

	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*userDatamodel.User, error) {
	q := r.db.WithContext(ctx).
		Preload("Role").
		Preload("AdditionalPermissions").
		Order("created_at DESC, id DESC")

	if filter.RoleID != nil {
		q = q.Where("role_id = ?", *filter.RoleID)
	}
	switch filter.Status {
	case user.StatusActive:
		q = q.Where("is_active = ?", true)
	case user.StatusInactive:
		q = q.Where("is_active = ?", false)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(employee_id) LIKE ? OR LOWER(student_code) LIKE ?",
			like, like, like, like, like)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []*userDatamodel.User
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Role.Permissions").
		Preload("AdditionalPermissions").
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) RoleExists(ctx context.Context, roleID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userDatamodel.Role{}).Where("id = ?", roleID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	return r.db.WithContext(ctx).Omit("Role", "AdditionalPermissions").Create(u).Error
}

func (r *UserRepository) Update(ctx context.Context, u *userDatamodel.User) error {
	return r.db.WithContext(ctx).
		Model(&userDatamodel.User{ID: u.ID}).
		Select("email", "password_hash", "first_name", "last_name", "phone", "employee_id", "student_code", "custom_id", "role_id", "is_active", "updated_at").
		Updates(u).Error
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_permissions WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&userDatamodel.User{}, id).Error
	})
}

func (r *UserRepository) ReplacePermissions(ctx context.Context, id int64, perms []userDatamodel.Permission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := &userDatamodel.User{ID: id}
		return tx.Model(u).Association("AdditionalPermissions").Replace(perms)
	})
}
