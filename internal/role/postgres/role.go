package postgres

import (
	"context"

	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/role"
	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetAll(ctx context.Context) ([]*userDatamodel.Role, error) {
	var roles []*userDatamodel.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) GetActive(ctx context.Context) ([]*userDatamodel.Role, error) {
	var roles []*userDatamodel.Role
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("priority ASC, name ASC").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.Role, error) {
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

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*userDatamodel.Role, error) {
	var rl userDatamodel.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Where("name = ?", name).First(&rl).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rl, nil
}

func (r *RoleRepository) Create(ctx context.Context, rl *userDatamodel.Role) error {
	return r.db.WithContext(ctx).Create(rl).Error
}

func (r *RoleRepository) Update(ctx context.Context, rl *userDatamodel.Role, permissions []userDatamodel.Permission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(rl).Select("display_name", "description", "icon", "color", "priority", "is_active", "updated_at").
			Updates(rl).Error; err != nil {
			return err
		}
		if permissions == nil {
			return nil
		}
		return tx.Model(rl).Association("Permissions").Replace(permissions)
	})
}

func (r *RoleRepository) DeleteUnused(ctx context.Context, id int64) (int64, error) {
	var inUse int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userDatamodel.User{}).Where("role_id = ?", id).Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return nil
		}
		if err := tx.Exec("DELETE FROM role_permissions WHERE role_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&userDatamodel.Role{}, id).Error
	})
	return inUse, err
}
