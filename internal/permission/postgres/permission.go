package postgres

import (
	"context"

	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/permission"
	"gorm.io/gorm"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.RepositoryAPI {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) GetAll(ctx context.Context) ([]*userDatamodel.Permission, error) {
	var perms []*userDatamodel.Permission
	err := r.db.WithContext(ctx).Order("module ASC, action ASC").Find(&perms).Error
	return perms, err
}

func (r *PermissionRepository) GetByModule(ctx context.Context, module string) ([]*userDatamodel.Permission, error) {
	var perms []*userDatamodel.Permission
	err := r.db.WithContext(ctx).Where("module = ?", module).Order("action ASC").Find(&perms).Error
	return perms, err
}

func (r *PermissionRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.Permission, error) {
	var perm userDatamodel.Permission
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&perm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &perm, nil
}

func (r *PermissionRepository) GetByIDs(ctx context.Context, ids []int64) ([]userDatamodel.Permission, error) {
	var perms []userDatamodel.Permission
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&perms).Error
	return perms, err
}

func (r *PermissionRepository) Create(ctx context.Context, p *userDatamodel.Permission) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// CreateBatch inserts all rows or none.
func (r *PermissionRepository) CreateBatch(ctx context.Context, ps []*userDatamodel.Permission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(ps, 100).Error
	})
}

func (r *PermissionRepository) Update(ctx context.Context, p *userDatamodel.Permission) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes the permission and its role and user grants.
func (r *PermissionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM role_permissions WHERE permission_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM user_permissions WHERE permission_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&userDatamodel.Permission{}, id).Error
	})
}
