package postgres_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/edumaster/internal"
	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/core/testdb"
	"github.com/frahmantamala/edumaster/internal/permission"
	permissionPostgres "github.com/frahmantamala/edumaster/internal/permission/postgres"
)

func TestPermissionPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Postgres Suite")
}

var _ = Describe("Permission Repository", func() {
	var (
		db   *gorm.DB
		repo permission.RepositoryAPI
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		repo = permissionPostgres.NewPermissionRepository(db)
		ctx = context.Background()
	})

	newPerm := func(module, action string) *userDatamodel.Permission {
		return &userDatamodel.Permission{
			Name:   permission.DefaultName(module, action),
			Code:   permission.Code(module, action),
			Module: module,
			Action: action,
		}
	}

	It("orders by module then action", func() {
		Expect(repo.CreateBatch(ctx, []*userDatamodel.Permission{
			newPerm("students", "update"),
			newPerm("fees", "read"),
			newPerm("students", "create"),
		})).To(Succeed())

		all, err := repo.GetAll(ctx)
		Expect(err).NotTo(HaveOccurred())
		codes := []string{}
		for _, p := range all {
			codes = append(codes, p.Code)
		}
		Expect(codes).To(Equal([]string{"fees.read", "students.create", "students.update"}))
	})

	It("translates unique violations", func() {
		Expect(repo.Create(ctx, newPerm("fees", "read"))).To(Succeed())
		err := repo.Create(ctx, newPerm("fees", "read"))
		Expect(internal.IsDuplicateKey(err)).To(BeTrue())
	})

	It("rolls back a batch containing a duplicate", func() {
		Expect(repo.Create(ctx, newPerm("fees", "read"))).To(Succeed())
		err := repo.CreateBatch(ctx, []*userDatamodel.Permission{newPerm("exams", "read"), newPerm("fees", "read")})
		Expect(err).To(HaveOccurred())
		all, _ := repo.GetAll(ctx)
		Expect(all).To(HaveLen(1))
	})

	It("removes role grants on delete", func() {
		p := newPerm("fees", "read")
		Expect(repo.Create(ctx, p)).To(Succeed())
		role := &userDatamodel.Role{Name: "accountant", DisplayName: "Accountant", IsActive: true, Permissions: []userDatamodel.Permission{*p}}
		Expect(db.Create(role).Error).To(Succeed())

		Expect(repo.Delete(ctx, p.ID)).To(Succeed())

		var links int64
		db.Table("role_permissions").Where("permission_id = ?", p.ID).Count(&links)
		Expect(links).To(BeZero())
		found, err := repo.GetByID(ctx, p.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeNil())
	})
})
