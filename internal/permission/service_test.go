package permission_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/edumaster/internal"
	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/permission"
)

// MockRepository implements permission.RepositoryAPI for testing
type MockRepository struct {
	perms      map[int64]*userDatamodel.Permission
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{perms: make(map[int64]*userDatamodel.Permission)}
}

func (m *MockRepository) GetAll(ctx context.Context) ([]*userDatamodel.Permission, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var out []*userDatamodel.Permission
	for _, p := range m.perms {
		out = append(out, p)
	}
	return out, nil
}

func (m *MockRepository) GetByModule(ctx context.Context, module string) ([]*userDatamodel.Permission, error) {
	var out []*userDatamodel.Permission
	for _, p := range m.perms {
		if p.Module == module {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.Permission, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.perms[id], nil
}

func (m *MockRepository) GetByIDs(ctx context.Context, ids []int64) ([]userDatamodel.Permission, error) {
	var out []userDatamodel.Permission
	for _, id := range ids {
		if p, ok := m.perms[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *MockRepository) Create(ctx context.Context, p *userDatamodel.Permission) error {
	if m.shouldFail {
		return m.failError
	}
	for _, existing := range m.perms {
		if existing.Code == p.Code {
			return errors.New("UNIQUE constraint failed: permissions.code")
		}
	}
	m.nextID++
	p.ID = m.nextID
	m.perms[p.ID] = p
	return nil
}

func (m *MockRepository) CreateBatch(ctx context.Context, ps []*userDatamodel.Permission) error {
	for _, p := range ps {
		if err := m.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockRepository) Update(ctx context.Context, p *userDatamodel.Permission) error {
	m.perms[p.ID] = p
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	delete(m.perms, id)
	return nil
}

var _ = Describe("Permission Service", func() {
	var (
		repo    *MockRepository
		service *permission.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		service = permission.NewService(repo, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("derives code and name from module and action", func() {
			p, err := service.Create(ctx, permission.CreateRequest{Module: "students", Action: "read"})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Code).To(Equal("students.read"))
			Expect(p.Name).To(Equal("Students Read"))
		})

		It("rejects unknown modules", func() {
			_, err := service.Create(ctx, permission.CreateRequest{Module: "spaceships", Action: "read"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})

		It("reports duplicate codes as a bad request", func() {
			_, err := service.Create(ctx, permission.CreateRequest{Module: "fees", Action: "read"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(ctx, permission.CreateRequest{Module: "fees", Action: "read"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
			Expect(appErr.StatusCode).To(Equal(400))
		})

		It("hides repository failures", func() {
			repo.shouldFail = true
			repo.failError = errors.New("connection reset")
			_, err := service.Create(ctx, permission.CreateRequest{Module: "fees", Action: "read"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
		})
	})

	Describe("BulkCreate", func() {
		It("rejects duplicates inside the batch", func() {
			_, err := service.BulkCreate(ctx, permission.BulkCreateRequest{Permissions: []permission.CreateRequest{
				{Module: "exams", Action: "read"},
				{Module: "exams", Action: "read"},
			}})
			Expect(err).To(HaveOccurred())
			Expect(repo.perms).To(BeEmpty())
		})

		It("creates every entry", func() {
			perms, err := service.BulkCreate(ctx, permission.BulkCreateRequest{Permissions: []permission.CreateRequest{
				{Module: "exams", Action: "read"},
				{Module: "exams", Action: "create"},
			}})
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(HaveLen(2))
		})
	})

	Describe("ResolveIDs", func() {
		It("fails when an id is unknown", func() {
			p, _ := service.Create(ctx, permission.CreateRequest{Module: "fees", Action: "read"})
			_, err := service.ResolveIDs(ctx, []int64{p.ID, 999})
			Expect(err).To(HaveOccurred())
		})

		It("tolerates repeated ids", func() {
			p, _ := service.Create(ctx, permission.CreateRequest{Module: "fees", Action: "read"})
			rows, err := service.ResolveIDs(ctx, []int64{p.ID, p.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})
	})

	Describe("Update and Delete", func() {
		It("returns not found for unknown ids", func() {
			name := "x"
			_, err := service.Update(ctx, 42, permission.UpdateRequest{Name: &name})
			Expect(errors.Is(err, internal.ErrPermissionNotFound)).To(BeTrue())
			Expect(errors.Is(service.Delete(ctx, 42), internal.ErrPermissionNotFound)).To(BeTrue())
		})
	})
})
