package cmd

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/edumaster/internal/auth"
	academicDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/core/testdb"
	"github.com/frahmantamala/edumaster/internal/role"
)

func TestCmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cmd Suite")
}

var _ = Describe("seeder", func() {
	var (
		db *gorm.DB
		s  *seeder
	)

	BeforeEach(func() {
		var err error
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		s = &seeder{
			db:         db,
			bcryptCost: bcrypt.MinCost,
			logger:     slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})),
			now:        func() time.Time { return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC) },
		}
	})

	roleCodes := func(name string) []string {
		var r userDatamodel.Role
		Expect(db.Preload("Permissions").Where("name = ?", name).First(&r).Error).To(Succeed())
		codes := make([]string, 0, len(r.Permissions))
		for _, p := range r.Permissions {
			codes = append(codes, p.Code)
		}
		return codes
	}

	It("creates the catalogue, system roles, administrator and current session", func() {
		Expect(s.Run(context.Background(), defaultAdminEmail, "admin123")).To(Succeed())

		var permissions int64
		Expect(db.Model(&userDatamodel.Permission{}).Count(&permissions).Error).To(Succeed())
		Expect(permissions).To(Equal(int64(len(guardedModules)*len(crudActions) + 1)))

		Expect(roleCodes(role.NameSuperAdmin)).To(ConsistOf("all"))
		Expect(roleCodes(role.NameAdmin)).To(HaveLen(len(guardedModules) * len(crudActions)))
		Expect(roleCodes(role.NameAdmin)).NotTo(ContainElement("all"))
		Expect(roleCodes(role.NameTeacher)).To(ContainElements("students.read", "attendance.create"))

		var admin userDatamodel.User
		Expect(db.Preload("Role").Where("email = ?", defaultAdminEmail).First(&admin).Error).To(Succeed())
		Expect(admin.Role.Name).To(Equal(role.NameSuperAdmin))
		Expect(admin.IsActive).To(BeTrue())
		Expect(auth.VerifyPassword(admin.PasswordHash, "admin123")).To(Succeed())

		var session academicDatamodel.Session
		Expect(db.Where("is_current = ?", true).First(&session).Error).To(Succeed())
		Expect(session.SessionName).To(Equal("2025-2026"))
		Expect(session.Status).To(Equal("active"))
	})

	It("can run repeatedly without duplicating rows or resetting the password", func() {
		Expect(s.Run(context.Background(), defaultAdminEmail, "admin123")).To(Succeed())
		Expect(s.Run(context.Background(), defaultAdminEmail, "changed")).To(Succeed())

		var roles, users, sessions int64
		Expect(db.Model(&userDatamodel.Role{}).Count(&roles).Error).To(Succeed())
		Expect(db.Model(&userDatamodel.User{}).Count(&users).Error).To(Succeed())
		Expect(db.Model(&academicDatamodel.Session{}).Count(&sessions).Error).To(Succeed())
		Expect(roles).To(Equal(int64(len(systemRoles))))
		Expect(users).To(Equal(int64(1)))
		Expect(sessions).To(Equal(int64(1)))

		var admin userDatamodel.User
		Expect(db.Where("email = ?", defaultAdminEmail).First(&admin).Error).To(Succeed())
		Expect(auth.VerifyPassword(admin.PasswordHash, "admin123")).To(Succeed())
	})

	It("starts the school year in July", func() {
		s.now = func() time.Time { return time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC) }
		Expect(s.seedSession(db)).To(Succeed())

		var session academicDatamodel.Session
		Expect(db.Where("is_current = ?", true).First(&session).Error).To(Succeed())
		Expect(session.SessionName).To(Equal("2026-2027"))
	})

	It("leaves an existing current session alone", func() {
		existing := academicDatamodel.Session{
			SessionName: "2024-2025",
			StartDate:   time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
			IsCurrent:   true,
			IsActive:    true,
			Status:      "active",
		}
		Expect(db.Create(&existing).Error).To(Succeed())
		Expect(s.seedSession(db)).To(Succeed())

		var count int64
		Expect(db.Model(&academicDatamodel.Session{}).Count(&count).Error).To(Succeed())
		Expect(count).To(Equal(int64(1)))
	})
})

var _ = Describe("buildEventData", func() {
	It("stamps the actor as int64", func() {
		data, err := buildEventData(`{"session_id": 3, "actor_id": 99}`, 7)
		Expect(err).NotTo(HaveOccurred())
		Expect(data["actor_id"]).To(Equal(int64(7)))
		Expect(data["session_id"]).To(BeEquivalentTo(3))
		Expect(data["source"]).To(Equal("cli"))
	})

	It("drops an actor given only in the payload", func() {
		data, err := buildEventData(`{"actor_id": 99}`, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).NotTo(HaveKey("actor_id"))
	})

	It("accepts null and rejects non-objects", func() {
		data, err := buildEventData("null", 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(HaveKeyWithValue("source", "cli"))

		_, err = buildEventData("[1,2]", 0)
		Expect(err).To(HaveOccurred())
	})
})

var _ = DescribeTable("gormLogLevel",
	func(level string, expected gormlogger.LogLevel) {
		Expect(gormLogLevel(level)).To(Equal(expected))
	},
	Entry("debug logs queries", "debug", gormlogger.Info),
	Entry("error", "ERROR", gormlogger.Error),
	Entry("anything else warns", "info", gormlogger.Warn),
)
