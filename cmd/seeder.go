package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/auth"
	academicDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/permission"
	"github.com/frahmantamala/edumaster/internal/role"
	"github.com/frahmantamala/edumaster/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const defaultAdminEmail = "admin@edumaster.local"

var (
	adminEmail    string
	adminPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed permissions, system roles, an administrator and a current session",
	Long:  `Seed the database with the permission catalogue, the system roles, an administrator account and a current academic session. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, gdb, err := initDB(cfg.Database, cfg.Logging.Level)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		s := &seeder{db: gdb, bcryptCost: cfg.Security.BCryptCost, logger: logger.LoggerWrapper(), now: time.Now}
		if err := s.Run(context.Background(), adminEmail, adminPassword); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	},
}

func init() {
	seedCmd.Flags().StringVar(&adminEmail, "admin-email", defaultAdminEmail, "administrator login")
	seedCmd.Flags().StringVar(&adminPassword, "admin-password", "admin123", "administrator password, only used when the account is created")
}

// guardedModules are the modules whose routes check "<module>.<action>".
var guardedModules = []string{
	"permissions", "roles", "users", "students", "teachers", "classes",
	"attendance", "fees", "exams", "results", "library", "transport",
	"messages", "sessions", "promotions", "transfers", "reports",
}

var crudActions = []string{
	permission.ActionCreate, permission.ActionRead, permission.ActionUpdate, permission.ActionDelete,
}

// systemRole with nil codes is granted every catalogue permission.
type systemRole struct {
	name        string
	displayName string
	priority    int
	codes       []string
}

var systemRoles = []systemRole{
	{name: role.NameSuperAdmin, displayName: "Super Administrator", priority: 100, codes: []string{permission.CodeAll}},
	{name: role.NameAdmin, displayName: "Administrator", priority: 90},
	{name: role.NameTeacher, displayName: "Teacher", priority: 50, codes: []string{
		"students.read", "classes.read", "attendance.create", "attendance.read",
		"exams.read", "results.create", "results.read", "sessions.read",
		"messages.create", "messages.read",
	}},
	{name: role.NameAccountant, displayName: "Accountant", priority: 40, codes: []string{
		"students.read", "fees.create", "fees.read", "fees.update", "reports.read",
		"messages.create", "messages.read",
	}},
	{name: role.NameLibrarian, displayName: "Librarian", priority: 40, codes: []string{
		"students.read", "library.create", "library.read", "library.update", "library.delete",
		"messages.create", "messages.read",
	}},
	{name: role.NameStudent, displayName: "Student", priority: 10, codes: []string{
		"exams.read", "results.read", "library.read", "transport.read",
		"messages.create", "messages.read",
	}},
}

type seeder struct {
	db         *gorm.DB
	bcryptCost int
	logger     *slog.Logger
	now        func() time.Time
}

func (s *seeder) Run(ctx context.Context, email, password string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		catalogue, err := s.seedPermissions(tx)
		if err != nil {
			return err
		}
		roles, err := s.seedRoles(tx, catalogue)
		if err != nil {
			return err
		}
		if err := s.seedAdmin(tx, roles[role.NameSuperAdmin], email, password); err != nil {
			return err
		}
		return s.seedSession(tx)
	})
}

func (s *seeder) seedPermissions(tx *gorm.DB) (map[string]userDatamodel.Permission, error) {
	catalogue := make(map[string]userDatamodel.Permission)

	ensure := func(code, name, module, action, description string) error {
		p := userDatamodel.Permission{Code: code}
		err := tx.Where(userDatamodel.Permission{Code: code}).
			Attrs(userDatamodel.Permission{Name: name, Module: module, Action: action, Description: description}).
			FirstOrCreate(&p).Error
		if err != nil {
			return fmt.Errorf("seed permission %s: %w", code, err)
		}
		catalogue[code] = p
		return nil
	}

	if err := ensure(permission.CodeAll, "All Permissions", "system", permission.ActionManage, "Grants every permission"); err != nil {
		return nil, err
	}
	for _, module := range guardedModules {
		for _, action := range crudActions {
			code := permission.Code(module, action)
			if err := ensure(code, permission.DefaultName(module, action), module, action, ""); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info("permissions seeded", "count", len(catalogue))
	return catalogue, nil
}

func (s *seeder) seedRoles(tx *gorm.DB, catalogue map[string]userDatamodel.Permission) (map[string]userDatamodel.Role, error) {
	roles := make(map[string]userDatamodel.Role, len(systemRoles))

	for _, sr := range systemRoles {
		var grants []userDatamodel.Permission
		if sr.codes == nil {
			for code, p := range catalogue {
				if code != permission.CodeAll {
					grants = append(grants, p)
				}
			}
		} else {
			for _, code := range sr.codes {
				p, ok := catalogue[code]
				if !ok {
					return nil, fmt.Errorf("role %s grants unknown permission %s", sr.name, code)
				}
				grants = append(grants, p)
			}
		}

		r := userDatamodel.Role{Name: sr.name}
		err := tx.Where(userDatamodel.Role{Name: sr.name}).
			Attrs(userDatamodel.Role{DisplayName: sr.displayName, IsSystem: true, IsActive: true, Priority: sr.priority}).
			FirstOrCreate(&r).Error
		if err != nil {
			return nil, fmt.Errorf("seed role %s: %w", sr.name, err)
		}
		if err := tx.Model(&r).Association("Permissions").Replace(grants); err != nil {
			return nil, fmt.Errorf("grant permissions to %s: %w", sr.name, err)
		}
		roles[sr.name] = r
	}

	s.logger.Info("system roles seeded", "count", len(roles))
	return roles, nil
}

func (s *seeder) seedAdmin(tx *gorm.DB, superAdmin userDatamodel.Role, email, password string) error {
	var existing userDatamodel.User
	err := tx.Where("email = ?", email).First(&existing).Error
	if err == nil {
		s.logger.Info("administrator already exists", "email", email)
		return nil
	}
	if !internal.IsNotFound(err) {
		return fmt.Errorf("lookup administrator: %w", err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash administrator password: %w", err)
	}
	admin := userDatamodel.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "System",
		LastName:     "Administrator",
		RoleID:       superAdmin.ID,
		IsActive:     true,
	}
	if err := tx.Create(&admin).Error; err != nil {
		return fmt.Errorf("create administrator: %w", err)
	}
	s.logger.Info("administrator created", "email", email, "user_id", admin.ID)
	return nil
}

// seedSession creates the running school year as the current session unless
// one is already current. Years start on the first of July.
func (s *seeder) seedSession(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&academicDatamodel.Session{}).Where("is_current = ?", true).Count(&count).Error; err != nil {
		return fmt.Errorf("count current sessions: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := s.now().UTC()
	startYear := now.Year()
	if now.Month() < time.July {
		startYear--
	}
	session := academicDatamodel.Session{
		SessionName: fmt.Sprintf("%d-%d", startYear, startYear+1),
		StartDate:   time.Date(startYear, time.July, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(startYear+1, time.June, 30, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
		IsCurrent:   true,
		Status:      "active",
	}
	err := tx.Where(academicDatamodel.Session{SessionName: session.SessionName}).
		Assign(academicDatamodel.Session{IsActive: true, IsCurrent: true, Status: "active"}).
		FirstOrCreate(&session).Error
	if err != nil {
		return fmt.Errorf("seed session %s: %w", session.SessionName, err)
	}
	s.logger.Info("current session seeded", "session", session.SessionName)
	return nil
}
