package student_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/edumaster/internal"
	academicDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
	classDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/schoolclass"
	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	"github.com/frahmantamala/edumaster/internal/core/testdb"
	"github.com/frahmantamala/edumaster/internal/promotion"
	promotionPostgres "github.com/frahmantamala/edumaster/internal/promotion/postgres"
	"github.com/frahmantamala/edumaster/internal/student"
	studentPostgres "github.com/frahmantamala/edumaster/internal/student/postgres"
)

// interleavedRepository runs afterLoad between the service reading a student
// and writing it back.
type interleavedRepository struct {
	student.RepositoryAPI
	afterLoad func()
}

func (r *interleavedRepository) GetByID(ctx context.Context, id int64) (*studentDatamodel.Student, error) {
	row, err := r.RepositoryAPI.GetByID(ctx, id)
	if r.afterLoad != nil {
		r.afterLoad()
	}
	return row, err
}

var _ = Describe("Service.Update with a concurrent promotion", func() {
	var (
		ctx        context.Context
		db         *gorm.DB
		repo       *interleavedRepository
		service    *student.Service
		promotions promotion.RepositoryAPI
		from, to   academicDatamodel.Session
		fromClass  classDatamodel.Class
		toClass    classDatamodel.Class
		enrolled   *studentDatamodel.Student
	)

	newSession := func(name string, year int, current bool) academicDatamodel.Session {
		s := academicDatamodel.Session{
			SessionName: name,
			StartDate:   time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(year+1, time.June, 30, 0, 0, 0, 0, time.UTC),
			IsActive:    true,
			IsCurrent:   current,
			Status:      "active",
		}
		Expect(db.Create(&s).Error).To(Succeed())
		return s
	}

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())

		from = newSession("2024-2025", 2024, true)
		to = newSession("2025-2026", 2025, false)
		fromClass = classDatamodel.Class{Name: "Grade 5", Grade: 5, Section: "A", SessionID: &from.ID, IsActive: true}
		Expect(db.Create(&fromClass).Error).To(Succeed())
		toClass = classDatamodel.Class{Name: "Grade 6", Grade: 6, Section: "A", SessionID: &to.ID, IsActive: true}
		Expect(db.Create(&toClass).Error).To(Succeed())

		repo = &interleavedRepository{RepositoryAPI: studentPostgres.NewStudentRepository(db)}
		service = student.NewService(repo, slogger)
		promotions = promotionPostgres.NewPromotionRepository(db)

		enrolled = &studentDatamodel.Student{
			FirstName:         "Asha",
			LastName:          "Rao",
			CurrentSessionID:  &from.ID,
			CurrentClassID:    &fromClass.ID,
			CurrentSection:    "A",
			CurrentRollNumber: 4,
			Status:            student.StatusActive,
		}
		Expect(repo.RepositoryAPI.Create(ctx, enrolled)).To(Succeed())
	})

	reload := func() studentDatamodel.Student {
		var row studentDatamodel.Student
		Expect(db.Where("id = ?", enrolled.ID).First(&row).Error).To(Succeed())
		return row
	}

	It("keeps the promoted session and class when a profile edit lands afterwards", func() {
		repo.afterLoad = func() {
			Expect(promotions.Promote(ctx, promotion.Move{
				StudentID:     enrolled.ID,
				FromSessionID: from.ID,
				ToSessionID:   to.ID,
				TargetClassID: &toClass.ID,
				Section:       "B",
				RollNumber:    9,
				PromotedOn:    time.Now(),
			})).To(Succeed())
		}

		name := "Ashanti"
		updated, err := service.Update(ctx, enrolled.ID, student.UpdateRequest{FirstName: &name})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.FirstName).To(Equal("Ashanti"))
		Expect(*updated.CurrentSessionID).To(Equal(to.ID))

		row := reload()
		Expect(*row.CurrentSessionID).To(Equal(to.ID))
		Expect(*row.CurrentClassID).To(Equal(toClass.ID))
		Expect(row.CurrentSection).To(Equal("B"))
		Expect(row.CurrentRollNumber).To(Equal(9))

		var active academicDatamodel.History
		Expect(db.Where("student_id = ? AND session_status = ?", enrolled.ID, "active").First(&active).Error).To(Succeed())
		Expect(active.SessionID).To(Equal(*row.CurrentSessionID))
	})

	It("refuses a status change when the student graduated in between", func() {
		repo.afterLoad = func() {
			Expect(promotions.Graduate(ctx, enrolled.ID, from.ID)).To(Succeed())
		}

		left := student.StatusLeft
		name := "Ashanti"
		_, err := service.Update(ctx, enrolled.ID, student.UpdateRequest{FirstName: &name, Status: &left})
		Expect(err).To(MatchError(internal.ErrStudentStatusChanged))

		row := reload()
		Expect(row.Status).To(Equal(student.StatusGraduated))
		Expect(row.FirstName).To(Equal("Asha"))
	})

	It("changes the status when nothing moved the student", func() {
		left := student.StatusLeft
		updated, err := service.Update(ctx, enrolled.ID, student.UpdateRequest{Status: &left})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Status).To(Equal(student.StatusLeft))
		Expect(*updated.CurrentSessionID).To(Equal(from.ID))
	})

	It("reports a missing student", func() {
		name := "Ghost"
		_, err := service.Update(ctx, 9999, student.UpdateRequest{FirstName: &name})
		Expect(err).To(MatchError(internal.ErrStudentNotFound))
	})
})
