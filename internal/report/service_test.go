package report_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/core/common/dates"
	academicDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
	attendanceDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/attendance"
	feeDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/fee"
	classDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/schoolclass"
	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
	teacherDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/teacher"
	"github.com/frahmantamala/edumaster/internal/core/testdb"
	"github.com/frahmantamala/edumaster/internal/report"
	reportPostgres "github.com/frahmantamala/edumaster/internal/report/postgres"
)

func TestReport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Report Suite")
}

var _ = DescribeTable("Rate",
	func(part, total int, want float64) {
		Expect(report.Rate(part, total)).To(Equal(want))
	},
	Entry("empty total", 0, 0, 0.0),
	Entry("whole", 4, 4, 100.0),
	Entry("two decimals", 1, 3, 33.33),
	Entry("rounds half up", 2, 3, 66.67),
)

var _ = Describe("Report Service", func() {
	var (
		db      *gorm.DB
		service *report.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())

		service = report.NewService(reportPostgres.NewReportRepository(sqlx.NewDb(sqlDB, "sqlite3")), slogger)
	})

	newSession := func(name string, start time.Time) int64 {
		s := academicDatamodel.Session{SessionName: name, StartDate: start, EndDate: start.AddDate(1, 0, -1), Status: "active"}
		Expect(db.Create(&s).Error).To(Succeed())
		return s.ID
	}

	newStudent := func(code, status string) int64 {
		s := studentDatamodel.Student{StudentCode: code, FirstName: "S", LastName: code, Status: status}
		Expect(db.Create(&s).Error).To(Succeed())
		return s.ID
	}

	newHistory := func(studentID, sessionID int64, status string) *academicDatamodel.History {
		h := &academicDatamodel.History{StudentID: studentID, SessionID: sessionID, SessionStatus: status}
		Expect(db.Create(h).Error).To(Succeed())
		return h
	}

	Describe("SessionStatistics", func() {
		It("counts statuses and derives rates", func() {
			sessionID := newSession("2024-2025", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
			codes := []string{"STU00001", "STU00002", "STU00003", "STU00004"}
			for i, status := range []string{"promoted", "promoted", "detained", "transferred"} {
				newHistory(newStudent(codes[i], "active"), sessionID, status)
			}

			stats, err := service.SessionStatistics(ctx, sessionID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Session.SessionName).To(Equal("2024-2025"))
			Expect(stats.Statistics.TotalStudents).To(Equal(4))
			Expect(stats.Statistics.Promoted).To(Equal(2))
			Expect(stats.Statistics.Detained).To(Equal(1))
			Expect(stats.Statistics.Transferred).To(Equal(1))
			Expect(stats.Statistics.PromotionRate).To(Equal(50.0))
			Expect(stats.Statistics.RetentionRate).To(Equal(75.0))
		})

		It("returns zero rates for an empty session", func() {
			sessionID := newSession("2025-2026", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
			stats, err := service.SessionStatistics(ctx, sessionID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Statistics.TotalStudents).To(BeZero())
			Expect(stats.Statistics.PromotionRate).To(BeZero())
			Expect(stats.Statistics.RetentionRate).To(BeZero())
		})

		It("reports unknown sessions", func() {
			_, err := service.SessionStatistics(ctx, 999)
			Expect(err).To(MatchError(internal.ErrSessionNotFound))
		})
	})

	Describe("Progression", func() {
		It("orders history by session start", func() {
			studentID := newStudent("STU00001", "active")
			later := newSession("2024-2025", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
			earlier := newSession("2023-2024", time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC))

			class := classDatamodel.Class{Name: "Grade 5", Grade: 5, IsActive: true}
			Expect(db.Create(&class).Error).To(Succeed())

			promotedOn := time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC)
			newHistory(studentID, later, "active")
			old := &academicDatamodel.History{
				StudentID:     studentID,
				SessionID:     earlier,
				ClassID:       &class.ID,
				Section:       "A",
				SessionStatus: "promoted",
				Performance:   academicDatamodel.Performance{Percentage: 81.5, Grade: "A"},
				PromotedTo:    academicDatamodel.PromotedTo{SessionID: &later, Section: "B", PromotedOn: &promotedOn},
			}
			Expect(db.Create(old).Error).To(Succeed())

			p, err := service.Progression(ctx, studentID)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Student.StudentID).To(Equal("STU00001"))
			Expect(p.History).To(HaveLen(2))

			first := p.History[0]
			Expect(first.SessionName).To(Equal("2023-2024"))
			Expect(*first.ClassName).To(Equal("Grade 5"))
			Expect(first.Grade).To(Equal("A"))
			Expect(first.Promoted).To(BeTrue())
			Expect(*first.PromotedTo.SessionID).To(Equal(later))
			Expect(first.PromotedTo.Section).To(Equal("B"))

			Expect(p.History[1].SessionName).To(Equal("2024-2025"))
			Expect(p.History[1].Promoted).To(BeFalse())
			Expect(p.History[1].ClassName).To(BeNil())
		})

		It("reports unknown students", func() {
			_, err := service.Progression(ctx, 999)
			Expect(err).To(MatchError(internal.ErrStudentNotFound))
		})
	})

	Describe("Dashboard", func() {
		It("aggregates counts, attendance and fees", func() {
			present := newStudent("STU00001", "active")
			absent := newStudent("STU00002", "active")
			newStudent("STU00003", "graduated")
			newStudent("STU00004", "active")
			Expect(db.Create(&teacherDatamodel.Teacher{EmployeeID: "EMP00001", FirstName: "T", LastName: "One", Status: "active"}).Error).To(Succeed())
			Expect(db.Create(&classDatamodel.Class{Name: "Grade 1", Grade: 1}).Error).To(Succeed())

			today := dates.StartOfDay(time.Now())
			Expect(db.Create(&attendanceDatamodel.Attendance{StudentID: present, Date: today, Status: "present"}).Error).To(Succeed())
			Expect(db.Create(&attendanceDatamodel.Attendance{StudentID: absent, Date: today, Status: "absent"}).Error).To(Succeed())
			Expect(db.Create(&attendanceDatamodel.Attendance{StudentID: absent, Date: today.AddDate(0, 0, -1), Status: "present"}).Error).To(Succeed())

			Expect(db.Create(&feeDatamodel.Fee{StudentID: present, FeeType: "tuition", Amount: 1000, PaidAmount: 1000, Status: "paid"}).Error).To(Succeed())
			Expect(db.Create(&feeDatamodel.Fee{StudentID: absent, FeeType: "tuition", Amount: 1000, PaidAmount: 250, Status: "partial"}).Error).To(Succeed())
			Expect(db.Create(&feeDatamodel.Fee{StudentID: absent, FeeType: "bus", Amount: 300, Status: "overdue"}).Error).To(Succeed())

			d, err := service.Dashboard(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.TotalStudents).To(Equal(3))
			Expect(d.TotalTeachers).To(Equal(1))
			Expect(d.TotalClasses).To(Equal(1))
			Expect(d.PresentToday).To(Equal(1))
			Expect(d.AttendanceRate).To(Equal(33.33))
			Expect(d.FeeCollected).To(Equal(1250.0))
			Expect(d.PendingFees).To(Equal(1050.0))
		})
	})
})
