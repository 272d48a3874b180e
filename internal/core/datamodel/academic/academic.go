package academic

import (
	"time"

	"gorm.io/datatypes"
)

type Session struct {
	ID               int64     `gorm:"primaryKey"`
	SessionName      string    `gorm:"column:session_name;uniqueIndex;not null"`
	StartDate        time.Time `gorm:"column:start_date;not null"`
	EndDate          time.Time `gorm:"column:end_date;not null"`
	IsActive         bool      `gorm:"column:is_active"`
	IsCurrent        bool      `gorm:"column:is_current"`
	Status           string    `gorm:"column:status;default:upcoming"`
	Description      string    `gorm:"column:description"`
	PromotedCount    int       `gorm:"column:promoted_count;default:0"`
	TransferredCount int       `gorm:"column:transferred_count;default:0"`
	GraduatedCount   int       `gorm:"column:graduated_count;default:0"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Session) TableName() string { return "academic_sessions" }

type Attendance struct {
	TotalDays   int     `gorm:"column:total_days"`
	PresentDays int     `gorm:"column:present_days"`
	Percentage  float64 `gorm:"column:percentage"`
}

type Performance struct {
	Percentage float64 `gorm:"column:percentage"`
	Grade      string  `gorm:"column:grade"`
	Status     string  `gorm:"column:status"`
}

type PromotedTo struct {
	SessionID  *int64     `gorm:"column:session_id"`
	ClassID    *int64     `gorm:"column:class_id"`
	Section    string     `gorm:"column:section"`
	PromotedOn *time.Time `gorm:"column:promoted_on"`
	PromotedBy *int64     `gorm:"column:promoted_by"`
}

type TransferDetails struct {
	TransferDate      *time.Time `gorm:"column:date"`
	Reason            string     `gorm:"column:reason"`
	TransferredTo     string     `gorm:"column:transferred_to"`
	CertificateNumber string     `gorm:"column:certificate_number"`
	ApprovedBy        *int64     `gorm:"column:approved_by"`
}

type History struct {
	ID              int64           `gorm:"primaryKey"`
	StudentID       int64           `gorm:"column:student_id;not null;uniqueIndex:idx_history_student_session"`
	SessionID       int64           `gorm:"column:session_id;not null;uniqueIndex:idx_history_student_session"`
	ClassID         *int64          `gorm:"column:class_id"`
	Section         string          `gorm:"column:section"`
	RollNumber      int             `gorm:"column:roll_number"`
	Attendance      Attendance      `gorm:"embedded;embeddedPrefix:attendance_"`
	Performance     Performance     `gorm:"embedded;embeddedPrefix:performance_"`
	FeesData        datatypes.JSON  `gorm:"column:fees_data"`
	SessionStatus   string          `gorm:"column:session_status;default:active;index"`
	PromotedTo      PromotedTo      `gorm:"embedded;embeddedPrefix:promoted_to_"`
	TransferDetails TransferDetails `gorm:"embedded;embeddedPrefix:transfer_"`
	Remarks         string          `gorm:"column:remarks"`
	Conduct         string          `gorm:"column:conduct"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (History) TableName() string { return "student_academic_histories" }

type PromotionRequest struct {
	ID                int64     `gorm:"primaryKey"`
	FromSessionID     int64     `gorm:"column:from_session_id;not null;index"`
	ToSessionID       int64     `gorm:"column:to_session_id;not null"`
	PromotionType     string    `gorm:"column:promotion_type;not null"`
	MinimumAttendance float64   `gorm:"column:minimum_attendance"`
	MinimumPercentage float64   `gorm:"column:minimum_percentage"`
	SourceClassID     *int64    `gorm:"column:source_class_id"`
	TargetClassID     *int64    `gorm:"column:target_class_id"`
	Status            string    `gorm:"column:status;default:pending"`
	CreatedBy         *int64    `gorm:"column:created_by"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PromotionRequest) TableName() string { return "promotion_requests" }

type TransferTo struct {
	SchoolName    string `gorm:"column:school_name"`
	SchoolAddress string `gorm:"column:school_address"`
	City          string `gorm:"column:city"`
	State         string `gorm:"column:state"`
	Reason        string `gorm:"column:reason"`
}

type TCDetails struct {
	TCNumber           string     `gorm:"column:number"`
	IssueDate          *time.Time `gorm:"column:issue_date"`
	LastAttendanceDate *time.Time `gorm:"column:last_attendance_date"`
	Conduct            string     `gorm:"column:conduct"`
	Remarks            string     `gorm:"column:remarks"`
	FeesStatus         string     `gorm:"column:fees_status"`
}

type TransferRequest struct {
	ID          int64      `gorm:"primaryKey"`
	StudentID   int64      `gorm:"column:student_id;not null;index"`
	SessionID   *int64     `gorm:"column:session_id"`
	RequestType string     `gorm:"column:request_type;not null"`
	TransferTo  TransferTo `gorm:"embedded;embeddedPrefix:transfer_to_"`
	TCDetails   TCDetails  `gorm:"embedded;embeddedPrefix:tc_"`
	Status      string     `gorm:"column:status;default:pending;index"`
	RequestedBy *int64     `gorm:"column:requested_by"`
	ApprovedBy  *int64     `gorm:"column:approved_by"`
	ApprovedAt  *time.Time `gorm:"column:approved_at"`
	Remarks     string     `gorm:"column:remarks"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (TransferRequest) TableName() string { return "transfer_requests" }
