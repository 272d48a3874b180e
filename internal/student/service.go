package student

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/edumaster/internal"
	studentDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/student"
)

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*studentDatamodel.Student, error)
	GetByID(ctx context.Context, id int64) (*studentDatamodel.Student, error)
	// Create assigns the student code and, when a current session and class
	// are set, opens the active history record and the roster entry.
	Create(ctx context.Context, s *studentDatamodel.Student) error
	// Update applies c and returns the stored row, or nil when the student
	// does not exist.
	Update(ctx context.Context, id int64, c Changes) (*studentDatamodel.Student, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Student, error) {
	if err := validateStatus(filter.Status); err != nil {
		return nil, err
	}
	filter.Search = strings.TrimSpace(filter.Search)

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list students", "error", err)
		return nil, internal.NewInternalError("failed to list students", err)
	}
	out := make([]*Student, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Student, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Student, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	row := &studentDatamodel.Student{
		AdmissionNumber:   strings.TrimSpace(req.AdmissionNumber),
		UserID:            req.UserID,
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		DateOfBirth:       req.DateOfBirth.Ptr(),
		Gender:            req.Gender,
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:             req.Phone,
		Address:           req.Address,
		GuardianName:      req.GuardianName,
		GuardianPhone:     req.GuardianPhone,
		CurrentSessionID:  req.CurrentSessionID,
		CurrentClassID:    req.CurrentClassID,
		CurrentSection:    req.CurrentSection,
		CurrentRollNumber: req.CurrentRollNumber,
		Status:            StatusActive,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("Student already exists", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to create student", "error", err)
		return nil, internal.NewInternalError("failed to create student", err)
	}

	s.logger.Info("student created", "student_id", row.ID, "code", row.StudentCode)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Student, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	columns := map[string]interface{}{}
	if req.AdmissionNumber != nil {
		columns["admission_number"] = strings.TrimSpace(*req.AdmissionNumber)
	}
	if req.FirstName != nil {
		columns["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		columns["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.DateOfBirth != nil {
		columns["date_of_birth"] = req.DateOfBirth.Ptr()
	}
	if req.Gender != nil {
		columns["gender"] = *req.Gender
	}
	if req.Email != nil {
		columns["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		columns["phone"] = *req.Phone
	}
	if req.Address != nil {
		columns["address"] = *req.Address
	}
	if req.GuardianName != nil {
		columns["guardian_name"] = *req.GuardianName
	}
	if req.GuardianPhone != nil {
		columns["guardian_phone"] = *req.GuardianPhone
	}
	columns["updated_at"] = time.Now()

	changes := Changes{Columns: columns}
	if req.Status != nil && *req.Status != row.Status {
		changes.Status = req.Status
		changes.PriorStatus = row.Status
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		if internal.IsDuplicateKey(err) {
			return nil, internal.NewConflictError("Student already exists", internal.ErrCodeDuplicate)
		}
		s.logger.Error("failed to update student", "student_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update student", err)
	}
	if updated == nil {
		return nil, internal.ErrStudentNotFound
	}
	return FromDataModel(updated), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete student", "student_id", id, "error", err)
		return internal.NewInternalError("failed to delete student", err)
	}
	s.logger.Info("student deleted", "student_id", id, "actor_id", internal.UserIDFromContext(ctx))
	return nil
}

func (s *Service) load(ctx context.Context, id int64) (*studentDatamodel.Student, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load student", err)
	}
	if row == nil {
		return nil, internal.ErrStudentNotFound
	}
	return row, nil
}

func validateStatus(status string) error {
	if status == "" {
		return nil
	}
	for _, s := range Statuses {
		if s == status {
			return nil
		}
	}
	return internal.NewValidationFieldError("status", "status must be one of "+strings.Join(Statuses, ", "), internal.ErrCodeInvalidStatus)
}
