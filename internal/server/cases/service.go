// Package cases implements the server-side intake service: validation, ID
// assignment and timestamping in front of the repository.
package cases

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cjmtools/caseintake/internal/common"
	"github.com/cjmtools/caseintake/internal/logging"
	"github.com/cjmtools/caseintake/internal/models"
	"github.com/cjmtools/caseintake/internal/server/repositories/cases"
)

// AppendInput carries the operator-supplied fields of one record.
type AppendInput struct {
	Name        string
	CaseNumber  string
	CrimeNumber *string
	ForwardDate *string
	ManualNote  string
}

// Service validates records and assigns server-side identity. CreatedAt is
// strictly monotonic across appends so the newest-first ordering never has
// ties, even for records appended within the same clock tick.
type Service struct {
	repo   cases.Repository
	logger logging.Logger

	mu       sync.Mutex
	lastNano int64

	now func() time.Time
}

func NewService(repo cases.Repository, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		repo:   repo,
		logger: logger.With("module", "cases"),
		now:    time.Now,
	}
}

// nextCreatedAt returns the current Unix-nano clock, bumped past the previous
// value when the clock has not advanced.
func (s *Service) nextCreatedAt() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	nano := s.now().UnixNano()
	if nano <= s.lastNano {
		nano = s.lastNano + 1
	}
	s.lastNano = nano
	return nano
}

// Append validates the input and stores a new record. Name and CaseNumber
// are required; a miss fails before any repository traffic.
func (s *Service) Append(ctx context.Context, in AppendInput) (*models.CaseRecord, error) {
	name := strings.TrimSpace(in.Name)
	caseNumber := strings.TrimSpace(in.CaseNumber)
	if name == "" || caseNumber == "" {
		return nil, fmt.Errorf("%w: name and case number are required", common.ErrValidation)
	}

	record := &models.CaseRecord{
		ID:          uuid.NewString(),
		Name:        name,
		CaseNumber:  caseNumber,
		CrimeNumber: in.CrimeNumber,
		ForwardDate: in.ForwardDate,
		ManualNote:  in.ManualNote,
		CreatedAt:   s.nextCreatedAt(),
	}

	if err := s.repo.Append(ctx, record); err != nil {
		s.logger.Error(ctx, "append failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	s.logger.Info(ctx, "record appended", "id", record.ID, "case_number", record.CaseNumber)
	return record, nil
}

// ListAll returns every stored record.
func (s *Service) ListAll(ctx context.Context) ([]models.CaseRecord, error) {
	records, err := s.repo.SelectAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "select failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	return records, nil
}
