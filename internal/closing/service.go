package closing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurumpos/backend/pkg/db/models"
	pkgerrors "github.com/aurumpos/backend/pkg/errors"
	"gorm.io/gorm"
)

// DaySummary is the till-closing view of one calendar day.
type DaySummary struct {
	Date      time.Time
	Count     int64
	Total     int64
	Breakdown []MethodTotal
}

// SessionInfo describes a till session for display.
type SessionInfo struct {
	ID           int64
	OpenedAt     time.Time
	OpeningFloat int64
	Closed       bool
}

// Service derives daily totals from the sale ledger and brackets cash
// drawer shifts.
type Service interface {
	SummarizeDay(ctx context.Context, date time.Time) (*DaySummary, error)
	OpenSession(ctx context.Context, openedBy int64, openingFloat int64) (int64, error)
	CloseSession(ctx context.Context, sessionID int64, closedBy int64, countedAmount int64) error
	CurrentSession(ctx context.Context) (*SessionInfo, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService wires a closing service with the provided repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("closing repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// SummarizeDay aggregates all sales whose commit timestamp falls on the
// given calendar day in the till's local time. Total sums sale headers,
// which may legitimately differ from the payment sum.
func (s *service) SummarizeDay(ctx context.Context, date time.Time) (*DaySummary, error) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	to := from.AddDate(0, 0, 1)

	count, total, err := s.repo.CountAndTotal(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "aggregate sales")
	}

	breakdown, err := s.repo.PaymentBreakdown(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "aggregate payments")
	}

	return &DaySummary{
		Date:      from,
		Count:     count,
		Total:     total,
		Breakdown: breakdown,
	}, nil
}

// OpenSession starts a new drawer shift. Only one session may be open at
// a time.
func (s *service) OpenSession(ctx context.Context, openedBy int64, openingFloat int64) (int64, error) {
	if openedBy <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "opening operator is required")
	}
	if openingFloat < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "opening float cannot be negative")
	}

	if _, err := s.repo.FindOpenSession(ctx); err == nil {
		return 0, pkgerrors.New(pkgerrors.CodeConflict, "a till session is already open")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "check open session")
	}

	session := &models.TillSession{
		OpenedAt:     s.now(),
		OpenedBy:     openedBy,
		OpeningFloat: openingFloat,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "open till session")
	}
	return session.ID, nil
}

// CloseSession finishes a drawer shift with the counted amount.
func (s *service) CloseSession(ctx context.Context, sessionID int64, closedBy int64, countedAmount int64) error {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("till session %d not found", sessionID))
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read till session")
	}
	if session.ClosedAt != nil {
		return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("till session %d is already closed", sessionID))
	}

	if err := s.repo.CloseSession(ctx, sessionID, closedBy, countedAmount, s.now()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "close till session")
	}
	return nil
}

// CurrentSession returns the open session, or a not-found error.
func (s *service) CurrentSession(ctx context.Context) (*SessionInfo, error) {
	session, err := s.repo.FindOpenSession(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no open till session")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read open session")
	}
	return &SessionInfo{
		ID:           session.ID,
		OpenedAt:     session.OpenedAt,
		OpeningFloat: session.OpeningFloat,
		Closed:       false,
	}, nil
}
