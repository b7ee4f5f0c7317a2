package slot

import (
	"context"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/calendar"
	"github.com/nekogravitycat/club-booking-backend/internal/facility"
	"go.uber.org/zap"
)

type CreateRequest struct {
	ResourceID string
	DayOfWeek  int
	StartTime  string
	EndTime    string
	ValidFrom  string
	ValidUntil string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Slot, error)
	List(ctx context.Context, filter Filter) ([]Slot, error)
}

type service struct {
	repo       Repository
	facService facility.Service
	logger     *zap.Logger
}

func NewService(repo Repository, facService facility.Service, logger *zap.Logger) Service {
	return &service{repo: repo, facService: facService, logger: logger}
}

func validateCreate(req CreateRequest) error {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}
	start, err := calendar.ParseClock(req.StartTime)
	if err != nil {
		return ErrInvalidTime
	}
	end, err := calendar.ParseClock(req.EndTime)
	if err != nil {
		return ErrInvalidTime
	}
	if start >= end {
		return ErrInvalidTimeRange
	}

	for _, d := range []string{req.ValidFrom, req.ValidUntil} {
		if d == "" {
			continue
		}
		if _, err := calendar.ParseDateISO(d); err != nil {
			return calendar.ErrInvalidDate
		}
	}
	if req.ValidFrom != "" && req.ValidUntil != "" && req.ValidFrom > req.ValidUntil {
		return ErrInvalidValidity
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Slot, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	res, err := s.facService.GetBookable(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}
	if !res.IsLimited() {
		return nil, ErrResourceNotLimited
	}

	sl := &Slot{
		ResourceID: req.ResourceID,
		DayOfWeek:  time.Weekday(req.DayOfWeek),
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
	}
	if err := s.repo.Create(ctx, sl); err != nil {
		s.logger.Error("failed to create slot", zap.String("resource_id", req.ResourceID), zap.Error(err))
		return nil, err
	}
	return sl, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]Slot, error) {
	return s.repo.List(ctx, filter)
}
