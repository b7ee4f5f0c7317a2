package calendar

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Day is one column of the weekly calendar view.
type Day struct {
	Date    string
	Weekday time.Weekday
	Info    HolidayInfo
}

type Service interface {
	// Week returns Monday..Sunday of the week containing dateISO.
	Week(ctx context.Context, dateISO string) ([]Day, error)
	ListHolidays(ctx context.Context, from, to string) ([]Holiday, error)
	ImportHolidays(ctx context.Context, records []HolidayRecord) (int, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Week(ctx context.Context, dateISO string) ([]Day, error) {
	anchor, err := ParseDateISO(dateISO)
	if err != nil {
		return nil, ErrInvalidDate
	}

	dates := WeekDates(anchor)
	from := FormatDateISO(dates[0])
	to := FormatDateISO(dates[6])

	holidays, err := s.repo.ListOverlapping(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to load holidays", zap.String("from", from), zap.String("to", to), zap.Error(err))
		return nil, err
	}

	days := make([]Day, 0, len(dates))
	for _, d := range dates {
		iso := FormatDateISO(d)
		days = append(days, Day{
			Date:    iso,
			Weekday: d.Weekday(),
			Info:    DateHolidayInfo(iso, holidays),
		})
	}
	return days, nil
}

func (s *service) ListHolidays(ctx context.Context, from, to string) ([]Holiday, error) {
	if _, err := ParseDateISO(from); err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := ParseDateISO(to); err != nil {
		return nil, ErrInvalidDate
	}
	if from > to {
		return nil, ErrInvalidDateRange
	}
	return s.repo.ListOverlapping(ctx, from, to)
}

func (s *service) ImportHolidays(ctx context.Context, records []HolidayRecord) (int, error) {
	holidays, err := NormalizeHolidays(records)
	if err != nil {
		return 0, err
	}
	if err := s.repo.CreateBatch(ctx, holidays); err != nil {
		s.logger.Error("failed to import holidays", zap.Int("count", len(holidays)), zap.Error(err))
		return 0, err
	}
	s.logger.Info("holidays imported", zap.Int("count", len(holidays)))
	return len(holidays), nil
}
