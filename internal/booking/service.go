package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nekogravitycat/club-booking-backend/internal/calendar"
	"github.com/nekogravitycat/club-booking-backend/internal/eventtype"
	"github.com/nekogravitycat/club-booking-backend/internal/facility"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/club-booking-backend/internal/slot"
	"go.uber.org/zap"
)

// AvailabilityRequest is a candidate booking as entered in the booking form.
// Either Date or Recurrence must be set.
type AvailabilityRequest struct {
	ResourceID  string
	Date        string
	Recurrence  *Recurrence
	StartTime   string
	EndTime     string
	BookingType string
}

type CreateRequest struct {
	AvailabilityRequest
	UserID string
	TeamID string
	Title  string
}

// CreateResult holds the stored rows and any advisory (warning) conflicts.
type CreateResult struct {
	Bookings []*Booking
	Warnings []DateConflicts
}

// AnnotatedBooking is a stored booking with the bookings it currently collides with.
type AnnotatedBooking struct {
	*Booking
	Conflicts []Booking
}

type Service interface {
	Check(ctx context.Context, req AvailabilityRequest) ([]DateConflicts, error)
	Create(ctx context.Context, req CreateRequest) (*CreateResult, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]AnnotatedBooking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error)
	UpdateSeriesStatus(ctx context.Context, seriesID string, status Status) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteSeries(ctx context.Context, seriesID string) (int64, error)
}

type service struct {
	repo       Repository
	facService facility.Service
	slotRepo   slot.Repository
	etService  eventtype.Service
	logger     *zap.Logger
}

func NewService(
	repo Repository,
	facService facility.Service,
	slotRepo slot.Repository,
	etService eventtype.Service,
	logger *zap.Logger,
) Service {
	return &service{
		repo:       repo,
		facService: facService,
		slotRepo:   slotRepo,
		etService:  etService,
		logger:     logger,
	}
}

func validateTimes(start, end string) error {
	s, err := calendar.ParseClock(start)
	if err != nil {
		return ErrInvalidTime
	}
	e, err := calendar.ParseClock(end)
	if err != nil {
		return ErrInvalidTime
	}
	if s >= e {
		return ErrInvalidTimeRange
	}
	return nil
}

// checkInput holds everything a conflict check needs apart from the bookings.
type checkInput struct {
	request   CheckRequest
	resources []facility.BookableResource
	resource  *facility.BookableResource
	slots     []slot.Slot
	types     eventtype.Registry
}

// prepare loads the check inputs. Writes pass fresh so the lock key and the
// re-check use the current resource layout rather than a cached one.
func (s *service) prepare(ctx context.Context, req AvailabilityRequest, fresh bool) (*checkInput, error) {
	if err := validateTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	dates, err := ResolveDates(req.Date, req.Recurrence)
	if err != nil {
		return nil, err
	}

	listResources := s.facService.ListBookable
	if fresh {
		listResources = s.facService.ListBookableFresh
	}
	resources, err := listResources(ctx, "")
	if err != nil {
		return nil, err
	}
	var resource *facility.BookableResource
	if r, ok := facility.Index(resources)[req.ResourceID]; ok {
		resource = &r
	}

	var slots []slot.Slot
	if resource != nil && resource.IsLimited() {
		slots, err = s.slotRepo.List(ctx, slot.Filter{ResourceID: resource.ID})
		if err != nil {
			s.logger.Error("failed to load slots", zap.String("resource_id", resource.ID), zap.Error(err))
			return nil, err
		}
	}

	types, err := s.etService.Registry(ctx)
	if err != nil {
		s.logger.Error("failed to load event types", zap.Error(err))
		return nil, err
	}

	return &checkInput{
		request: CheckRequest{
			ResourceID:  req.ResourceID,
			Dates:       dates,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			BookingType: req.BookingType,
		},
		resources: resources,
		resource:  resource,
		slots:     slots,
		types:     types,
	}, nil
}

func (in *checkInput) run(bookings []Booking) []DateConflicts {
	return CheckConflicts(in.request, Snapshot{
		Resources:  in.resources,
		Slots:      in.slots,
		Bookings:   bookings,
		EventTypes: in.types,
	})
}

func (s *service) Check(ctx context.Context, req AvailabilityRequest) ([]DateConflicts, error) {
	in, err := s.prepare(ctx, req, false)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListByDates(ctx, in.request.Dates)
	if err != nil {
		s.logger.Error("failed to load bookings", zap.Error(err))
		return nil, err
	}
	return in.run(bookings), nil
}

// ConflictError carries the per-date conflicts that blocked a write.
type ConflictError struct {
	*apperror.AppError
	Conflicts []DateConflicts
}

func newConflictError(conflicts []DateConflicts) *ConflictError {
	return &ConflictError{
		AppError:  apperror.New(ErrTimeConflict.Code, ErrTimeConflict.Message),
		Conflicts: conflicts,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	in, err := s.prepare(ctx, req.AvailabilityRequest, true)
	if err != nil {
		return nil, err
	}
	if in.resource == nil {
		return nil, ErrResourceNotFound
	}
	if !in.types.Has(req.BookingType) {
		return nil, ErrUnknownType
	}

	seriesID := ""
	if req.Recurrence != nil {
		seriesID = uuid.NewString()
	}
	rows := BuildOccurrences(Draft{
		UserID:      req.UserID,
		TeamID:      req.TeamID,
		Title:       req.Title,
		BookingType: req.BookingType,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}, *in.resource, in.request.Dates, seriesID)

	var warnings []DateConflicts
	validate := func(existing []Booking) error {
		conflicts := in.run(existing)
		if HasBlockingConflict(conflicts) {
			return newConflictError(conflicts)
		}
		warnings = conflicts
		return nil
	}

	lockKeys := []string{in.resource.FamilyID()}
	if err := s.repo.CreateGuarded(ctx, lockKeys, in.request.Dates, validate, rows); err != nil {
		var conflictErr *ConflictError
		if errors.As(err, &conflictErr) {
			s.logger.Info("booking rejected by conflict check",
				zap.String("resource_id", req.ResourceID),
				zap.Int("conflicting_dates", len(conflictErr.Conflicts)))
			return nil, err
		}
		s.logger.Error("failed to create bookings", zap.String("resource_id", req.ResourceID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("bookings created",
		zap.String("resource_id", req.ResourceID),
		zap.String("series_id", seriesID),
		zap.Int("occurrences", len(in.request.Dates)),
		zap.Int("rows", len(rows)))

	return &CreateResult{Bookings: rows, Warnings: warnings}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]AnnotatedBooking, int, error) {
	bookings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	seen := map[string]bool{}
	var dates []string
	for _, b := range bookings {
		if !seen[b.Date] {
			seen[b.Date] = true
			dates = append(dates, b.Date)
		}
	}
	sameDay, err := s.repo.ListByDates(ctx, dates)
	if err != nil {
		s.logger.Error("failed to load bookings for conflict annotation", zap.Error(err))
		return nil, 0, err
	}

	out := make([]AnnotatedBooking, len(bookings))
	for i, b := range bookings {
		out[i] = AnnotatedBooking{Booking: b, Conflicts: FindConflicts(*b, sameDay)}
	}
	return out, total, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	if status != StatusApproved && status != StatusRejected {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusPending {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

func (s *service) UpdateSeriesStatus(ctx context.Context, seriesID string, status Status) (int64, error) {
	if status != StatusApproved && status != StatusRejected {
		return 0, ErrInvalidStatus
	}
	n, err := s.repo.UpdateSeriesStatus(ctx, seriesID, status)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	return n, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) DeleteSeries(ctx context.Context, seriesID string) (int64, error) {
	return s.repo.DeleteSeries(ctx, seriesID)
}
