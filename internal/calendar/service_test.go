package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRepository struct {
	holidays []Holiday
}

func (m *memoryRepository) ListOverlapping(_ context.Context, from, to string) ([]Holiday, error) {
	var out []Holiday
	for _, h := range m.holidays {
		if h.StartDate <= to && h.EndDate >= from {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memoryRepository) CreateBatch(_ context.Context, holidays []Holiday) error {
	m.holidays = append(m.holidays, holidays...)
	return nil
}

func TestService_Week(t *testing.T) {
	repo := &memoryRepository{holidays: []Holiday{
		{Name: "Ostern", Kind: KindSchoolVacation, StartDate: "2025-04-14", EndDate: "2025-04-25"},
		{Name: "Karfreitag", Kind: KindPublicHoliday, StartDate: "2025-04-18", EndDate: "2025-04-18"},
	}}
	svc := NewService(repo, zap.NewNop())

	days, err := svc.Week(context.Background(), "2025-04-20")
	require.NoError(t, err)
	require.Len(t, days, 7)

	assert.Equal(t, "2025-04-14", days[0].Date)
	assert.Equal(t, time.Monday, days[0].Weekday)
	assert.Equal(t, "2025-04-20", days[6].Date)
	assert.Equal(t, time.Sunday, days[6].Weekday)

	friday := days[4]
	require.NotNil(t, friday.Info.PublicHoliday)
	assert.Equal(t, "Karfreitag", *friday.Info.PublicHoliday)
	require.NotNil(t, friday.Info.SchoolVacation)
	assert.Equal(t, "Ostern", *friday.Info.SchoolVacation)

	assert.Nil(t, days[0].Info.PublicHoliday)
	assert.NotNil(t, days[0].Info.SchoolVacation)

	_, err = svc.Week(context.Background(), "20.04.2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestService_ListHolidays(t *testing.T) {
	svc := NewService(&memoryRepository{}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.ListHolidays(ctx, "2025-05-01", "2025-04-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.ListHolidays(ctx, "May", "2025-04-01")
	assert.ErrorIs(t, err, ErrInvalidDate)

	got, err := svc.ListHolidays(ctx, "2025-01-01", "2025-12-31")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_ImportHolidays(t *testing.T) {
	repo := &memoryRepository{}
	svc := NewService(repo, zap.NewNop())

	n, err := svc.ImportHolidays(context.Background(), []HolidayRecord{
		{Name: "Tag der Arbeit", Type: "feiertag", StartDateSnake: "2025-05-01"},
		{Name: "Sommerferien", Type: "schulferien", StartDateCamel: "2025-07-31", EndDateCamel: "2025-09-10"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, repo.holidays, 2)
	assert.Equal(t, "2025-05-01", repo.holidays[0].EndDate)
	assert.Equal(t, "2025-09-10", repo.holidays[1].EndDate)

	_, err = svc.ImportHolidays(context.Background(), []HolidayRecord{{Name: "x", Type: "party", StartDateSnake: "2025-01-01"}})
	assert.ErrorIs(t, err, ErrInvalidKind)
	assert.Len(t, repo.holidays, 2)
}
