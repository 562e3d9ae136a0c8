package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
	"github.com/HamidBoasidah/namaa-sub001/internal/httperr"
	"github.com/HamidBoasidah/namaa-sub001/internal/models"
)

func consultantRef() domain.BookableRef {
	return domain.BookableRef{Kind: domain.BookableConsultant, ID: testConsultantID}
}

func serviceRef() domain.BookableRef {
	return domain.BookableRef{Kind: domain.BookableService, ID: testServiceID}
}

func TestCreatePending_Success(t *testing.T) {
	env := newTestEnv()
	uc := env.createPending()

	created, err := uc.Execute(context.Background(), CreatePendingInput{
		ConsultantID: testConsultantID,
		ClientID:     testClientID,
		Bookable:     consultantRef(),
		StartAt:      env.at(10, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), created.Status)
	assert.Equal(t, env.at(11, 0), created.EndAt)
	assert.Equal(t, 60, created.DurationMinutes)
	require.NotNil(t, created.ExpiresAt)
	assert.Equal(t, env.clock.Now().Add(15*time.Minute), *created.ExpiresAt)
}

func TestCreatePending_ServiceBookableSnapshotsCatalog(t *testing.T) {
	env := newTestEnv()
	uc := env.createPending()

	created, err := uc.Execute(context.Background(), CreatePendingInput{
		ConsultantID: testConsultantID,
		ClientID:     testClientID,
		Bookable:     serviceRef(),
		StartAt:      env.at(10, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, "service", created.BookableType)
	assert.Equal(t, 15, created.BufferAfterMinutes)
	assert.Equal(t, 350.0, created.Price)
}

func TestCreatePending_Validation(t *testing.T) {
	env := newTestEnv()
	uc := env.createPending()

	tests := []struct {
		name     string
		start    time.Time
		wantCode string
	}{
		{
			name:     "start in the past",
			start:    env.clock.Now().Add(-3 * time.Minute),
			wantCode: "start_in_past",
		},
		{
			// past wins over misalignment when both apply
			name:     "past and off the 5-minute grid",
			start:    env.clock.Now().Add(-7 * time.Minute),
			wantCode: "start_in_past",
		},
		{
			name:     "start misaligned to 5 minutes",
			start:    env.at(10, 3),
			wantCode: "misaligned_start",
		},
		{
			name:     "outside working hours",
			start:    env.at(20, 0),
			wantCode: "outside_working_hours",
		},
		{
			name:     "occupied window spills past closing",
			start:    env.at(17, 30),
			wantCode: "outside_working_hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), CreatePendingInput{
				ConsultantID: testConsultantID,
				ClientID:     testClientID,
				Bookable:     consultantRef(),
				StartAt:      tt.start,
			})

			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tt.wantCode), "got %v", err)
			assert.Empty(t, env.store.bookings, "no row may be inserted on validation failure")
		})
	}
}

func TestCreatePending_Holiday(t *testing.T) {
	env := newTestEnv()
	env.store.addHoliday(testConsultantID, env.day)
	uc := env.createPending()

	_, err := uc.Execute(context.Background(), CreatePendingInput{
		ConsultantID: testConsultantID,
		ClientID:     testClientID,
		Bookable:     consultantRef(),
		StartAt:      env.at(10, 0),
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "consultant_on_holiday"))
}

func TestCreatePending_Conflict(t *testing.T) {
	env := newTestEnv()
	uc := env.createPending()

	_, err := uc.Execute(context.Background(), CreatePendingInput{
		ConsultantID: testConsultantID,
		ClientID:     testClientID,
		Bookable:     consultantRef(),
		StartAt:      env.at(10, 0),
	})
	require.NoError(t, err)

	// overlapping hold for another client
	_, err = uc.Execute(context.Background(), CreatePendingInput{
		ConsultantID: testConsultantID,
		ClientID:     testClientID + 1,
		Bookable:     consultantRef(),
		StartAt:      env.at(10, 30),
	})

	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.Len(t, env.store.bookings, 1)
}

func TestCreatePending_AdjacencyWithBuffer(t *testing.T) {
	env := newTestEnv()
	uc := env.createPending()

	// service booking 10:00-11:00 with 15 min buffer occupies until 11:15
	_, err := uc.Execute(context.Background(), CreatePendingInput{
		ConsultantID: testConsultantID,
		ClientID:     testClientID,
		Bookable:     serviceRef(),
		StartAt:      env.at(10, 0),
	})
	require.NoError(t, err)

	// 11:15 touches the occupied window exactly: allowed
	_, err = uc.Execute(context.Background(), CreatePendingInput{
		ConsultantID: testConsultantID,
		ClientID:     testClientID + 1,
		Bookable:     consultantRef(),
		StartAt:      env.at(11, 15),
	})
	assert.NoError(t, err)

	// 11:10 lands inside the buffer: conflict
	_, err = uc.Execute(context.Background(), CreatePendingInput{
		ConsultantID: testConsultantID,
		ClientID:     testClientID + 2,
		Bookable:     consultantRef(),
		StartAt:      env.at(11, 10),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
}

func TestCreatePending_LapsedHoldDoesNotBlock(t *testing.T) {
	env := newTestEnv()
	uc := env.createPending()

	_, err := uc.Execute(context.Background(), CreatePendingInput{
		ConsultantID: testConsultantID,
		ClientID:     testClientID,
		Bookable:     consultantRef(),
		StartAt:      env.at(14, 0),
	})
	require.NoError(t, err)

	// let the hold lapse without running the sweeper
	env.clock.Advance(16 * time.Minute)

	created, err := uc.Execute(context.Background(), CreatePendingInput{
		ConsultantID: testConsultantID,
		ClientID:     testClientID + 1,
		Bookable:     consultantRef(),
		StartAt:      env.at(14, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), created.Status)
}

func TestCreatePending_ConcurrentOverlap_ExactlyOneWins(t *testing.T) {
	env := newTestEnv()
	uc := env.createPending()

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), CreatePendingInput{
				ConsultantID: testConsultantID,
				ClientID:     testClientID + uint(i),
				Bookable:     consultantRef(),
				StartAt:      env.at(10, 0),
			})
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case httperr.IsKind(err, httperr.KindConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, env.store.bookings, 1)
}

func TestCreatePending_DifferentConsultantsDoNotContend(t *testing.T) {
	env := newTestEnv()

	other := env.store.consultants[testConsultantID]
	other.ID = 2
	other.Slug = "second"
	env.store.consultants[2] = other
	env.store.hours = append(env.store.hours, models.WorkingHour{
		ID:           2,
		ConsultantID: 2,
		Weekday:      int(env.day.Weekday()),
		StartTime:    "09:00",
		EndTime:      "18:00",
		Active:       true,
	})

	uc := env.createPending()

	for _, consultantID := range []uint{testConsultantID, 2} {
		_, err := uc.Execute(context.Background(), CreatePendingInput{
			ConsultantID: consultantID,
			ClientID:     testClientID,
			Bookable:     domain.BookableRef{Kind: domain.BookableConsultant, ID: consultantID},
			StartAt:      env.at(10, 0),
		})
		require.NoError(t, err)
	}

	assert.Len(t, env.store.bookings, 2)
}
