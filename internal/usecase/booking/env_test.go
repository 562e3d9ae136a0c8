package booking

import (
	"time"

	"github.com/HamidBoasidah/namaa-sub001/internal/config"
	"github.com/HamidBoasidah/namaa-sub001/internal/models"
)

const (
	testConsultantID = uint(1)
	testClientID     = uint(42)
	testServiceID    = uint(7)
)

type testEnv struct {
	store *fakeStore
	repo  *fakeRepo
	clock *fakeClock
	cfg   *config.Config

	// day starts at midnight UTC; clock starts at 08:00 that day
	day time.Time
}

func newTestEnv() *testEnv {
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	store := newFakeStore()
	store.consultants[testConsultantID] = models.Consultant{
		ID:             testConsultantID,
		Name:           "Sara Al-Harbi",
		Slug:           "sara-al-harbi",
		Timezone:       "UTC",
		SessionMinutes: 60,
		BufferMinutes:  0,
		SessionPrice:   200,
		Active:         true,
	}
	store.services[testServiceID] = models.ConsultantService{
		ID:           testServiceID,
		ConsultantID: testConsultantID,
		Name:         "Portfolio review",
		DurationMin:  60,
		BufferMin:    15,
		Price:        350,
		Active:       true,
	}
	store.hours = []models.WorkingHour{
		{
			ID:           1,
			ConsultantID: testConsultantID,
			Weekday:      int(day.Weekday()),
			StartTime:    "09:00",
			EndTime:      "18:00",
			Active:       true,
		},
	}

	return &testEnv{
		store: store,
		repo:  newFakeRepo(store),
		clock: newFakeClock(day.Add(8 * time.Hour)),
		cfg: &config.Config{
			HoldMinutes:      15,
			SlotStepMinutes:  30,
			SlotAlignMinutes: 5,
			MinLeadMinutes:   0,
		},
		day: day,
	}
}

func (e *testEnv) at(hour, min int) time.Time {
	return e.day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func (e *testEnv) createPending() *CreatePending {
	return NewCreatePending(e.repo, e.repo, e.repo, nil, nil, e.clock, e.cfg)
}

func (e *testEnv) confirm() *Confirm {
	return NewConfirm(e.repo, nil, nil, e.clock)
}

func (e *testEnv) cancel() *Cancel {
	return NewCancel(e.repo, nil, nil, e.clock)
}

func (e *testEnv) complete() *Complete {
	return NewComplete(e.repo, nil, e.clock)
}

func (e *testEnv) listSlots() *ListSlots {
	return NewListSlots(e.repo, e.repo, nil, e.clock, e.cfg)
}

func (e *testEnv) checkSlot() *CheckSlot {
	return NewCheckSlot(e.repo, e.clock)
}

func (e *testEnv) sweep() *ExpireSweep {
	return NewExpireSweep(e.repo, e.clock)
}
