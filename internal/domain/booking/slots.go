package booking

import (
	"time"

	"github.com/HamidBoasidah/namaa-sub001/internal/models"
)

type CandidateSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WorkingRange is a WorkingHour row resolved onto a concrete date in
// the consultant's location.
type WorkingRange struct {
	Start time.Time
	End   time.Time
}

// ResolveOnDate projects the "15:04" strings of a working-hour row onto
// the given date. Rows with malformed or inverted times are skipped.
func ResolveOnDate(wh models.WorkingHour, date time.Time) (WorkingRange, bool) {
	loc := date.Location()

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	start, ok := parseHM(wh.StartTime)
	if !ok {
		return WorkingRange{}, false
	}
	end, ok := parseHM(wh.EndTime)
	if !ok || !end.After(start) {
		return WorkingRange{}, false
	}

	return WorkingRange{Start: start, End: end}, true
}

// EnumerateCandidates steps through each working range at stepMin
// intervals, keeping every start where start + duration + buffer still
// fits inside the range. No past-time filtering happens here; the
// availability facade annotates past candidates instead of hiding them.
//
// Note stepMin is the display stepping (default 30), deliberately
// coarser than the 5-minute alignment accepted on reservation requests.
func EnumerateCandidates(ranges []WorkingRange, durationMin, bufferMin, stepMin int) []CandidateSlot {
	if durationMin <= 0 || stepMin <= 0 {
		return nil
	}

	occupied := time.Duration(durationMin+bufferMin) * time.Minute
	duration := time.Duration(durationMin) * time.Minute
	step := time.Duration(stepMin) * time.Minute

	var out []CandidateSlot
	for _, r := range ranges {
		for cur := r.Start; !cur.Add(occupied).After(r.End); cur = cur.Add(step) {
			out = append(out, CandidateSlot{
				Start: cur,
				End:   cur.Add(duration),
			})
		}
	}

	return out
}

// GenerateCandidates is EnumerateCandidates minus candidates that have
// already started relative to now. On "today" this trims the morning;
// future dates are unaffected.
func GenerateCandidates(ranges []WorkingRange, durationMin, bufferMin, stepMin int, now time.Time) []CandidateSlot {
	all := EnumerateCandidates(ranges, durationMin, bufferMin, stepMin)

	out := all[:0]
	for _, c := range all {
		if c.Start.Before(now) {
			continue
		}
		out = append(out, c)
	}

	return out
}
