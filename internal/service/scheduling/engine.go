package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/repository"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
	"github.com/gb4everrr/fettlemed-backend/pkg/logger"
	"github.com/gb4everrr/fettlemed-backend/pkg/timeutil"
)

const DefaultSlotDuration = time.Hour

// Window is one bookable interval. Start/End are UTC instants; the local
// fields are clinic wall-clock display strings.
type Window struct {
	StartUTC   time.Time `json:"start_utc"`
	EndUTC     time.Time `json:"end_utc"`
	StartLocal string    `json:"start_local"`
	EndLocal   string    `json:"end_local"`
}

// Engine derives concrete bookable windows from weekly availability
// templates, date exceptions and already-booked slots. All interval math
// happens on UTC instants; wall clocks are converted exactly once on entry.
type Engine struct {
	availabilityRepo repository.AvailabilityRepository
	slotRepo         repository.SlotRepository
	clinicRepo       repository.ClinicRepository
	slotDuration     time.Duration
	defaultTimezone  string
	logger           *logger.Logger
}

func NewEngine(
	availabilityRepo repository.AvailabilityRepository,
	slotRepo repository.SlotRepository,
	clinicRepo repository.ClinicRepository,
	slotDuration time.Duration,
	defaultTimezone string,
	logger *logger.Logger,
) *Engine {
	if slotDuration <= 0 {
		slotDuration = DefaultSlotDuration
	}
	return &Engine{
		availabilityRepo: availabilityRepo,
		slotRepo:         slotRepo,
		clinicRepo:       clinicRepo,
		slotDuration:     slotDuration,
		defaultTimezone:  defaultTimezone,
		logger:           logger,
	}
}

// ClinicLocation resolves the clinic's IANA timezone. A clinic without one
// falls back to the deployment default; when no default is configured either
// that is a tenant setup error. An unrecognized name degrades to UTC so a
// misconfigured clinic still gets a usable schedule.
func (e *Engine) ClinicLocation(ctx context.Context, clinicID uuid.UUID) (*time.Location, error) {
	clinic, err := e.clinicRepo.Get(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	name := clinic.Timezone
	if name == "" {
		if e.defaultTimezone == "" {
			return nil, apperrors.BadRequest("Clinic timezone is not configured", nil)
		}
		name = e.defaultTimezone
	}

	loc, err := timeutil.LoadLocation(name)
	if err != nil {
		e.logger.Warn("unrecognized clinic timezone, falling back to UTC",
			"clinic_id", clinic.ID.String(), "timezone", name)
		return time.UTC, nil
	}
	return loc, nil
}

// ComputeAvailableWindows returns the ordered, non-overlapping bookable
// windows for the doctor on the given local date, excluding booked slots.
func (e *Engine) ComputeAvailableWindows(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, date string) ([]*Window, error) {
	loc, err := e.ClinicLocation(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	return e.computeForDate(ctx, clinicDoctorID, clinicID, date, loc)
}

func (e *Engine) computeForDate(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, date string, loc *time.Location) ([]*Window, error) {
	weekday, err := timeutil.WeekdayInLocation(date, loc)
	if err != nil {
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid date %q", date), err)
	}

	shifts, err := e.availabilityRepo.ListForWeekday(ctx, clinicDoctorID, clinicID, weekday)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	// Candidates keyed by UTC start instant; the key doubles as the dedupe
	// rule for additive exceptions.
	candidates := make(map[int64]*Window)
	for _, shift := range shifts {
		if err := e.expandInto(candidates, date, shift.StartTime, shift.EndTime, loc); err != nil {
			e.logger.Warn("skipping malformed availability row",
				"availability_id", shift.ID.String(), "error", err.Error())
		}
	}

	exceptions, err := e.availabilityRepo.ListExceptionsForDate(ctx, clinicDoctorID, clinicID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load exceptions: %w", err)
	}
	for _, exc := range exceptions {
		if exc.IsAvailable {
			if err := e.expandInto(candidates, date, exc.StartTime, exc.EndTime, loc); err != nil {
				e.logger.Warn("skipping malformed exception row",
					"exception_id", exc.ID.String(), "error", err.Error())
			}
			continue
		}

		excStart, startErr := timeutil.WallClockToUTC(date, exc.StartTime, loc)
		excEnd, endErr := timeutil.WallClockToUTC(date, exc.EndTime, loc)
		if startErr != nil || endErr != nil {
			e.logger.Warn("skipping malformed exception row",
				"exception_id", exc.ID.String())
			continue
		}
		// Any overlap with the removal window excludes the whole candidate.
		for key, w := range candidates {
			if model.Overlaps(w.StartUTC, w.EndUTC, excStart, excEnd) {
				delete(candidates, key)
			}
		}
	}

	dayStart, dayEnd, err := timeutil.DayBoundsUTC(date, loc)
	if err != nil {
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid date %q", date), err)
	}
	booked, err := e.slotRepo.ListBookedInRange(ctx, clinicDoctorID, clinicID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked slots: %w", err)
	}
	for _, slot := range booked {
		delete(candidates, slot.StartTime.UTC().UnixNano())
	}

	windows := make([]*Window, 0, len(candidates))
	for _, w := range candidates {
		w.StartLocal = w.StartUTC.In(loc).Format(timeutil.ClockLayout)
		w.EndLocal = w.EndUTC.In(loc).Format(timeutil.ClockLayout)
		windows = append(windows, w)
	}
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].StartUTC.Before(windows[j].StartUTC)
	})
	return windows, nil
}

// expandInto converts a clinic-local wall-clock window on date into UTC and
// steps through it in slotDuration increments, adding candidates not already
// present.
func (e *Engine) expandInto(candidates map[int64]*Window, date, startClock, endClock string, loc *time.Location) error {
	start, err := timeutil.WallClockToUTC(date, startClock, loc)
	if err != nil {
		return err
	}
	end, err := timeutil.WallClockToUTC(date, endClock, loc)
	if err != nil {
		return err
	}

	for t := start; t.Before(end); t = t.Add(e.slotDuration) {
		key := t.UnixNano()
		if _, ok := candidates[key]; ok {
			continue
		}
		candidates[key] = &Window{StartUTC: t, EndUTC: t.Add(e.slotDuration)}
	}
	return nil
}

// RegenerateSlots recomputes the speculative slot grid for the doctor over
// [from, from+days). Unbooked slots in the range are replaced; booked slots
// are never touched.
func (e *Engine) RegenerateSlots(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, from time.Time, days int) error {
	loc, err := e.ClinicLocation(ctx, clinicID)
	if err != nil {
		return err
	}

	localFrom := from.In(loc)
	rangeStart, _, err := timeutil.DayBoundsUTC(localFrom.Format(timeutil.DateLayout), loc)
	if err != nil {
		return err
	}
	_, rangeEnd, err := timeutil.DayBoundsUTC(localFrom.AddDate(0, 0, days-1).Format(timeutil.DateLayout), loc)
	if err != nil {
		return err
	}

	if err := e.slotRepo.DeleteUnbookedInRange(ctx, clinicDoctorID, clinicID, rangeStart, rangeEnd); err != nil {
		return err
	}

	for i := 0; i < days; i++ {
		date := localFrom.AddDate(0, 0, i).Format(timeutil.DateLayout)
		windows, err := e.computeForDate(ctx, clinicDoctorID, clinicID, date, loc)
		if err != nil {
			return err
		}
		for _, w := range windows {
			slot := &model.AppointmentSlot{
				ClinicID:       clinicID,
				ClinicDoctorID: clinicDoctorID,
				StartTime:      w.StartUTC,
				EndTime:        w.EndUTC,
				Booked:         false,
			}
			if err := e.slotRepo.CreateIfAbsent(ctx, slot); err != nil {
				return err
			}
		}
	}
	return nil
}
