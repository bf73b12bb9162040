package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/orgspace/orgspace-api/internal/apperrors"
	"github.com/orgspace/orgspace-api/internal/models"
)

// SlotRules configures the booking constraint engine.
type SlotRules struct {
	SlotSize    time.Duration
	MinSlots    int
	MaxSlots    int
	MinGapSlots int
	AdvanceDays int
}

// DefaultSlotRules mirrors the production configuration: 30-minute slots,
// bookings of 1 to 4 slots, one-slot stacking gap, 14-day advance window.
func DefaultSlotRules() SlotRules {
	return SlotRules{
		SlotSize:    30 * time.Minute,
		MinSlots:    1,
		MaxSlots:    4,
		MinGapSlots: 1,
		AdvanceDays: 14,
	}
}

func (r SlotRules) MinDuration() time.Duration {
	return time.Duration(r.MinSlots) * r.SlotSize
}

func (r SlotRules) MaxDuration() time.Duration {
	return time.Duration(r.MaxSlots) * r.SlotSize
}

func (r SlotRules) MinGap() time.Duration {
	return time.Duration(r.MinGapSlots) * r.SlotSize
}

func (r SlotRules) AdvanceWindow() time.Duration {
	return time.Duration(r.AdvanceDays) * 24 * time.Hour
}

// ValidateSlotAlignment checks the shape of a booking interval: end after
// start, duration a whole multiple of the slot size, and end on a slot
// boundary. Duration bounds and the advance window are enforced by the
// standalone policies below.
func ValidateSlotAlignment(rules SlotRules, start, end time.Time) error {
	if !end.After(start) {
		return apperrors.NewValidation("Booking end must be after its start")
	}
	slotSeconds := int64(rules.SlotSize / time.Second)
	if end.Unix()%slotSeconds != 0 {
		return apperrors.NewValidation(fmt.Sprintf("Booking times must align to %d-minute slots", int(rules.SlotSize.Minutes())))
	}
	if int64(end.Sub(start)/time.Second)%slotSeconds != 0 {
		return apperrors.NewValidation(fmt.Sprintf("Booking duration must be a whole number of %d-minute slots", int(rules.SlotSize.Minutes())))
	}
	return nil
}

type notTooShort struct {
	rules      SlotRules
	start, end time.Time
}

// NotTooShort denies bookings shorter than the configured minimum.
func NotTooShort(rules SlotRules, start, end time.Time) Policy {
	return notTooShort{rules: rules, start: start, end: end}
}

func (p notTooShort) Evaluate(ctx context.Context, user *models.User) (Result, error) {
	if p.end.Sub(p.start) < p.rules.MinDuration() {
		return denied(fmt.Sprintf("Booking must be at least %d minutes long", int(p.rules.MinDuration().Minutes()))), nil
	}
	return allowed(), nil
}

type notTooLong struct {
	rules      SlotRules
	start, end time.Time
}

// NotTooLong denies bookings longer than the configured maximum.
func NotTooLong(rules SlotRules, start, end time.Time) Policy {
	return notTooLong{rules: rules, start: start, end: end}
}

func (p notTooLong) Evaluate(ctx context.Context, user *models.User) (Result, error) {
	if p.end.Sub(p.start) > p.rules.MaxDuration() {
		return denied(fmt.Sprintf("Booking cannot be longer than %d minutes", int(p.rules.MaxDuration().Minutes()))), nil
	}
	return allowed(), nil
}

type maxDuration struct {
	limit      time.Duration
	start, end time.Time
}

// MaxDuration denies bookings longer than an explicit limit, independent of
// the slot rules. Used to cap organisation-head bookings.
func MaxDuration(limit time.Duration, start, end time.Time) Policy {
	return maxDuration{limit: limit, start: start, end: end}
}

func (p maxDuration) Evaluate(ctx context.Context, user *models.User) (Result, error) {
	if p.end.Sub(p.start) > p.limit {
		return denied(fmt.Sprintf("Organisation heads can only book up to %d minutes", int(p.limit.Minutes()))), nil
	}
	return allowed(), nil
}

type withinAdvanceWindow struct {
	rules SlotRules
	start time.Time
	now   time.Time
}

// WithinAdvanceWindow denies bookings starting further in the future than the
// configured advance window, measured from now.
func WithinAdvanceWindow(rules SlotRules, start, now time.Time) Policy {
	return withinAdvanceWindow{rules: rules, start: start, now: now}
}

func (p withinAdvanceWindow) Evaluate(ctx context.Context, user *models.User) (Result, error) {
	if p.start.Sub(p.now) > p.rules.AdvanceWindow() {
		return denied(fmt.Sprintf("Booking cannot start more than %d days in advance", p.rules.AdvanceDays)), nil
	}
	return allowed(), nil
}

type notStacked struct {
	finder     NeighborFinder
	dir        Directory
	rules      SlotRules
	venueID    uint64
	orgID      uint64
	start, end time.Time
}

// NotStacked enforces the minimum gap between consecutive bookings by the
// same organisation at the same venue. Admin organisations are exempt; a
// missing neighbor on either side trivially satisfies that side.
func NotStacked(finder NeighborFinder, dir Directory, rules SlotRules, venueID, orgID uint64, start, end time.Time) Policy {
	return notStacked{finder: finder, dir: dir, rules: rules, venueID: venueID, orgID: orgID, start: start, end: end}
}

func (p notStacked) Evaluate(ctx context.Context, user *models.User) (Result, error) {
	adminOrg, err := p.dir.IsAdminOrg(ctx, p.orgID)
	if err != nil {
		return Result{}, err
	}
	if adminOrg {
		return allowed(), nil
	}

	reason := fmt.Sprintf("Bookings by the same organisation at this venue must be at least %d minutes apart", int(p.rules.MinGap().Minutes()))

	prev, err := p.finder.LatestEndingBefore(ctx, p.venueID, p.orgID, p.start)
	if err != nil {
		return Result{}, err
	}
	if prev != nil && p.start.Sub(prev.End) < p.rules.MinGap() {
		return denied(reason), nil
	}

	next, err := p.finder.EarliestStartingAfter(ctx, p.venueID, p.orgID, p.end)
	if err != nil {
		return Result{}, err
	}
	if next != nil && next.Start.Sub(p.end) < p.rules.MinGap() {
		return denied(reason), nil
	}

	return allowed(), nil
}
