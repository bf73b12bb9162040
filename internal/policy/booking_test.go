package policy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgspace/orgspace-api/internal/apperrors"
	"github.com/orgspace/orgspace-api/internal/models"
)

type stubFinder struct {
	prev *models.Booking
	next *models.Booking
}

func (f *stubFinder) LatestEndingBefore(_ context.Context, _, _ uint64, _ time.Time) (*models.Booking, error) {
	return f.prev, nil
}

func (f *stubFinder) EarliestStartingAfter(_ context.Context, _, _ uint64, _ time.Time) (*models.Booking, error) {
	return f.next, nil
}

// slot returns a time on a 30-minute boundary.
func slot(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestValidateSlotAlignment(t *testing.T) {
	rules := DefaultSlotRules()

	assert.NoError(t, ValidateSlotAlignment(rules, slot(22, 30), slot(23, 0)))

	err := ValidateSlotAlignment(rules, slot(23, 0), slot(22, 30))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	// End off the slot grid.
	err = ValidateSlotAlignment(rules, slot(22, 30), slot(22, 30).Add(45*time.Minute))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestNotTooShort(t *testing.T) {
	rules := DefaultSlotRules()

	res, err := NotTooShort(rules, slot(22, 30), slot(23, 0)).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionAllow, res.Decision)

	res, err = NotTooShort(rules, slot(22, 30), slot(22, 30).Add(29*time.Minute)).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionDeny, res.Decision)
	assert.Equal(t, "Booking must be at least 30 minutes long", res.Reason)
}

func TestNotTooLong(t *testing.T) {
	rules := DefaultSlotRules()

	// Exactly MaxSlots x SlotSize is allowed.
	res, err := NotTooLong(rules, slot(20, 0), slot(22, 0)).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionAllow, res.Decision)

	// One minute longer is not.
	res, err = NotTooLong(rules, slot(20, 0), slot(22, 0).Add(time.Minute)).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionDeny, res.Decision)
	assert.Equal(t, "Booking cannot be longer than 120 minutes", res.Reason)
}

func TestMaxDuration_OrgHeadLimit(t *testing.T) {
	res, err := MaxDuration(OrgHeadBookingLimit, slot(20, 0), slot(22, 0)).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionAllow, res.Decision)

	res, err = MaxDuration(OrgHeadBookingLimit, slot(20, 0), slot(23, 0)).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionDeny, res.Decision)
	assert.Equal(t, "Organisation heads can only book up to 120 minutes", res.Reason)
}

func TestWithinAdvanceWindow(t *testing.T) {
	rules := DefaultSlotRules()
	now := slot(12, 0)

	res, err := WithinAdvanceWindow(rules, now.Add(14*24*time.Hour), now).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionAllow, res.Decision)

	res, err = WithinAdvanceWindow(rules, now.Add(14*24*time.Hour+time.Minute), now).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionDeny, res.Decision)
	assert.Equal(t, "Booking cannot start more than 14 days in advance", res.Reason)
}

// Existing booking [22:30, 23:00); min gap one 30-minute slot. Starting at
// 23:00 leaves no gap and must fail; 23:30 leaves exactly one slot and passes.
func TestNotStacked_GapBefore(t *testing.T) {
	rules := DefaultSlotRules()
	dir := &stubDirectory{adminOrgs: map[uint64]bool{}}
	finder := &stubFinder{prev: &models.Booking{Start: slot(22, 30), End: slot(23, 0)}}

	res, err := NotStacked(finder, dir, rules, 1, 5, slot(23, 0), slot(23, 30)).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionDeny, res.Decision)
	assert.Equal(t, "Bookings by the same organisation at this venue must be at least 30 minutes apart", res.Reason)

	res, err = NotStacked(finder, dir, rules, 1, 5, slot(23, 30), slot(23, 59).Add(time.Minute)).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionAllow, res.Decision)
}

func TestNotStacked_GapAfter(t *testing.T) {
	rules := DefaultSlotRules()
	dir := &stubDirectory{adminOrgs: map[uint64]bool{}}
	finder := &stubFinder{next: &models.Booking{Start: slot(23, 0), End: slot(23, 30)}}

	res, err := NotStacked(finder, dir, rules, 1, 5, slot(22, 0), slot(23, 0)).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionDeny, res.Decision)

	res, err = NotStacked(finder, dir, rules, 1, 5, slot(22, 0), slot(22, 30)).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionAllow, res.Decision)
}

func TestNotStacked_NoNeighbors(t *testing.T) {
	rules := DefaultSlotRules()
	dir := &stubDirectory{adminOrgs: map[uint64]bool{}}

	res, err := NotStacked(&stubFinder{}, dir, rules, 1, 5, slot(22, 0), slot(23, 0)).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionAllow, res.Decision)
}

// Admin organisations are exempt from the stacking rule regardless of gap.
func TestNotStacked_AdminOrgExempt(t *testing.T) {
	rules := DefaultSlotRules()
	dir := &stubDirectory{adminOrgs: map[uint64]bool{5: true}}
	finder := &stubFinder{prev: &models.Booking{Start: slot(22, 30), End: slot(23, 0)}}

	res, err := NotStacked(finder, dir, rules, 1, 5, slot(23, 0), slot(23, 30)).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DecisionAllow, res.Decision)
}
