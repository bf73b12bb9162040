package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgspace/orgspace-api/internal/apperrors"
	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/registry"
)

func TestGate_AdminBypass(t *testing.T) {
	dir := &stubDirectory{abilities: map[uint64][]string{
		1: {registry.CanManageAll},
	}}
	gate := NewGate(dir)

	// The policy must never be evaluated for a canManageAll holder.
	spy := &spyPolicy{result: denied("never seen")}
	err := gate.Authorize(context.Background(), "delete a user", spy, testUser(1))
	require.NoError(t, err)
	assert.False(t, spy.called)

	err = gate.Authorize(context.Background(), "delete a user", Deny(), testUser(1))
	assert.NoError(t, err)
}

func TestGate_DenyEmbedsActionAndReason(t *testing.T) {
	dir := &stubDirectory{abilities: map[uint64][]string{1: {}}}
	gate := NewGate(dir)

	err := gate.Authorize(context.Background(), "delete a user", Deny(), testUser(1))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
	assert.Contains(t, err.Error(), "delete a user")
	assert.Contains(t, err.Error(), ReasonAdminOnly)
}

func TestGate_AnonymousGetsNoBypass(t *testing.T) {
	gate := NewGate(&stubDirectory{})

	err := gate.Authorize(context.Background(), "create a booking", HasAnyAbilities(&stubDirectory{}, "canCreateBooking"), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
	assert.Contains(t, err.Error(), ReasonNotLoggedIn)
}

func TestGate_AllowPasses(t *testing.T) {
	gate := NewGate(&stubDirectory{})
	assert.NoError(t, gate.Authorize(context.Background(), "view a venue", Allow(), nil))
}

type twoFactorPolicy struct{}

func (twoFactorPolicy) Evaluate(_ context.Context, _ *models.User) (Result, error) {
	return Result{Decision: DecisionTwoFactor}, nil
}

func TestGate_TwoFactorIsDistinct(t *testing.T) {
	dir := &stubDirectory{abilities: map[uint64][]string{1: {}}}
	gate := NewGate(dir)

	err := gate.Authorize(context.Background(), "rotate credentials", twoFactorPolicy{}, testUser(1))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindTwoFactorRequired))
}
