package policy

import (
	"context"

	"github.com/orgspace/orgspace-api/internal/apperrors"
	"github.com/orgspace/orgspace-api/internal/models"
	"github.com/orgspace/orgspace-api/internal/registry"
)

// Gate is the single authorization entry point. Its contract, in order:
//
//  1. A user holding canManageAll passes immediately; the policy is never
//     evaluated.
//  2. Otherwise the policy is evaluated against the (possibly nil) user.
//  3. Deny raises an authorization error embedding the action label and the
//     policy's reason; a two-factor demand raises its own error kind.
//
// Controllers call Authorize before every mutation and do not duplicate its
// logic.
type Gate struct {
	dir Directory
}

func NewGate(dir Directory) *Gate {
	return &Gate{dir: dir}
}

func (g *Gate) Authorize(ctx context.Context, action string, pol Policy, user *models.User) error {
	if user != nil {
		abilities, err := g.dir.AbilitiesForUser(ctx, user.ID)
		if err != nil {
			return err
		}
		for _, a := range abilities {
			if a == registry.CanManageAll {
				return nil
			}
		}
	}

	res, err := pol.Evaluate(ctx, user)
	if err != nil {
		return err
	}
	switch res.Decision {
	case DecisionAllow:
		return nil
	case DecisionTwoFactor:
		return apperrors.NewTwoFactorRequired(action)
	default:
		return apperrors.NewAuthorization(action, res.Reason)
	}
}
