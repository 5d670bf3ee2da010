package order

import (
	"fmt"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/errs"
)

// TransitionPlan is the validated outcome of PlanTransition. It captures the
// from/to pair, whether the request is an idempotent no-op, and any soft
// warnings to surface to the caller. Plans are only produced by
// PlanTransition, never constructed directly.
type TransitionPlan struct {
	from     Status
	to       Status
	noOp     bool
	warnings []string
}

// From returns the status the plan starts from.
func (p TransitionPlan) From() Status { return p.from }

// To returns the status the plan moves to.
func (p TransitionPlan) To() Status { return p.to }

// NoOp reports whether the request targets the order's current status.
// No-op plans succeed without changing anything.
func (p TransitionPlan) NoOp() bool { return p.noOp }

// Warnings returns the soft guidance accumulated during planning.
func (p TransitionPlan) Warnings() []string {
	warnings := make([]string, len(p.warnings))
	copy(warnings, p.warnings)
	return warnings
}

// PlanTransition validates a requested status change against the state
// machine and the business-rule overlay, without mutating the order.
//
// Validation proceeds in three layers:
//
//  1. Idempotence: a request targeting the current status succeeds as a
//     no-op plan carrying a warning.
//  2. Adjacency: the transition must appear in the fixed adjacency table;
//     otherwise an InvalidTransitionError enumerating the allowed next
//     statuses is returned.
//  3. Business rules, checked only after adjacency passes:
//     - Paid fails when the order total is zero or negative.
//     - Cancelled from Paid or Fulfilling requires force; without it a
//       ConfirmationRequiredError carrying the warning is returned.
//     - Refunded always requires force.
//     - Fulfilling or Shipped entered from an atypical predecessor succeeds
//       with a warning. Warehouse flows occasionally skip steps, so this is
//       soft guidance, not a hard error.
//
// Cancellation after Shipped or Delivered is absent from the adjacency table,
// so it fails at layer 2 regardless of force.
func (o *Order) PlanTransition(target Status, force bool) (TransitionPlan, error) {
	if err := target.Validate(); err != nil {
		return TransitionPlan{}, err
	}

	if target == o.status {
		return TransitionPlan{
			from: o.status,
			to:   target,
			noOp: true,
			warnings: []string{
				fmt.Sprintf("order is already %s; request applied as a no-op", o.status),
			},
		}, nil
	}

	if !o.status.CanTransitionTo(target) {
		return TransitionPlan{}, errs.NewInvalidTransitionError(
			o.status.String(),
			target.String(),
			o.status.ValidNextStrings(),
		)
	}

	plan := TransitionPlan{from: o.status, to: target}

	switch target {
	case Paid:
		if o.totals.Total().Pence() <= 0 {
			return TransitionPlan{}, ErrTotalNotPositive
		}

	case Cancelled:
		if o.status == Paid || o.status == Fulfilling {
			warning := fmt.Sprintf(
				"cancelling a %s order restores reserved stock and may require a refund", o.status)
			if !force {
				return TransitionPlan{}, errs.NewConfirmationRequiredError(
					o.status.String(), target.String(), warning)
			}
			plan.warnings = append(plan.warnings, warning)
		}

	case Refunded:
		warning := "refunds are irreversible and return the full order amount"
		if !force {
			return TransitionPlan{}, errs.NewConfirmationRequiredError(
				o.status.String(), target.String(), warning)
		}
		plan.warnings = append(plan.warnings, warning)
	}

	if typical, ok := typicalPredecessor(target); ok && o.status != typical {
		plan.warnings = append(plan.warnings, fmt.Sprintf(
			"transition to %s from %s skips the typical %s step", target, o.status, typical))
	}

	return plan, nil
}

// ApplyTransition mutates the order according to a previously validated plan,
// setting the new status and the milestone timestamp for statuses that carry
// one. The plan must have been produced against the order's current status;
// a stale plan is rejected so a concurrent committed transition cannot be
// silently overwritten.
//
// No-op plans apply without changing anything.
func (o *Order) ApplyTransition(plan TransitionPlan, now time.Time) error {
	if plan.from != o.status {
		return errs.NewInvalidTransitionError(
			plan.from.String(),
			plan.to.String(),
			o.status.ValidNextStrings(),
		)
	}

	if plan.noOp {
		return nil
	}

	o.status = plan.to

	switch plan.to {
	case Paid:
		o.paidAt = &now
	case Shipped:
		o.shippedAt = &now
	case Delivered:
		o.deliveredAt = &now
	case Cancelled:
		o.cancelledAt = &now
	case Refunded:
		o.refundedAt = &now
	}

	return nil
}
