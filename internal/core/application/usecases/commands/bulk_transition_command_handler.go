package commands

import (
	"context"
)

// BulkTransitionOutcome records one successfully transitioned order.
type BulkTransitionOutcome struct {
	OrderID  string
	NoOp     bool
	Warnings []string
}

// BulkTransitionFailure records one order the batch could not transition.
type BulkTransitionFailure struct {
	OrderID string
	Reason  string
}

// BulkTransitionResult partitions the batch into applied and failed orders.
type BulkTransitionResult struct {
	Applied []BulkTransitionOutcome
	Failed  []BulkTransitionFailure
}

// BulkTransitionCommandHandler applies one transition per order in the
// batch, each in its own transaction. Orders are processed sequentially so
// each one takes and releases its row lock independently; a batch never
// holds locks across orders.
type BulkTransitionCommandHandler struct {
	transitions *RequestTransitionCommandHandler
}

// NewBulkTransitionCommandHandler creates the batch handler on top of the
// single-order transition handler.
func NewBulkTransitionCommandHandler(transitions *RequestTransitionCommandHandler) BulkTransitionCommandHandler {
	return BulkTransitionCommandHandler{transitions: transitions}
}

// Handle processes the batch. Each order goes through the full transition
// path including audit events and side effects. Force is implied: bulk
// callers have no way to answer a per-order confirmation prompt.
func (h *BulkTransitionCommandHandler) Handle(
	ctx context.Context,
	cmd BulkTransitionCommand,
) (BulkTransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkTransitionResult{}, err
	}

	result := BulkTransitionResult{
		Applied: make([]BulkTransitionOutcome, 0, len(cmd.OrderIDs())),
		Failed:  make([]BulkTransitionFailure, 0),
	}

	for _, orderID := range cmd.OrderIDs() {
		single, err := NewRequestTransitionCommand(orderID, cmd.Target(), cmd.Reason(), cmd.ActorID(), true)
		if err != nil {
			return BulkTransitionResult{}, err
		}

		outcome, err := h.transitions.Handle(ctx, single)
		if err != nil {
			result.Failed = append(result.Failed, BulkTransitionFailure{
				OrderID: orderID.String(),
				Reason:  err.Error(),
			})

			if !cmd.ContinueOnError() {
				return result, nil
			}
			continue
		}

		result.Applied = append(result.Applied, BulkTransitionOutcome{
			OrderID:  orderID.String(),
			NoOp:     outcome.NoOp,
			Warnings: outcome.Warnings,
		})
	}

	return result, nil
}
