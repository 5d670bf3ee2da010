package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"
)

// StockCompensationHook restores reserved inventory when an order is
// cancelled. The outcome lands in the event log either way: STOCK_RESTORED
// on success, STOCK_RESTORE_FAILED (a critical kind) when the catalog
// service rejects or fails the restore, so operators can reconcile by hand.
type StockCompensationHook struct {
	stock  ports.StockRestorer
	events ports.EventAppender
}

// NewStockCompensationHook creates the inventory compensation hook.
func NewStockCompensationHook(stock ports.StockRestorer, events ports.EventAppender) *StockCompensationHook {
	return &StockCompensationHook{stock: stock, events: events}
}

// Name identifies the hook in logs.
func (h *StockCompensationHook) Name() string { return "stock-compensation" }

// AfterTransition runs the restore for CANCELLED transitions and records
// the outcome. Other transitions are ignored.
func (h *StockCompensationHook) AfterTransition(ctx context.Context, snap TransitionSnapshot) error {
	if snap.To != order.Cancelled {
		return nil
	}

	reason := snap.Reason
	if reason == "" {
		reason = fmt.Sprintf("order cancelled from %s", snap.From)
	}

	result, err := h.stock.RestoreStock(ctx, snap.OrderID, reason)
	if err != nil || !result.Success {
		return h.recordFailure(ctx, snap, reason, err)
	}

	event, err := orderevent.NewEvent(
		kernel.NewUUID(),
		snap.OrderID,
		orderevent.KindStockRestored,
		fmt.Sprintf("restored stock for %d item(s)", result.RestoredItemCount),
		orderevent.StockPayload{
			RestoredItemCount: result.RestoredItemCount,
			TotalQuantity:     snap.Order.TotalQuantity(),
			Reason:            reason,
		},
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	return h.events.Append(ctx, event)
}

func (h *StockCompensationHook) recordFailure(
	ctx context.Context,
	snap TransitionSnapshot,
	reason string,
	cause error,
) error {
	detail := "catalog service reported failure"
	if cause != nil {
		detail = cause.Error()
	}

	event, err := orderevent.NewEvent(
		kernel.NewUUID(),
		snap.OrderID,
		orderevent.KindStockRestoreFailed,
		"stock restore failed, manual reconciliation needed",
		orderevent.StockPayload{
			TotalQuantity: snap.Order.TotalQuantity(),
			Reason:        reason,
			Error:         detail,
		},
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if appendErr := h.events.Append(ctx, event); appendErr != nil {
		return appendErr
	}

	return cause
}
