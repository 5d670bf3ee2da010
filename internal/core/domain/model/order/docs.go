// Package order contains the Order aggregate and its status state machine.
//
// Order is the single source of truth for an order's lifecycle status. Every
// status change flows through PlanTransition/ApplyTransition, which enforce
// the adjacency table and the business-rule overlay: idempotent same-status
// requests, confirmation-guarded cancellations and refunds, the zero-total
// payment guard, and soft warnings for atypical warehouse flows.
//
// Line items are immutable snapshots captured at order creation time. Prices
// and names on an item never change after construction, preserving historical
// accuracy even when catalog data changes later.
package order
