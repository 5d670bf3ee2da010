// Package services contains stateless domain services implementing business
// logic that spans entities.
//
// FulfillmentPlanner builds the warehouse-facing picking work item when an
// order enters active fulfilment: zone assignment, priority derived from
// order value and age, and an estimated pick duration. The planner is
// deterministic and side-effect free, which keeps it unit-testable in
// isolation.
package services
