// Package services provides domain services that orchestrate business
// operations across multiple aggregates of the delivery system.
//
// The package includes:
//   - CourierDispatcher: picks the least-loaded courier for automatic assignment
//   - NotificationDispatcher: composes the notifications each lifecycle
//     operation owes its audiences
//
// Domain services hold no state and implement logic that does not belong
// to a single aggregate root.
package services
