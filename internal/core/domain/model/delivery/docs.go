// Package delivery contains the delivery aggregate and its owned records.
//
// A Delivery tracks the fulfillment of exactly one order through a closed
// state machine (pending, assigned, en_route, delivered, failed,
// rescheduled). Every transition appends an immutable audit Event; failed
// attempts additionally append a FailureReason ledger row with a monotonic
// attempt number. Deliveries carry a discussion thread of Comments and are
// the subject of Notifications addressed to customers, couriers and
// coordinators.
//
// All mutations are authorization-checked against the acting account's
// role and go through the aggregate root, which collects newly appended
// child records for the repository to flush transactionally.
package delivery
