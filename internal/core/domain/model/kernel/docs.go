// Package kernel contains shared value objects used across all domain
// aggregates. These are the building blocks of the domain model: identifier
// types and validation primitives that carry no business process of their own
// but enforce the invariants every aggregate relies on.
package kernel
