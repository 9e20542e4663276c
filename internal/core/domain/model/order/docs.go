// Package order models the purchase aggregate: contact snapshot, immutable
// line items with prices captured at purchase time, and a total amount that
// is fixed at creation. The delivery lifecycle for an order lives in the
// delivery package; this one never changes after checkout except for the
// paid flag.
package order
