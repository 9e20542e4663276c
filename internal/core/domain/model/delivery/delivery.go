package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

// ErrDeliveryIsNotConstructed is returned when using an improperly initialized Delivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// defaultWindowHour is the arrival estimate hour used when a scheduled
// window is absent or unparseable.
const defaultWindowHour = 12

// Delivery is the aggregate root of the fulfillment workflow: exactly one
// per order, owning its status, schedule, courier assignment, audit events,
// failure ledger and comment thread.
//
// Delivery follows these invariants:
//   - Status transitions go through the Status state machine only
//   - Every transition appends exactly one audit event
//   - Failure attempt numbers are monotonic and never reset
//   - Delivered deliveries never change again; failed ones only via the
//     customer reschedule escape
//
// Newly appended children are collected on the aggregate and flushed by
// the repository inside the same transaction as the delivery row itself.
// The version counter backs optimistic concurrency control in storage.
type Delivery struct {
	// id is the unique identifier for the delivery
	id kernel.UUID

	// orderID references the order being fulfilled
	orderID kernel.UUID

	// courierID is the assigned courier account, nil until assignment
	courierID *kernel.UUID

	// status is the current lifecycle state
	status Status

	// scheduledDate is the agreed delivery date, nil when unscheduled
	scheduledDate *time.Time

	// scheduledWindow is the free-text time window, e.g. "14:00-16:00"
	scheduledWindow string

	// notes is the latest courier note
	notes string

	// photo is the latest proof photo reference
	photo string

	// failureNote is the most recent failure description, kept for display
	failureNote string

	// failureCount is the number of failure ledger rows ever recorded
	failureCount int

	// version is the optimistic concurrency counter managed by storage
	version int

	createdAt time.Time
	updatedAt time.Time

	// pendingEvents are audit rows appended since the aggregate was loaded
	pendingEvents []*Event

	// pendingFailures are ledger rows appended since the aggregate was loaded
	pendingFailures []*FailureReason

	// pendingComments are comments appended since the aggregate was loaded
	pendingComments []*Comment

	// guard ensures the delivery was created via NewDelivery
	guard guard.ConstructorGuard
}

// NewDelivery creates a new pending delivery for an order.
func NewDelivery(id, orderID kernel.UUID, createdAt time.Time) (*Delivery, error) {
	d := &Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
	); err != nil {
		return nil, err
	}

	d.status = StatusPending
	d.createdAt = createdAt
	d.updatedAt = createdAt
	return d, nil
}

// RestoreDelivery reconstructs a delivery from persistent storage.
func RestoreDelivery(
	id, orderID kernel.UUID,
	courierID *kernel.UUID,
	status Status,
	scheduledDate *time.Time,
	scheduledWindow, notes, photo, failureNote string,
	failureCount, version int,
	createdAt, updatedAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}

	d.courierID = courierID
	d.scheduledDate = scheduledDate
	d.scheduledWindow = scheduledWindow
	d.notes = notes
	d.photo = photo
	d.failureNote = failureNote
	d.failureCount = failureCount
	d.version = version
	d.createdAt = createdAt
	d.updatedAt = updatedAt
	return d, nil
}

// Validate checks if the Delivery was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the fulfilled order's identifier.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// CourierID returns the assigned courier account, or nil before assignment.
func (d *Delivery) CourierID() *kernel.UUID {
	if d.courierID == nil {
		return nil
	}
	id := *d.courierID
	return &id
}

// Status returns the current lifecycle state.
func (d *Delivery) Status() Status {
	return d.status
}

// ScheduledDate returns the agreed delivery date, or nil when unscheduled.
func (d *Delivery) ScheduledDate() *time.Time {
	if d.scheduledDate == nil {
		return nil
	}
	date := *d.scheduledDate
	return &date
}

// ScheduledWindow returns the free-text delivery window.
func (d *Delivery) ScheduledWindow() string {
	return d.scheduledWindow
}

// Notes returns the latest courier note.
func (d *Delivery) Notes() string {
	return d.notes
}

// Photo returns the latest proof photo reference.
func (d *Delivery) Photo() string {
	return d.photo
}

// FailureNote returns the most recent failure description.
func (d *Delivery) FailureNote() string {
	return d.failureNote
}

// FailureCount returns how many failure ledger rows the delivery has.
func (d *Delivery) FailureCount() int {
	return d.failureCount
}

// Version returns the optimistic concurrency counter.
func (d *Delivery) Version() int {
	return d.version
}

// CreatedAt returns when the delivery was created.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns when the delivery was last modified.
func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// IsFinal reports whether the delivery reached a terminal status.
func (d *Delivery) IsFinal() bool {
	return d.status.IsFinal()
}

// PendingEvents returns audit rows appended since the aggregate was loaded.
func (d *Delivery) PendingEvents() []*Event {
	return append([]*Event(nil), d.pendingEvents...)
}

// PendingFailures returns ledger rows appended since the aggregate was loaded.
func (d *Delivery) PendingFailures() []*FailureReason {
	return append([]*FailureReason(nil), d.pendingFailures...)
}

// PendingComments returns comments appended since the aggregate was loaded.
func (d *Delivery) PendingComments() []*Comment {
	return append([]*Comment(nil), d.pendingComments...)
}

// MarkPersisted records the version the repository just wrote and resets
// the pending child collections. Called by storage after a successful
// flush; never by application code.
func (d *Delivery) MarkPersisted(version int) {
	d.version = version
	d.pendingEvents = nil
	d.pendingFailures = nil
	d.pendingComments = nil
}

// AssignCourier assigns or reassigns a courier on behalf of a manager,
// optionally updating the schedule, and forces the status to Assigned.
//
// A nil scheduledDate and empty scheduledWindow keep the current schedule.
// Assignment is rejected once the delivery is delivered; failed deliveries
// may be reassigned to retry.
func (d *Delivery) AssignCourier(actor *account.Account, courierID kernel.UUID, scheduledDate *time.Time, scheduledWindow string, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.EffectiveRole() != account.RoleManager {
		return errs.NewNotAuthorizedError("assign courier", actor.EffectiveRole().String())
	}
	return d.assignCourier(&actorRef{actor}, courierID, scheduledDate, scheduledWindow, now)
}

// AutoAssignCourier assigns a courier on behalf of the system, for the
// payment-confirmed trigger and the provisioning job. The audit event
// carries no acting account.
func (d *Delivery) AutoAssignCourier(courierID kernel.UUID, now time.Time) error {
	return d.assignCourier(nil, courierID, nil, "", now)
}

func (d *Delivery) assignCourier(actor *actorRef, courierID kernel.UUID, scheduledDate *time.Time, scheduledWindow string, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	statusBefore := d.status
	status, err := d.status.Assign()
	if err != nil {
		return err
	}

	d.status = status
	d.courierID = &courierID
	if scheduledDate != nil {
		d.scheduledDate = scheduledDate
	}
	if scheduledWindow != "" {
		d.scheduledWindow = scheduledWindow
	}
	d.updatedAt = now

	return d.appendEvent(actor.id(), statusBefore, d.status, "courier assigned", "", now)
}

// Advance moves the delivery to a courier-reported status other than
// Failed, updating notes and photo and appending an audit event.
//
// Only the assigned courier may advance the delivery. Failed attempts
// must go through Fail so a reason code is always recorded.
func (d *Delivery) Advance(actor *account.Account, target Status, note, photo string, now time.Time) error {
	if err := d.validateCourierActor(actor, "advance delivery status"); err != nil {
		return err
	}
	if target == StatusFailed {
		return errs.NewValueIsRequiredError("failure code")
	}

	statusBefore := d.status
	status, err := d.status.Advance(target)
	if err != nil {
		return err
	}

	d.status = status
	if note != "" {
		d.notes = note
	}
	if photo != "" {
		d.photo = photo
	}
	d.updatedAt = now

	actorID := actor.ID()
	return d.appendEvent(&actorID, statusBefore, d.status, note, photo, now)
}

// Fail records a failed delivery attempt: moves the status to Failed,
// appends a failure ledger row with the next attempt number, updates the
// display failure note and appends an audit event.
func (d *Delivery) Fail(actor *account.Account, code FailureCode, details, note, photo string, now time.Time) (*FailureReason, error) {
	if err := d.validateCourierActor(actor, "report delivery failure"); err != nil {
		return nil, err
	}

	statusBefore := d.status
	status, err := d.status.Advance(StatusFailed)
	if err != nil {
		return nil, err
	}

	actorID := actor.ID()
	failure, err := NewFailureReason(kernel.NewUUID(), code, details, &actorID, d.failureCount+1, now)
	if err != nil {
		return nil, err
	}

	d.status = status
	d.failureCount++
	d.pendingFailures = append(d.pendingFailures, failure)
	if details != "" {
		d.failureNote = details
	} else {
		d.failureNote = code.String()
	}
	if note != "" {
		d.notes = note
	}
	if photo != "" {
		d.photo = photo
	}
	d.updatedAt = now

	if err := d.appendEvent(&actorID, statusBefore, d.status, d.failureNote, photo, now); err != nil {
		return nil, err
	}
	return failure, nil
}

// Reschedule moves the delivery to a new date on behalf of the customer,
// forcing the status to Rescheduled. This is the only way out of Failed.
//
// The new date must not lie in the past.
func (d *Delivery) Reschedule(actor *account.Account, newDate time.Time, newWindow string, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.EffectiveRole() != account.RoleCustomer {
		return errs.NewNotAuthorizedError("reschedule delivery", actor.EffectiveRole().String())
	}
	if dateOnly(newDate).Before(dateOnly(now)) {
		return errs.NewValueIsInvalidErrorWithCause(
			"scheduled date",
			fmt.Errorf("%s is in the past", newDate.Format("2006-01-02")),
		)
	}

	statusBefore := d.status
	status, err := d.status.Reschedule()
	if err != nil {
		return err
	}

	note := fmt.Sprintf("rescheduled from %s to %s",
		formatSchedule(d.scheduledDate, d.scheduledWindow),
		formatSchedule(&newDate, newWindow),
	)

	d.status = status
	date := newDate
	d.scheduledDate = &date
	d.scheduledWindow = newWindow
	d.updatedAt = now

	actorID := actor.ID()
	return d.appendEvent(&actorID, statusBefore, d.status, note, "", now)
}

// AddComment appends a comment to the delivery thread with the author's
// role snapshotted. Comments never change the delivery status.
func (d *Delivery) AddComment(actor *account.Account, message, photo string, now time.Time) (*Comment, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	role := actor.EffectiveRole()
	switch role {
	case account.RoleCustomer, account.RoleCourier, account.RoleManager:
	default:
		return nil, errs.NewNotAuthorizedError("comment on delivery", role.String())
	}

	actorID := actor.ID()
	comment, err := NewComment(kernel.NewUUID(), &actorID, role, message, photo, now)
	if err != nil {
		return nil, err
	}

	d.pendingComments = append(d.pendingComments, comment)
	return comment, nil
}

// CanNotifyProgress reports whether informational courier pings are
// currently allowed: the courier must be on an active route.
func (d *Delivery) CanNotifyProgress() bool {
	return d.status.AllowsProgressPing()
}

// EstimatedArrival computes the expected arrival instant.
//
// With a scheduled date, the estimate is that date at the parsed start of
// the scheduled window, falling back to noon when the window is absent or
// unparseable. Without a scheduled date, the estimate is 24 hours after
// the order was created.
func (d *Delivery) EstimatedArrival(orderCreatedAt time.Time) time.Time {
	if d.scheduledDate == nil {
		return orderCreatedAt.Add(24 * time.Hour)
	}

	hour, minute := defaultWindowHour, 0
	if h, m, ok := parseWindowStart(d.scheduledWindow); ok {
		hour, minute = h, m
	}

	sd := *d.scheduledDate
	return time.Date(sd.Year(), sd.Month(), sd.Day(), hour, minute, 0, 0, sd.Location())
}

func (d *Delivery) validateCourierActor(actor *account.Account, operation string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.EffectiveRole() != account.RoleCourier {
		return errs.NewNotAuthorizedError(operation, actor.EffectiveRole().String())
	}
	if d.courierID == nil || !d.courierID.IsEqual(actor.ID()) {
		return errs.NewNotAuthorizedErrorWithCause(operation, actor.EffectiveRole().String(),
			errors.New("actor is not the assigned courier"))
	}
	return nil
}

func (d *Delivery) appendEvent(actorID *kernel.UUID, before, after Status, note, photo string, now time.Time) error {
	event, err := NewEvent(kernel.NewUUID(), actorID, before, after, note, photo, now)
	if err != nil {
		return err
	}
	d.pendingEvents = append(d.pendingEvents, event)
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.orderID = id
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

// actorRef keeps the optional acting account for audit rows; nil means
// a system-initiated operation.
type actorRef struct {
	acc *account.Account
}

func (r *actorRef) id() *kernel.UUID {
	if r == nil || r.acc == nil {
		return nil
	}
	id := r.acc.ID()
	return &id
}

// parseWindowStart extracts the start time from a free-text window such
// as "14:00-16:00" or "9:30 - 11:00". The second return values report
// whether a start time could be parsed.
func parseWindowStart(window string) (hour, minute int, ok bool) {
	start := window
	if idx := strings.Index(window, "-"); idx >= 0 {
		start = window[:idx]
	}
	start = strings.TrimSpace(start)
	if start == "" {
		return 0, 0, false
	}

	parsed, err := time.Parse("15:04", start)
	if err != nil {
		parsed, err = time.Parse("15", start)
	}
	if err != nil {
		return 0, 0, false
	}
	return parsed.Hour(), parsed.Minute(), true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func formatSchedule(date *time.Time, window string) string {
	if date == nil {
		return "unscheduled"
	}
	if window == "" {
		return date.Format("2006-01-02")
	}
	return date.Format("2006-01-02") + " " + window
}
