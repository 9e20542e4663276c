package delivery

import (
	"errors"
	"fmt"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

// ErrFailureReasonIsNotConstructed is returned when using an improperly initialized FailureReason.
var ErrFailureReasonIsNotConstructed = errors.New("FailureReason must be created via NewFailureReason constructor")

// FailureCode classifies why a delivery attempt failed.
// The set is closed: free-text detail goes in the FailureReason details
// field, never into new codes.
type FailureCode int

const (
	// FailureCodeUnknown represents an invalid or undefined failure code.
	FailureCodeUnknown FailureCode = iota

	// FailureCodeDamaged indicates the package was damaged in transit.
	FailureCodeDamaged

	// FailureCodeAddressNotFound indicates the courier could not locate the address.
	FailureCodeAddressNotFound

	// FailureCodeRecipientAbsent indicates nobody was present to receive the package.
	FailureCodeRecipientAbsent

	// FailureCodeAccessDenied indicates the courier could not enter the premises.
	FailureCodeAccessDenied

	// FailureCodeRefused indicates the recipient refused the package.
	FailureCodeRefused

	// FailureCodeOther covers everything else; details are expected.
	FailureCodeOther
)

func getFailureCodeStrings() map[FailureCode]string {
	return map[FailureCode]string{
		FailureCodeUnknown:         "unknown",
		FailureCodeDamaged:         "damaged",
		FailureCodeAddressNotFound: "address_not_found",
		FailureCodeRecipientAbsent: "recipient_absent",
		FailureCodeAccessDenied:    "access_denied",
		FailureCodeRefused:         "refused",
		FailureCodeOther:           "other",
	}
}

func getValidFailureCodeStrings() map[FailureCode]string {
	//nolint:exhaustive // FailureCodeUnknown is intentionally excluded as it's invalid
	return map[FailureCode]string{
		FailureCodeDamaged:         "damaged",
		FailureCodeAddressNotFound: "address_not_found",
		FailureCodeRecipientAbsent: "recipient_absent",
		FailureCodeAccessDenied:    "access_denied",
		FailureCodeRefused:         "refused",
		FailureCodeOther:           "other",
	}
}

// Validate checks if the FailureCode value is valid.
func (c FailureCode) Validate() error {
	if _, ok := getValidFailureCodeStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("failure code is invalid", fmt.Errorf("%d is not a valid failure code", c))
	}
	return nil
}

// String returns the wire name of the failure code.
func (c FailureCode) String() string {
	if str, ok := getFailureCodeStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// FailureCodeFromString parses a wire failure code name.
// Unrecognized names map to FailureCodeUnknown.
func FailureCodeFromString(name string) FailureCode {
	for code, str := range getValidFailureCodeStrings() {
		if str == name {
			return code
		}
	}
	return FailureCodeUnknown
}

// FailureReason is one row of a delivery's failure ledger: a classified,
// append-only record of a failed attempt. Attempt numbers are monotonic
// per delivery and never reset, even across reschedules.
type FailureReason struct {
	id            kernel.UUID
	code          FailureCode
	details       string
	reportedByID  *kernel.UUID
	attemptNumber int
	createdAt     time.Time
	guard         guard.ConstructorGuard
}

// NewFailureReason creates a validated failure ledger row.
// attemptNumber must already be resolved by the owning delivery
// (prior failure count + 1).
func NewFailureReason(id kernel.UUID, code FailureCode, details string, reportedByID *kernel.UUID, attemptNumber int, createdAt time.Time) (*FailureReason, error) {
	fr := &FailureReason{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		fr.setID(id),
		fr.setCode(code),
		fr.setAttemptNumber(attemptNumber),
	); err != nil {
		return nil, err
	}

	fr.details = details
	fr.reportedByID = reportedByID
	fr.createdAt = createdAt
	return fr, nil
}

// RestoreFailureReason reconstructs a failure ledger row from persistent storage.
func RestoreFailureReason(id kernel.UUID, code FailureCode, details string, reportedByID *kernel.UUID, attemptNumber int, createdAt time.Time) (*FailureReason, error) {
	return NewFailureReason(id, code, details, reportedByID, attemptNumber, createdAt)
}

// Validate checks if the FailureReason was properly constructed.
func (fr *FailureReason) Validate() error {
	if fr == nil {
		return ErrFailureReasonIsNotConstructed
	}
	return fr.guard.Validate(ErrFailureReasonIsNotConstructed)
}

// ID returns the ledger row's unique identifier.
func (fr *FailureReason) ID() kernel.UUID {
	return fr.id
}

// Code returns the failure classification.
func (fr *FailureReason) Code() FailureCode {
	return fr.code
}

// Details returns the free-text description of the failure.
func (fr *FailureReason) Details() string {
	return fr.details
}

// ReportedByID returns the reporting account, if known.
func (fr *FailureReason) ReportedByID() *kernel.UUID {
	return fr.reportedByID
}

// AttemptNumber returns the 1-based attempt this failure belongs to.
func (fr *FailureReason) AttemptNumber() int {
	return fr.attemptNumber
}

// CreatedAt returns when the failure was recorded.
func (fr *FailureReason) CreatedAt() time.Time {
	return fr.createdAt
}

func (fr *FailureReason) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	fr.id = id
	return nil
}

func (fr *FailureReason) setCode(code FailureCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	fr.code = code
	return nil
}

func (fr *FailureReason) setAttemptNumber(attemptNumber int) error {
	if attemptNumber < 1 {
		return errs.NewValueIsInvalidErrorWithCause("attempt number", fmt.Errorf("%d is not greater than 0", attemptNumber))
	}
	fr.attemptNumber = attemptNumber
	return nil
}
