// Package errs provides the standardized error types used across the
// delivery service for validation, lookup and authorization failures.
//
// The package covers the common failure scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is present but invalid
//   - ValueIsOutOfRangeError: a numeric value falls outside its bounds
//   - ObjectNotFoundError: a referenced object does not exist
//   - VersionIsInvalidError: an update raced a concurrent writer
//   - NotAuthorizedError: the acting account may not perform an operation
//
// Each error type follows the same pattern: a sentinel error variable
// (e.g. ErrValueIsRequired), a struct carrying the details, constructor
// functions with and without a cause, an Error() method for formatting
// and an Unwrap() method so callers can classify errors with errors.Is.
package errs
