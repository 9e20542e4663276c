// Package account models the identities that act on deliveries and the
// closed role enumeration every authorization check dispatches on.
// Accounts are lookup-only here: authentication and profile management
// belong to an external collaborator.
package account
