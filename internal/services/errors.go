// Package services defines the business logic for identity resolution, the
// query pipeline, feedback, FAQ administration, and ERP execution. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrEmptyPrompt is returned when a question contains no text after
	// trimming.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrTooLong is returned when a question exceeds the maximum configured
	// length limit.
	ErrTooLong = errors.New("prompt too long")

	// ErrQueryNotFound indicates that the requested query record does not
	// exist or is not accessible to the current user.
	ErrQueryNotFound = errors.New("query not found")

	// ErrQueryNotTerminal is returned when an operation requires a resolved
	// query (feedback, escalation) but the record is still pending.
	ErrQueryNotTerminal = errors.New("query is not resolved yet")

	// ErrInvalidRating is returned when a feedback rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrForbiddenFeedback is returned when a user attempts to leave feedback
	// on a query they do not own.
	ErrForbiddenFeedback = errors.New("cannot leave feedback on this query")

	// ErrSessionNotFound indicates that no active session matches the given
	// token for the current user.
	ErrSessionNotFound = errors.New("session not found")

	// ErrIntegrationNotFound indicates that no active ERP integration matches
	// the requested id or module.
	ErrIntegrationNotFound = errors.New("integration not found")

	// ErrForbiddenIntegration is returned when the caller's role is outside
	// an integration's access list.
	ErrForbiddenIntegration = errors.New("role not permitted for this integration")

	// ErrInvalidIntegration is returned when an integration descriptor fails
	// validation (missing module, name, or endpoint).
	ErrInvalidIntegration = errors.New("invalid integration descriptor")

	// ErrInvalidFAQ is returned when an FAQ entry fails validation (missing
	// question/answer or unknown department).
	ErrInvalidFAQ = errors.New("invalid faq entry")

	// ErrFAQNotFound indicates that the requested FAQ entry does not exist.
	ErrFAQNotFound = errors.New("faq not found")

	// ErrInvalidDepartment is returned when a department value is outside the
	// recognized set.
	ErrInvalidDepartment = errors.New("unknown department")
)
