package services

import "errors"

// Common errors used by the services and by the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrValidationFailed = errors.New("validation failed")

	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("operation not allowed for the current user")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrResetTokenRequired = errors.New("reset token is required")

	ErrTournamentNameRequired            = errors.New("tournament name is required")
	ErrTournamentInvalidCourts           = errors.New("courts count cannot be negative")
	ErrTournamentInvalidDuration         = errors.New("match duration cannot be negative")
	ErrTournamentInvalidTime             = errors.New("times must use the HH:MM format")
	ErrTournamentInvalidTimeRange        = errors.New("end time must be after start time")
	ErrTournamentInvalidDate             = errors.New("dates must use the YYYY-MM-DD format")
	ErrTournamentInvalidDateRange        = errors.New("end date cannot be before start date")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
	ErrTournamentFinished                = errors.New("tournament is finished")

	ErrTeamPlayersRequired  = errors.New("a team needs one or two player names")
	ErrInvalidGroupsCount   = errors.New("groups count must be positive")
	ErrInvalidTeamsPerGroup = errors.New("teams per group must be positive")

	ErrScheduleNotConfigured = errors.New("tournament schedule is not configured")
	ErrMatchNotPending       = errors.New("only pending matches can be started")
	ErrResultEditNotAllowed  = errors.New("results can only be edited while the tournament is ongoing")

	ErrAccountEmailRequired   = errors.New("account email is required")
	ErrAccountNameRequired    = errors.New("account name is required")
	ErrPaymentAccountRequired = errors.New("payment account is required")
	ErrPaymentInvalidAmount   = errors.New("payment amount must be positive")
	ErrPaymentInvalidDate     = errors.New("payment date must use the YYYY-MM-DD format")
	ErrPaymentReceiptKey      = errors.New("receipt does not belong to the payment account")
	ErrTicketReplyRequired    = errors.New("reply body is required")
	ErrTicketClosed           = errors.New("ticket is already closed")
)
