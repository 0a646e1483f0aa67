package services

import "errors"

// Validation errors are reported synchronously to the caller and never
// retried. Evaluation errors (price lookup, reputation write) are
// wrapped per-prediction and tallied by the sweep instead of raised.
var (
	ErrInvalidDirection      = errors.New("direction must be Bullish or Bearish")
	ErrInvalidEndDate        = errors.New("end date must be a valid date in the future")
	ErrMissingReasoning      = errors.New("reasoning is required")
	ErrInvalidTargetPrice    = errors.New("target price must be non-negative")
	ErrStockNotFound         = errors.New("stock not found")
	ErrPredictionNotFound    = errors.New("prediction not found")
	ErrPredictionNotEditable = errors.New("evaluated predictions cannot be edited")
	ErrNotPredictionOwner    = errors.New("prediction belongs to another user")
	ErrInvalidVoteType       = errors.New("vote type must be upvote or downvote")

	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// IsValidationError reports whether err belongs to the caller-facing
// validation taxonomy, as opposed to an infrastructure failure.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidDirection,
		ErrInvalidEndDate,
		ErrMissingReasoning,
		ErrInvalidTargetPrice,
		ErrStockNotFound,
		ErrPredictionNotFound,
		ErrPredictionNotEditable,
		ErrNotPredictionOwner,
		ErrInvalidVoteType,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
