package domain

import "errors"

// Validation: the caller sent a malformed request.
var (
	ErrInvalidCircle    = errors.New("invalid circle parameters")
	ErrNotAcknowledged  = errors.New("payout execution must be explicitly acknowledged")
	ErrInvalidReason    = errors.New("rejection reason must be at least 5 characters")
	ErrInvalidReference = errors.New("invalid payment reference")
)

// Precondition/state: the caller must re-sync with the ledger.
var (
	ErrCircleNotFound       = errors.New("circle not found")
	ErrContributionNotFound = errors.New("contribution not found")
	ErrPayoutNotFound       = errors.New("payout not found")
	ErrMemberNotFound       = errors.New("member not found")
	ErrCircleNotActive      = errors.New("circle is not active")
	ErrCircleNotDraft       = errors.New("circle is not in draft")
	ErrCircleNotOnHold      = errors.New("circle is not on hold")
	ErrCapacityExceeded     = errors.New("circle has no free payout slots")
	ErrDuplicateMember      = errors.New("user is already a member of the circle")
	ErrIncompleteRoster     = errors.New("confirmed member count does not match total rounds")
	ErrNotMember            = errors.New("user is not a confirmed member of the circle")
	ErrRoundMismatch        = errors.New("round does not match the current round")
	ErrAmountMismatch       = errors.New("amount does not match the contribution amount")
	ErrDuplicateSubmission  = errors.New("contribution already submitted for this round")
	ErrNotPending           = errors.New("contribution is not pending")
	ErrInsufficientFunding  = errors.New("round is not fully funded")
	ErrPayoutNotExecuted    = errors.New("payout for the current round is not executed")
	ErrAlreadyLastRound     = errors.New("current round is the last round")
	ErrNotFinalRound        = errors.New("current round is not the last round")
)

// Conflict: a concurrent request won; re-fetch.
var (
	ErrAlreadyExecuted = errors.New("payout for this round is already executed")
	ErrVersionConflict = errors.New("circle was modified concurrently")
	ErrCheckInProgress = errors.New("integrity check already running")
)

// Safety lock: requires an operator-run integrity check.
var (
	ErrSystemDegraded = errors.New("system is in degraded mode")
	ErrForbidden      = errors.New("actor role is not allowed to perform this operation")
)

var reasons = []struct {
	err    error
	reason string
}{
	{ErrInvalidCircle, "invalid_circle"},
	{ErrNotAcknowledged, "not_acknowledged"},
	{ErrInvalidReason, "invalid_reason"},
	{ErrInvalidReference, "invalid_reference"},
	{ErrCircleNotFound, "circle_not_found"},
	{ErrContributionNotFound, "contribution_not_found"},
	{ErrPayoutNotFound, "payout_not_found"},
	{ErrMemberNotFound, "member_not_found"},
	{ErrCircleNotActive, "circle_not_active"},
	{ErrCircleNotDraft, "circle_not_draft"},
	{ErrCircleNotOnHold, "circle_not_on_hold"},
	{ErrCapacityExceeded, "capacity_exceeded"},
	{ErrDuplicateMember, "duplicate_member"},
	{ErrIncompleteRoster, "incomplete_roster"},
	{ErrNotMember, "not_member"},
	{ErrRoundMismatch, "round_mismatch"},
	{ErrAmountMismatch, "amount_mismatch"},
	{ErrDuplicateSubmission, "duplicate_submission"},
	{ErrNotPending, "not_pending"},
	{ErrInsufficientFunding, "insufficient_funding"},
	{ErrPayoutNotExecuted, "payout_not_executed"},
	{ErrAlreadyLastRound, "already_last_round"},
	{ErrNotFinalRound, "not_final_round"},
	{ErrAlreadyExecuted, "already_executed"},
	{ErrVersionConflict, "version_conflict"},
	{ErrCheckInProgress, "check_in_progress"},
	{ErrSystemDegraded, "system_degraded"},
	{ErrForbidden, "forbidden"},
}

// ReasonStorage labels errors that are not ledger refusals.
const ReasonStorage = "storage"

// Reason is a short label for err, used as a metric label. Unknown errors are ReasonStorage.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ReasonStorage
}

// IsRefusal reports whether err is a business rule refusal rather than an infrastructure failure.
func IsRefusal(err error) bool {
	return Reason(err) != ReasonStorage
}
