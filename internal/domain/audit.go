package domain

// Audit action types.
const (
	ActionEqubCreated           = "EQUB_CREATED"
	ActionEqubActivated         = "EQUB_ACTIVATED"
	ActionEqubOnHold            = "EQUB_ON_HOLD"
	ActionEqubResumed           = "EQUB_RESUMED"
	ActionEqubTerminated        = "EQUB_TERMINATED"
	ActionEqubCompleted         = "EQUB_COMPLETED"
	ActionMemberJoinRequested   = "MEMBER_JOIN_REQUESTED"
	ActionMemberAdded           = "MEMBER_ADDED"
	ActionMemberRemoved         = "MEMBER_REMOVED"
	ActionContributionSubmitted = "CONTRIBUTION_SUBMITTED"
	ActionContributionConfirmed = "CONTRIBUTION_CONFIRMED"
	ActionContributionRejected  = "CONTRIBUTION_REJECTED"
	ActionPayoutExecuted        = "PAYOUT_EXECUTED"
	ActionRoundAdvanced         = "ROUND_ADVANCED"
	ActionIntegrityCheckRun     = "INTEGRITY_CHECK_RUN"
)

// Audit entity types.
const (
	EntityCircle       = "CIRCLE"
	EntityMembership   = "MEMBERSHIP"
	EntityContribution = "CONTRIBUTION"
	EntityPayout       = "PAYOUT"
	EntitySystem       = "SYSTEM"
)
