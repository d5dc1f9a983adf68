package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CircleStatus string

const (
	CircleDraft      CircleStatus = "DRAFT"
	CircleActive     CircleStatus = "ACTIVE"
	CircleOnHold     CircleStatus = "ON_HOLD"
	CircleCompleted  CircleStatus = "COMPLETED"
	CircleTerminated CircleStatus = "TERMINATED"
)

// Closed reports whether the circle reached a terminal status.
func (s CircleStatus) Closed() bool {
	return s == CircleCompleted || s == CircleTerminated
}

type PayoutOrderType string

const (
	PayoutOrderFixed  PayoutOrderType = "FIXED"
	PayoutOrderRandom PayoutOrderType = "RANDOM"
)

type MembershipStatus string

const (
	MembershipPending   MembershipStatus = "PENDING"
	MembershipConfirmed MembershipStatus = "CONFIRMED"
	MembershipRemoved   MembershipStatus = "REMOVED"
)

type MembershipRole string

const (
	MembershipMember    MembershipRole = "MEMBER"
	MembershipCollector MembershipRole = "COLLECTOR"
)

type ContributionStatus string

const (
	ContributionPending   ContributionStatus = "PENDING"
	ContributionConfirmed ContributionStatus = "CONFIRMED"
	ContributionRejected  ContributionStatus = "REJECTED"
)

type PayoutStatus string

const (
	PayoutPending  PayoutStatus = "PENDING"
	PayoutExecuted PayoutStatus = "EXECUTED"
)

type Circle struct {
	ID                 uuid.UUID       `db:"id"`
	Name               string          `db:"name"`
	ContributionAmount decimal.Decimal `db:"contribution_amount"`
	Currency           string          `db:"currency"`
	CycleLengthDays    int             `db:"cycle_length_days"`
	TotalRounds        int             `db:"total_rounds"`
	CurrentRound       int             `db:"current_round"`
	PayoutOrderType    PayoutOrderType `db:"payout_order_type"`
	Status             CircleStatus    `db:"status"`
	CreatedByUserID    uuid.UUID       `db:"created_by_user_id"`
	Version            int             `db:"version"`
	CreatedAt          time.Time       `db:"created_at"`
	ActivatedAt        *time.Time      `db:"activated_at"`
}

// PotAmount is the fixed amount paid out each round.
func (c *Circle) PotAmount(memberCount int) decimal.Decimal {
	return c.ContributionAmount.Mul(decimal.NewFromInt(int64(memberCount)))
}

// ScheduledDate is the day round is due: one cycle after activation per round.
func (c *Circle) ScheduledDate(round int) time.Time {
	start := c.CreatedAt
	if c.ActivatedAt != nil {
		start = *c.ActivatedAt
	}
	return start.AddDate(0, 0, c.CycleLengthDays*round)
}

type Membership struct {
	ID             uuid.UUID        `db:"id"`
	CircleID       uuid.UUID        `db:"circle_id"`
	UserID         uuid.UUID        `db:"user_id"`
	Role           MembershipRole   `db:"role"`
	Status         MembershipStatus `db:"status"`
	PayoutPosition *int             `db:"payout_position"`
	JoinedAt       time.Time        `db:"joined_at"`
	RemovedAt      *time.Time       `db:"removed_at"`
}

type Contribution struct {
	ID              uuid.UUID          `db:"id"`
	CircleID        uuid.UUID          `db:"circle_id"`
	MemberID        uuid.UUID          `db:"member_id"`
	RoundNumber     int                `db:"round_number"`
	Amount          decimal.Decimal    `db:"amount"`
	Reference       string             `db:"reference"`
	Status          ContributionStatus `db:"status"`
	RejectionReason string             `db:"rejection_reason"`
	ReviewedBy      *uuid.UUID         `db:"reviewed_by"`
	ReviewedAt      *time.Time         `db:"reviewed_at"`
	CreatedAt       time.Time          `db:"created_at"`
}

type Payout struct {
	ID              uuid.UUID       `db:"id"`
	CircleID        uuid.UUID       `db:"circle_id"`
	RecipientUserID uuid.UUID       `db:"recipient_user_id"`
	RoundNumber     int             `db:"round_number"`
	Amount          decimal.Decimal `db:"amount"`
	Status          PayoutStatus    `db:"status"`
	ScheduledDate   time.Time       `db:"scheduled_date"`
	ExecutedAt      *time.Time      `db:"executed_at"`
	ExecutedBy      *uuid.UUID      `db:"executed_by"`
}

type EligibilityStatus string

const (
	EligibilityReady   EligibilityStatus = "READY"
	EligibilityWarning EligibilityStatus = "WARNING"
	EligibilityBlocked EligibilityStatus = "BLOCKED"
)

type EligibilitySummary struct {
	Round          int
	ExpectedAmount decimal.Decimal
	MemberCount    int
	ConfirmedCount int
	NextRecipient  *uuid.UUID
}

// Eligibility is a point-in-time view of whether the current round can be paid out.
type Eligibility struct {
	CanExecute bool
	Status     EligibilityStatus
	Reasons    []string
	Summary    EligibilitySummary
}

type AuditEvent struct {
	ID          uuid.UUID       `db:"id"`
	Seq         int64           `db:"seq"`
	OccurredAt  time.Time       `db:"occurred_at"`
	ActorUserID uuid.UUID       `db:"actor_user_id"`
	ActorRole   Role            `db:"actor_role"`
	ActionType  string          `db:"action_type"`
	EntityType  string          `db:"entity_type"`
	EntityID    uuid.UUID       `db:"entity_id"`
	CircleID    *uuid.UUID      `db:"circle_id"`
	Payload     json.RawMessage `db:"payload"`
}

// AuditFilter narrows a circle timeline. Zero values match everything.
type AuditFilter struct {
	ActionTypes []string
	EntityType  string
	ActorUserID *uuid.UUID
	From        *time.Time
	To          *time.Time
	Limit       int
}

// AuditCursor points just past the last event of a page.
type AuditCursor struct {
	OccurredAt time.Time
	Seq        int64
}

type IntegrityReport struct {
	ID         uuid.UUID `db:"id"`
	IsDegraded bool      `db:"is_degraded"`
	Violations []string  `db:"violations"`
	Timestamp  time.Time `db:"checked_at"`
	CheckedBy  uuid.UUID `db:"checked_by"`
}

type IntegrityState struct {
	IsDegraded         bool
	LastCheckTimestamp *time.Time
	Violations         []string
}

// LedgerSnapshot is everything the integrity verifier needs about one circle.
type LedgerSnapshot struct {
	Circle                 Circle
	ConfirmedMemberCount   int
	Payouts                []Payout
	ConfirmedByRound       map[int]decimal.Decimal
	OffAmountContributions int
}
