package ledgertest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/equb/internal/domain"
)

// SeedTime is the activation time of seeded circles.
var SeedTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// ActiveCircle stores an ACTIVE circle in round 1 with one confirmed member per
// user, paid out in the given order, and the pending payout of round 1.
func (s *Store) ActiveCircle(amount decimal.Decimal, users ...uuid.UUID) domain.Circle {
	activated := SeedTime
	circle := domain.Circle{
		ID:                 uuid.New(),
		Name:               "Seeded equb",
		ContributionAmount: amount,
		Currency:           "ETB",
		CycleLengthDays:    30,
		TotalRounds:        len(users),
		CurrentRound:       1,
		PayoutOrderType:    domain.PayoutOrderFixed,
		Status:             domain.CircleActive,
		Version:            1,
		CreatedAt:          activated.Add(-time.Hour),
		ActivatedAt:        &activated,
	}
	s.Tamper(func(d *Data) {
		d.Circles[circle.ID] = circle
		for i, user := range users {
			position := i + 1
			m := domain.Membership{
				ID:             uuid.New(),
				CircleID:       circle.ID,
				UserID:         user,
				Role:           domain.MembershipMember,
				Status:         domain.MembershipConfirmed,
				PayoutPosition: &position,
				JoinedAt:       activated.Add(time.Duration(i-len(users)) * time.Minute),
			}
			d.Memberships[m.ID] = m
		}
		if len(users) > 0 {
			p := domain.Payout{
				ID:              uuid.New(),
				CircleID:        circle.ID,
				RecipientUserID: users[0],
				RoundNumber:     1,
				Amount:          circle.PotAmount(len(users)),
				Status:          domain.PayoutPending,
				ScheduledDate:   circle.ScheduledDate(1),
			}
			d.Payouts[p.ID] = p
		}
	})
	return circle
}
