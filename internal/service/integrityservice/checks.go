package integrityservice

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/equb/internal/domain"
)

// CheckLedger returns every invariant violation found in one circle's ledger.
func CheckLedger(snapshot *domain.LedgerSnapshot) []string {
	var (
		circle     = snapshot.Circle
		violations []string
		executed   int
		paidTotal  = decimal.Zero
		rounds     = make(map[int]int)
		recipients = make(map[string]int)
	)
	report := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf("circle %s: ", circle.ID)+fmt.Sprintf(format, args...))
	}

	if snapshot.ConfirmedMemberCount > circle.TotalRounds {
		report("%d confirmed members exceed %d rounds", snapshot.ConfirmedMemberCount, circle.TotalRounds)
	}
	switch {
	case circle.Status == domain.CircleDraft && circle.CurrentRound != 0:
		report("draft circle is at round %d", circle.CurrentRound)
	case circle.Status != domain.CircleDraft && (circle.CurrentRound < 1 || circle.CurrentRound > circle.TotalRounds+1):
		report("current round %d outside 1..%d", circle.CurrentRound, circle.TotalRounds+1)
	}
	if snapshot.OffAmountContributions > 0 {
		report("%d confirmed contributions differ from the contribution amount %s",
			snapshot.OffAmountContributions, circle.ContributionAmount)
	}

	pot := circle.PotAmount(snapshot.ConfirmedMemberCount)
	for _, p := range snapshot.Payouts {
		if p.Status != domain.PayoutExecuted {
			continue
		}
		executed++
		paidTotal = paidTotal.Add(p.Amount)
		rounds[p.RoundNumber]++
		recipients[p.RecipientUserID.String()]++

		funded, ok := snapshot.ConfirmedByRound[p.RoundNumber]
		if !ok {
			funded = decimal.Zero
		}
		if !funded.Equal(p.Amount) {
			report("round %d payout %s does not match confirmed contributions %s", p.RoundNumber, p.Amount, funded)
		}
		if !p.Amount.Equal(pot) {
			report("round %d payout %s does not match pot %s", p.RoundNumber, p.Amount, pot)
		}
	}

	if executed > circle.TotalRounds {
		report("%d executed payouts exceed %d rounds", executed, circle.TotalRounds)
	}
	for _, round := range sortedKeys(rounds) {
		if rounds[round] > 1 {
			report("round %d has %d executed payouts", round, rounds[round])
		}
	}
	for _, recipient := range sortedKeys(recipients) {
		if recipients[recipient] > 1 {
			report("recipient %s was paid %d times", recipient, recipients[recipient])
		}
	}
	if expected := pot.Mul(decimal.NewFromInt(int64(executed))); !paidTotal.Equal(expected) {
		report("executed payouts total %s, expected %s", paidTotal, expected)
	}

	return violations
}

func sortedKeys[K int | string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
