package ledgertest

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/equb/internal/domain"
)

type CircleRepo struct{ s *Store }

func (s *Store) Circles() *CircleRepo { return &CircleRepo{s} }

func (r *CircleRepo) Create(_ context.Context, circle *domain.Circle) error {
	if err := r.s.lock("circles.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	r.s.data.Circles[circle.ID] = *circle
	return nil
}

func (r *CircleRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Circle, error) {
	if err := r.s.lock("circles.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	c, ok := r.s.data.Circles[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CircleRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Circle, error) {
	return r.GetByID(ctx, id)
}

func (r *CircleRepo) List(_ context.Context, status *domain.CircleStatus) ([]domain.Circle, error) {
	if err := r.s.lock("circles.List"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var circles []domain.Circle
	for _, c := range r.s.data.Circles {
		if status == nil || c.Status == *status {
			circles = append(circles, c)
		}
	}
	slices.SortFunc(circles, func(a, b domain.Circle) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return circles, nil
}

func (r *CircleRepo) Update(_ context.Context, circle *domain.Circle) error {
	if err := r.s.lock("circles.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.Circles[circle.ID]
	if !ok || stored.Version != circle.Version {
		return domain.ErrVersionConflict
	}
	circle.Version++
	r.s.data.Circles[circle.ID] = *circle
	return nil
}

type MembershipRepo struct{ s *Store }

func (s *Store) Memberships() *MembershipRepo { return &MembershipRepo{s} }

func (r *MembershipRepo) Create(_ context.Context, m *domain.Membership) error {
	if err := r.s.lock("memberships.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.Memberships {
		if existing.CircleID == m.CircleID && existing.UserID == m.UserID {
			return domain.ErrDuplicateMember
		}
	}
	r.s.data.Memberships[m.ID] = *m
	return nil
}

func (r *MembershipRepo) Get(_ context.Context, circleID, userID uuid.UUID) (*domain.Membership, error) {
	if err := r.s.lock("memberships.Get"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, m := range r.s.data.Memberships {
		if m.CircleID == circleID && m.UserID == userID {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MembershipRepo) GetByPosition(_ context.Context, circleID uuid.UUID, position int) (*domain.Membership, error) {
	if err := r.s.lock("memberships.GetByPosition"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, m := range r.s.data.Memberships {
		if m.CircleID == circleID && m.Status == domain.MembershipConfirmed &&
			m.PayoutPosition != nil && *m.PayoutPosition == position {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MembershipRepo) UpdateStatus(_ context.Context, m *domain.Membership) error {
	if err := r.s.lock("memberships.UpdateStatus"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.Memberships[m.ID]
	if !ok {
		return nil
	}
	stored.Status, stored.JoinedAt, stored.RemovedAt = m.Status, m.JoinedAt, m.RemovedAt
	r.s.data.Memberships[m.ID] = stored
	return nil
}

func (r *MembershipRepo) SetPayoutPosition(_ context.Context, membershipID uuid.UUID, position int) error {
	if err := r.s.lock("memberships.SetPayoutPosition"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.Memberships[membershipID]
	if !ok {
		return nil
	}
	for id, m := range r.s.data.Memberships {
		if id != membershipID && m.CircleID == stored.CircleID && m.PayoutPosition != nil && *m.PayoutPosition == position {
			return fmt.Errorf("payout position %d already taken", position)
		}
	}
	stored.PayoutPosition = &position
	r.s.data.Memberships[membershipID] = stored
	return nil
}

func (r *MembershipRepo) CountConfirmed(_ context.Context, circleID uuid.UUID) (int, error) {
	if err := r.s.lock("memberships.CountConfirmed"); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()
	var count int
	for _, m := range r.s.data.Memberships {
		if m.CircleID == circleID && m.Status == domain.MembershipConfirmed {
			count++
		}
	}
	return count, nil
}

func (r *MembershipRepo) ListByCircle(_ context.Context, circleID uuid.UUID) ([]domain.Membership, error) {
	if err := r.s.lock("memberships.ListByCircle"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var members []domain.Membership
	for _, m := range r.s.data.Memberships {
		if m.CircleID == circleID {
			members = append(members, m)
		}
	}
	slices.SortFunc(members, func(a, b domain.Membership) int {
		switch {
		case a.PayoutPosition != nil && b.PayoutPosition != nil:
			if c := cmp.Compare(*a.PayoutPosition, *b.PayoutPosition); c != 0 {
				return c
			}
		case a.PayoutPosition != nil:
			return -1
		case b.PayoutPosition != nil:
			return 1
		}
		return a.JoinedAt.Compare(b.JoinedAt)
	})
	return members, nil
}

type ContributionRepo struct{ s *Store }

func (s *Store) Contributions() *ContributionRepo { return &ContributionRepo{s} }

func (r *ContributionRepo) Create(_ context.Context, c *domain.Contribution) error {
	if err := r.s.lock("contributions.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.Contributions {
		if existing.CircleID == c.CircleID && existing.MemberID == c.MemberID &&
			existing.RoundNumber == c.RoundNumber && existing.Status != domain.ContributionRejected {
			return domain.ErrDuplicateSubmission
		}
	}
	r.s.data.Contributions[c.ID] = *c
	return nil
}

func (r *ContributionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Contribution, error) {
	if err := r.s.lock("contributions.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	c, ok := r.s.data.Contributions[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ContributionRepo) FindActive(_ context.Context, circleID, memberID uuid.UUID, round int) (*domain.Contribution, error) {
	if err := r.s.lock("contributions.FindActive"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, c := range r.s.data.Contributions {
		if c.CircleID == circleID && c.MemberID == memberID && c.RoundNumber == round &&
			c.Status != domain.ContributionRejected {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ContributionRepo) UpdateReview(_ context.Context, c *domain.Contribution) error {
	if err := r.s.lock("contributions.UpdateReview"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.Contributions[c.ID]
	if !ok || stored.Status != domain.ContributionPending {
		return domain.ErrNotPending
	}
	stored.Status, stored.ReviewedBy, stored.ReviewedAt, stored.RejectionReason =
		c.Status, c.ReviewedBy, c.ReviewedAt, c.RejectionReason
	r.s.data.Contributions[c.ID] = stored
	return nil
}

func (r *ContributionRepo) ListByCircle(_ context.Context, circleID uuid.UUID, round int) ([]domain.Contribution, error) {
	if err := r.s.lock("contributions.ListByCircle"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var list []domain.Contribution
	for _, c := range r.s.data.Contributions {
		if c.CircleID == circleID && (round == 0 || c.RoundNumber == round) {
			list = append(list, c)
		}
	}
	slices.SortFunc(list, func(a, b domain.Contribution) int {
		if c := cmp.Compare(a.RoundNumber, b.RoundNumber); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return list, nil
}

func (r *ContributionRepo) CountConfirmed(_ context.Context, circleID uuid.UUID, round int) (int, error) {
	if err := r.s.lock("contributions.CountConfirmed"); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()
	var count int
	for _, c := range r.s.data.Contributions {
		if c.CircleID == circleID && c.RoundNumber == round && c.Status == domain.ContributionConfirmed {
			count++
		}
	}
	return count, nil
}

type PayoutRepo struct{ s *Store }

func (s *Store) Payouts() *PayoutRepo { return &PayoutRepo{s} }

func (r *PayoutRepo) Create(_ context.Context, p *domain.Payout) error {
	if err := r.s.lock("payouts.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.Payouts {
		if existing.CircleID == p.CircleID &&
			(existing.RoundNumber == p.RoundNumber || existing.RecipientUserID == p.RecipientUserID) {
			return fmt.Errorf("payout for round %d: %w", p.RoundNumber, domain.ErrVersionConflict)
		}
	}
	r.s.data.Payouts[p.ID] = *p
	return nil
}

func (r *PayoutRepo) GetByRound(_ context.Context, circleID uuid.UUID, round int) (*domain.Payout, error) {
	if err := r.s.lock("payouts.GetByRound"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, p := range r.s.data.Payouts {
		if p.CircleID == circleID && p.RoundNumber == round {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *PayoutRepo) MarkExecuted(_ context.Context, payoutID, executedBy uuid.UUID, executedAt time.Time) error {
	if err := r.s.lock("payouts.MarkExecuted"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	p, ok := r.s.data.Payouts[payoutID]
	if !ok || p.Status != domain.PayoutPending {
		return domain.ErrAlreadyExecuted
	}
	p.Status, p.ExecutedBy, p.ExecutedAt = domain.PayoutExecuted, &executedBy, &executedAt
	r.s.data.Payouts[payoutID] = p
	return nil
}

func (r *PayoutRepo) ListByCircle(_ context.Context, circleID uuid.UUID) ([]domain.Payout, error) {
	if err := r.s.lock("payouts.ListByCircle"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var list []domain.Payout
	for _, p := range r.s.data.Payouts {
		if p.CircleID == circleID {
			list = append(list, p)
		}
	}
	slices.SortFunc(list, func(a, b domain.Payout) int { return cmp.Compare(a.RoundNumber, b.RoundNumber) })
	return list, nil
}

type AuditRepo struct{ s *Store }

func (s *Store) Audit() *AuditRepo { return &AuditRepo{s} }

func (r *AuditRepo) Append(_ context.Context, event *domain.AuditEvent) error {
	if err := r.s.lock("audit.Append"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	r.s.seq++
	event.Seq = r.s.seq
	r.s.data.Events = append(r.s.data.Events, *event)
	return nil
}

func (r *AuditRepo) ListPage(_ context.Context, circleID uuid.UUID, filter domain.AuditFilter, after *domain.AuditCursor, limit int) ([]domain.AuditEvent, error) {
	if err := r.s.lock("audit.ListPage"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	events := slices.Clone(r.s.data.Events)
	slices.SortStableFunc(events, func(a, b domain.AuditEvent) int {
		if c := a.OccurredAt.Compare(b.OccurredAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})

	var page []domain.AuditEvent
	for _, e := range events {
		if len(page) == limit {
			break
		}
		if e.CircleID == nil || *e.CircleID != circleID || !matches(e, filter) {
			continue
		}
		if after != nil {
			if c := e.OccurredAt.Compare(after.OccurredAt); c < 0 || (c == 0 && e.Seq <= after.Seq) {
				continue
			}
		}
		page = append(page, e)
	}
	return page, nil
}

func matches(e domain.AuditEvent, f domain.AuditFilter) bool {
	switch {
	case len(f.ActionTypes) > 0 && !slices.Contains(f.ActionTypes, e.ActionType):
		return false
	case f.EntityType != "" && e.EntityType != f.EntityType:
		return false
	case f.ActorUserID != nil && e.ActorUserID != *f.ActorUserID:
		return false
	case f.From != nil && e.OccurredAt.Before(*f.From):
		return false
	case f.To != nil && !e.OccurredAt.Before(*f.To):
		return false
	}
	return true
}

type IntegrityRepo struct{ s *Store }

func (s *Store) Integrity() *IntegrityRepo { return &IntegrityRepo{s} }

func (r *IntegrityRepo) ListCircleIDs(_ context.Context) ([]uuid.UUID, error) {
	if err := r.s.lock("integrity.ListCircleIDs"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	ids := slices.Collect(maps.Keys(r.s.data.Circles))
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return cmp.Compare(a.String(), b.String()) })
	return ids, nil
}

func (r *IntegrityRepo) LoadLedger(_ context.Context, circleID uuid.UUID) (*domain.LedgerSnapshot, error) {
	if err := r.s.lock("integrity.LoadLedger"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	circle, ok := r.s.data.Circles[circleID]
	if !ok {
		return nil, fmt.Errorf("circle %s: %w", circleID, domain.ErrCircleNotFound)
	}
	snapshot := &domain.LedgerSnapshot{Circle: circle, ConfirmedByRound: make(map[int]decimal.Decimal)}
	for _, m := range r.s.data.Memberships {
		if m.CircleID == circleID && m.Status == domain.MembershipConfirmed {
			snapshot.ConfirmedMemberCount++
		}
	}
	for _, p := range r.s.data.Payouts {
		if p.CircleID == circleID {
			snapshot.Payouts = append(snapshot.Payouts, p)
		}
	}
	slices.SortFunc(snapshot.Payouts, func(a, b domain.Payout) int { return cmp.Compare(a.RoundNumber, b.RoundNumber) })
	for _, c := range r.s.data.Contributions {
		if c.CircleID != circleID || c.Status != domain.ContributionConfirmed {
			continue
		}
		snapshot.ConfirmedByRound[c.RoundNumber] = snapshot.ConfirmedByRound[c.RoundNumber].Add(c.Amount)
		if !c.Amount.Equal(circle.ContributionAmount) {
			snapshot.OffAmountContributions++
		}
	}
	return snapshot, nil
}

func (r *IntegrityRepo) SaveReport(_ context.Context, report *domain.IntegrityReport) error {
	if err := r.s.lock("integrity.SaveReport"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	r.s.data.Reports = append(r.s.data.Reports, *report)
	return nil
}
