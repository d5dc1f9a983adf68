package integrityservice

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/metrics"
	"github.com/GlebRadaev/equb/internal/service/auditservice"
)

//go:generate mockgen -source=verifier.go -destination=mock_verifier.go -package=integrityservice

type Repo interface {
	ListCircleIDs(ctx context.Context) ([]uuid.UUID, error)
	LoadLedger(ctx context.Context, circleID uuid.UUID) (*domain.LedgerSnapshot, error)
	SaveReport(ctx context.Context, report *domain.IntegrityReport) error
}

// Verifier recomputes every circle's ledger invariants and owns the degraded flag.
type Verifier struct {
	repo    Repo
	auditor auditservice.Appender
	state   *State
	metrics *metrics.Metrics
	workers int
	running sync.Mutex
	now     func() time.Time
}

func NewVerifier(repo Repo, auditor auditservice.Appender, state *State, m *metrics.Metrics, workers int) *Verifier {
	if workers < 1 {
		workers = 1
	}
	return &Verifier{
		repo:    repo,
		auditor: auditor,
		state:   state,
		metrics: m,
		workers: workers,
		now:     time.Now,
	}
}

// RunCheck scans all circles and replaces the process integrity state with the result.
// Only one check runs at a time; a concurrent caller gets ErrCheckInProgress.
func (v *Verifier) RunCheck(ctx context.Context, actor domain.Actor) (*domain.IntegrityReport, error) {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleSystem {
		return nil, domain.ErrForbidden
	}
	if !v.running.TryLock() {
		return nil, domain.ErrCheckInProgress
	}
	defer v.running.Unlock()

	started := v.now()
	violations, err := v.scan(ctx)
	if err != nil {
		zap.L().Error("integrity scan failed", zap.Error(err))
		return nil, err
	}

	report := &domain.IntegrityReport{
		ID:         uuid.New(),
		IsDegraded: len(violations) > 0,
		Violations: violations,
		Timestamp:  v.now().UTC(),
		CheckedBy:  actor.UserID,
	}

	// A degraded result locks the ledger before anything else can fail.
	if report.IsDegraded {
		v.state.apply(report)
	}
	if err := v.repo.SaveReport(ctx, report); err != nil {
		return nil, err
	}
	event := auditservice.NewEvent(actor, domain.ActionIntegrityCheckRun, domain.EntitySystem, report.ID, nil, map[string]any{
		"isDegraded":     report.IsDegraded,
		"violationCount": len(report.Violations),
	})
	if err := v.auditor.Append(ctx, event); err != nil {
		return nil, err
	}
	if !report.IsDegraded {
		v.state.apply(report)
	}

	v.metrics.ObserveIntegrityCheck(len(violations), report.IsDegraded, v.now().Sub(started))
	if report.IsDegraded {
		zap.L().Warn("ledger integrity violated, entering degraded mode", zap.Strings("violations", violations))
	} else {
		zap.L().Info("ledger integrity check passed")
	}
	return report, nil
}

func (v *Verifier) State() domain.IntegrityState {
	return v.state.Snapshot()
}

func (v *Verifier) scan(ctx context.Context) ([]string, error) {
	ids, err := v.repo.ListCircleIDs(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu         sync.Mutex
		violations []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for _, id := range ids {
		g.Go(func() error {
			snapshot, err := v.repo.LoadLedger(gctx, id)
			if err != nil {
				return fmt.Errorf("circle %s: %w", id, err)
			}
			found := CheckLedger(snapshot)
			if len(found) == 0 {
				return nil
			}
			mu.Lock()
			violations = append(violations, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.Sort(violations)
	return violations, nil
}
