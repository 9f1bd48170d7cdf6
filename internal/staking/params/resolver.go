package params

import (
	"fmt"
	"math"

	"github.com/stakelens/stakescan-backend/internal/staking/model"
	"go.uber.org/zap"
)

// StateReader exposes per-phase runtime state to resolution: cumulative
// active stake for cap-exhaustion checks and completion so that finished
// phases stop attracting new attribution.
type StateReader interface {
	ActiveStakeSat(phase uint32) uint64
	Completed(phase uint32) bool
}

// ReindexTarget requests an explicit single-phase replay. Height overrides of
// zero fall back to the phase's static boundaries.
type ReindexTarget struct {
	Phase         uint32
	StartOverride uint64
	EndOverride   uint64
}

// Resolver maps block heights to the applicable phase parameters. The static
// table is cached for the process lifetime; per-height lookups are memoized
// per scan through Session.
type Resolver struct {
	phases  []model.PhaseParameters
	reindex *ReindexTarget
	logger  *zap.Logger
}

// NewResolver builds a resolver from the loaded table. A reindex target
// naming an undefined phase is an error: startup must fail rather than replay
// the wrong range.
func NewResolver(table *Table, reindex *ReindexTarget, logger *zap.Logger) (*Resolver, error) {
	if reindex != nil {
		if _, ok := table.Phase(reindex.Phase); !ok {
			return nil, fmt.Errorf("reindex phase %d not defined in phase table", reindex.Phase)
		}
	}
	return &Resolver{
		phases:  table.Phases,
		reindex: reindex,
		logger:  logger,
	}, nil
}

// Reindexing reports whether the resolver operates in single-phase replay mode.
func (r *Resolver) Reindexing() bool {
	return r.reindex != nil
}

// ReindexRange returns the effective height range of the reindex target:
// explicit overrides when given, else the phase's static boundaries.
func (r *Resolver) ReindexRange() (start, end uint64) {
	target, _ := r.Phase(r.reindex.Phase)
	start = target.ActivationHeight
	if r.reindex.StartOverride > 0 {
		start = r.reindex.StartOverride
	}
	end = r.staticEnd(target)
	if r.reindex.EndOverride > 0 {
		end = r.reindex.EndOverride
	}
	return start, end
}

// Phases returns the static phase table.
func (r *Resolver) Phases() []model.PhaseParameters {
	return r.phases
}

// Phase returns the parameters for a phase number.
func (r *Resolver) Phase(number uint32) (model.PhaseParameters, bool) {
	for _, p := range r.phases {
		if p.Phase == number {
			return p, true
		}
	}
	return model.PhaseParameters{}, false
}

// Session creates a resolution session memoizing per-height lookups. A
// session is scoped to one batch of heights: the memo stays bounded by the
// batch size and completion and exhaustion snapshots refresh between batches.
func (r *Resolver) Session(states StateReader) *Session {
	return &Session{
		resolver: r,
		states:   states,
		memo:     make(map[uint64]*model.PhaseParameters),
	}
}

// Session memoizes per-height phase resolution for one batch.
type Session struct {
	resolver *Resolver
	states   StateReader
	memo     map[uint64]*model.PhaseParameters
}

// Resolve returns the phase parameters applicable at height, or nil when no
// phase covers it or the only candidate is completed or cap-exhausted. A nil
// result is not an error; the caller logs and moves on.
func (s *Session) Resolve(height uint64) *model.PhaseParameters {
	if p, ok := s.memo[height]; ok {
		return p
	}
	p := s.resolver.resolve(height, s.states)
	s.memo[height] = p
	return p
}

func (r *Resolver) resolve(height uint64, states StateReader) *model.PhaseParameters {
	if r.reindex != nil {
		return r.resolveReindex(height)
	}

	for i := range r.phases {
		p := r.phases[i]
		start, end := r.continuousRange(i)
		if height < start || height > end {
			continue
		}
		if states != nil && states.Completed(p.Phase) {
			r.logger.Debug("phase completed, no parameters for height",
				zap.Uint32("phase", p.Phase),
				zap.Uint64("height", height))
			return nil
		}
		if p.HasStakingCap() && states != nil && states.ActiveStakeSat(p.Phase) >= p.StakingCapSat {
			r.logger.Debug("phase cap exhausted, no parameters for height",
				zap.Uint32("phase", p.Phase),
				zap.Uint64("height", height))
			return nil
		}
		return &p
	}

	r.logger.Debug("no phase covers height", zap.Uint64("height", height))
	return nil
}

// resolveReindex only ever yields the targeted phase, bounded by the
// effective replay range. Cap exhaustion and completion are ignored: a replay
// revisits heights whose stake is already accounted for.
func (r *Resolver) resolveReindex(height uint64) *model.PhaseParameters {
	start, end := r.ReindexRange()
	if height < start || height > end {
		return nil
	}
	target, _ := r.Phase(r.reindex.Phase)
	return &target
}

// continuousRange computes the nominal height range of the i-th phase.
// Ranges are contiguous: a middle phase ends one height before the next
// phase's activation; the first phase is bounded by its own timeout height
// and the last by its own cap height.
func (r *Resolver) continuousRange(i int) (start, end uint64) {
	p := r.phases[i]
	start = p.ActivationHeight

	last := len(r.phases) - 1
	switch {
	case i == 0 && p.HasTimeout():
		end = p.TimeoutHeight
	case i == last:
		if p.HasCapHeight() {
			end = p.CapHeight
		} else {
			end = math.MaxUint64
		}
	default:
		end = r.phases[i+1].ActivationHeight - 1
	}
	return start, end
}

func (r *Resolver) staticEnd(p model.PhaseParameters) uint64 {
	for i := range r.phases {
		if r.phases[i].Phase == p.Phase {
			_, end := r.continuousRange(i)
			return end
		}
	}
	return math.MaxUint64
}
