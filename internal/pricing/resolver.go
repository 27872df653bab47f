// Package pricing implements the pure pricing and promotion resolution core:
// the ranked-predicate resolver shared by discount rules and pop-up
// targeting, the price calculator, coupon applicability, and currency
// conversion. Everything here is a pure function of its arguments; data
// fetching and mutation live in the surrounding layers.
package pricing

// TargetContext is the concrete targeting context a rule is matched
// against. Empty fields mean the dimension is not part of the current page
// (for example the landing page sets nothing at all).
type TargetContext struct {
	BrandID      string
	ModelID      string
	ServiceID    string
	SubServiceID string
}

// IsEmpty reports whether no targeting dimension is set.
func (c TargetContext) IsEmpty() bool {
	return c.BrandID == "" && c.ModelID == "" && c.ServiceID == "" && c.SubServiceID == ""
}

// Rule is a candidate with optional targeting predicates. An empty predicate
// is a wildcard for that dimension.
type Rule interface {
	RuleActive() bool
	TargetBrandID() string
	TargetModelID() string
	TargetServiceID() string
	TargetSubServiceID() string
}

// Specificity ranks, ascending. A rule's achieved rank is the highest
// dimension it specified and matched, not a count of matched dimensions.
const (
	rankGlobal     = 0
	rankBrand      = 1
	rankModel      = 2
	rankService    = 3
	rankSubService = 4
)

type resolveConfig struct {
	landingFallback bool
}

// ResolveOption configures ResolveBestMatch.
type ResolveOption func(*resolveConfig)

// WithLandingFallback enables the landing-page fallback: when nothing
// matched and the context has no targeting fields at all, the first active
// fully-wildcard candidate is returned. Pop-up display uses this; discount
// resolution does not.
func WithLandingFallback() ResolveOption {
	return func(c *resolveConfig) { c.landingFallback = true }
}

// ResolveBestMatch returns the most specific active candidate matching the
// context. A candidate that specifies any predicate the context fails is
// disqualified outright, regardless of its other predicates. Ties on rank
// keep the first candidate seen, so input order must be deterministic.
// Unknown ids never match; they are not an error.
func ResolveBestMatch[R Rule](ctx TargetContext, candidates []R, opts ...ResolveOption) (R, bool) {
	var cfg resolveConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var best R
	bestRank := -1
	for _, cand := range candidates {
		if !cand.RuleActive() {
			continue
		}
		rank, ok := matchRank(ctx, cand)
		if !ok {
			continue
		}
		if rank > bestRank {
			best = cand
			bestRank = rank
		}
	}
	if bestRank >= 0 {
		return best, true
	}

	if cfg.landingFallback && ctx.IsEmpty() {
		for _, cand := range candidates {
			if cand.RuleActive() && isGlobal(cand) {
				return cand, true
			}
		}
	}

	var zero R
	return zero, false
}

// matchRank walks the predicates in fixed ascending specificity order:
// brand, model, service, sub-service. It returns the achieved rank and
// whether the candidate matched at all.
func matchRank(ctx TargetContext, r Rule) (int, bool) {
	rank := rankGlobal
	if v := r.TargetBrandID(); v != "" {
		if v != ctx.BrandID {
			return 0, false
		}
		rank = rankBrand
	}
	if v := r.TargetModelID(); v != "" {
		if v != ctx.ModelID {
			return 0, false
		}
		rank = rankModel
	}
	if v := r.TargetServiceID(); v != "" {
		if v != ctx.ServiceID {
			return 0, false
		}
		rank = rankService
	}
	if v := r.TargetSubServiceID(); v != "" {
		if v != ctx.SubServiceID {
			return 0, false
		}
		rank = rankSubService
	}
	return rank, true
}

func isGlobal(r Rule) bool {
	return r.TargetBrandID() == "" && r.TargetModelID() == "" &&
		r.TargetServiceID() == "" && r.TargetSubServiceID() == ""
}
