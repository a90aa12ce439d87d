package management

import (
	"fmt"
	"strings"

	"management-quality/internal/types"
)

// Bound is one edge of a band; Inclusive marks a closed edge
type Bound struct {
	Value     float64
	Inclusive bool
}

// Band is a value range mapped to a score. A nil edge is unbounded.
type Band struct {
	Lower *Bound
	Upper *Bound
	Score int
	Bad   bool
}

// Outcome is the result of scoring a single value
type Outcome struct {
	Score int
	Bad   bool
}

// Contains reports whether v falls inside the band. NaN is never contained.
func (b Band) Contains(v float64) bool {
	if b.Lower != nil {
		if b.Lower.Inclusive && !(v >= b.Lower.Value) {
			return false
		}
		if !b.Lower.Inclusive && !(v > b.Lower.Value) {
			return false
		}
	}
	if b.Upper != nil {
		if b.Upper.Inclusive && !(v <= b.Upper.Value) {
			return false
		}
		if !b.Upper.Inclusive && !(v < b.Upper.Value) {
			return false
		}
	}
	return true
}

func (b Band) String() string {
	var sb strings.Builder
	switch {
	case b.Lower == nil && b.Upper == nil:
		sb.WriteString("any")
	case b.Lower == nil:
		sb.WriteString("x " + upperOp(b.Upper) + fmt.Sprintf(" %g", b.Upper.Value))
	case b.Upper == nil:
		sb.WriteString("x " + lowerOp(b.Lower) + fmt.Sprintf(" %g", b.Lower.Value))
	default:
		sb.WriteString(fmt.Sprintf("%g %s x %s %g", b.Lower.Value, flip(lowerOp(b.Lower)), upperOp(b.Upper), b.Upper.Value))
	}
	sb.WriteString(fmt.Sprintf(" => %d", b.Score))
	return sb.String()
}

func lowerOp(b *Bound) string {
	if b.Inclusive {
		return ">="
	}
	return ">"
}

func upperOp(b *Bound) string {
	if b.Inclusive {
		return "<="
	}
	return "<"
}

func flip(op string) string {
	return strings.NewReplacer(">=", "<=", ">", "<").Replace(op)
}

// RuleSet is an ordered band table; the first matching band wins
type RuleSet struct {
	Metric  types.Metric
	Bands   []Band
	Default Outcome
}

// Score maps a value to its outcome. Values outside every band take the default.
func (r RuleSet) Score(v float64) Outcome {
	for _, band := range r.Bands {
		if band.Contains(v) {
			return Outcome{Score: band.Score, Bad: band.Bad}
		}
	}
	return r.Default
}

// MaxScore is the best score any band can award
func (r RuleSet) MaxScore() int {
	best := r.Default.Score
	for _, band := range r.Bands {
		if band.Score > best {
			best = band.Score
		}
	}
	return best
}

// RuleBook groups the rule sets of one policy
type RuleBook struct {
	Policy       types.RulePolicy
	ROIC         RuleSet
	CurrentRatio RuleSet
	DebtToEquity RuleSet
}

// For returns the rule set scoring metric
func (b RuleBook) For(metric types.Metric) (RuleSet, bool) {
	for _, rs := range []RuleSet{b.ROIC, b.CurrentRatio, b.DebtToEquity} {
		if rs.Metric == metric {
			return rs, true
		}
	}
	return RuleSet{}, false
}

// Describe lists the bands in match order followed by the fallback
func (r RuleSet) Describe() []string {
	lines := make([]string, 0, len(r.Bands)+1)
	for _, band := range r.Bands {
		lines = append(lines, band.String())
	}
	return append(lines, fmt.Sprintf("otherwise => %d", r.Default.Score))
}

func above(v float64) *Bound   { return &Bound{Value: v} }
func atLeast(v float64) *Bound { return &Bound{Value: v, Inclusive: true} }
func below(v float64) *Bound   { return &Bound{Value: v} }

// CanonicalRules returns the graduated rule tables.
// The 0.05-0.08 and <0.06 ROIC bands overlap; order decides.
func CanonicalRules() RuleBook {
	return RuleBook{
		Policy: types.PolicyCanonical,
		ROIC: RuleSet{
			Metric: types.MetricROIC,
			Bands: []Band{
				{Lower: above(0.07), Upper: below(0.10), Score: 0},
				{Lower: above(0.05), Upper: below(0.08), Score: -1, Bad: true},
				{Upper: below(0.06), Score: -3, Bad: true},
				{Lower: atLeast(0.10), Upper: below(0.20), Score: 1},
				{Lower: atLeast(0.20), Score: 2},
			},
			Default: Outcome{Score: 1},
		},
		CurrentRatio: currentRatioRules(-3),
		DebtToEquity: debtToEquityRules(-3),
	}
}

// LegacyRules returns the two-band tables with the harsher penalties
func LegacyRules() RuleBook {
	return RuleBook{
		Policy: types.PolicyLegacy,
		ROIC: RuleSet{
			Metric: types.MetricROIC,
			Bands: []Band{
				{Upper: below(0.10), Score: -3, Bad: true},
				{Lower: atLeast(0.20), Score: 2},
			},
			Default: Outcome{Score: 1},
		},
		CurrentRatio: currentRatioRules(-5),
		DebtToEquity: debtToEquityRules(-10),
	}
}

func currentRatioRules(penalty int) RuleSet {
	return RuleSet{
		Metric: types.MetricCurrentRatio,
		Bands: []Band{
			{Upper: below(1), Score: penalty, Bad: true},
			{Lower: atLeast(1), Upper: below(2), Score: 1},
			{Lower: atLeast(2), Score: 2},
		},
		Default: Outcome{Score: 1},
	}
}

func debtToEquityRules(penalty int) RuleSet {
	return RuleSet{
		Metric: types.MetricDebtToEquity,
		Bands: []Band{
			{Upper: below(0.5), Score: 1},
			{Lower: atLeast(0.5), Score: penalty, Bad: true},
		},
		Default: Outcome{Score: penalty, Bad: true},
	}
}

// RulesFor resolves a policy name to its rule book
func RulesFor(policy types.RulePolicy) (RuleBook, error) {
	switch types.RulePolicy(strings.ToUpper(string(policy))) {
	case types.PolicyCanonical, "":
		return CanonicalRules(), nil
	case types.PolicyLegacy:
		return LegacyRules(), nil
	default:
		return RuleBook{}, fmt.Errorf("unknown rule policy: %s (valid options: CANONICAL, LEGACY)", policy)
	}
}
