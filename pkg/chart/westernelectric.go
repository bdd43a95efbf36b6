package chart

import "sort"

// Rule is a Western Electric run rule: a point is flagged when more than M of the N consecutive
// means of a window lie beyond Sigmas on the same side of the center line.  One sigma is a third
// of the distance between the center line and the X̄ control limits.
//
// The comparison is strictly greater than M.  With M=2 of N=3 and M=4 of N=5 every point of the
// window has to be beyond the line.
type Rule struct {
	Name   string
	M      int
	N      int
	Sigmas float64
}

var (
	TwoOfThreeBeyondTwoSigma   = Rule{Name: "Two Of Three Consecutive Outside Two Sigma Limits", M: 2, N: 3, Sigmas: 2}
	FourOfFiveBeyondOneSigma   = Rule{Name: "Four Of Five Consecutive Outside One Sigma Limits", M: 4, N: 5, Sigmas: 1}
	EightConsecutiveBeyondMean = Rule{Name: "Eight Consecutive Above Or Below Mean", M: 7, N: 8, Sigmas: 0}
)

// WesternElectricRules returns the rules evaluated by variable charts, in reporting order
func WesternElectricRules() []Rule {
	return []Rule{TwoOfThreeBeyondTwoSigma, FourOfFiveBeyondOneSigma, EightConsecutiveBeyondMean}
}

// Violation holds the sorted indices of all samples flagged by a rule
type Violation struct {
	Rule    Rule
	Indices []int
}

// EvaluateWesternElectric applies each rule to the sequence of sample means and returns a
// violation for every rule that flagged at least one sample.  a2r is the distance from center to
// the X̄ control limits.
func EvaluateWesternElectric(means []float64, center float64, a2r float64, rules ...Rule) []Violation {
	var out []Violation
	for _, rule := range rules {
		if indices := rule.Violators(means, center, a2r); len(indices) > 0 {
			out = append(out, Violation{Rule: rule, Indices: indices})
		}
	}
	return out
}

// Violators slides a window of N means over the sequence and, for each side of the center line
// independently, flags the points beyond the rule's line when there are more than M of them.
// Indices are record positions, sorted, without duplicates.
func (r Rule) Violators(means []float64, center float64, a2r float64) []int {
	if r.N <= 0 {
		return nil
	}
	upper := center + a2r*r.Sigmas/3.0
	lower := center - a2r*r.Sigmas/3.0

	flagged := make(map[int]struct{})
	for end := r.N; end <= len(means); end++ {
		start := end - r.N
		window := means[start:end]
		for _, beyond := range []func(float64) bool{
			func(v float64) bool { return v > upper },
			func(v float64) bool { return v < lower },
		} {
			local := outOfTolerance(window, beyond)
			if len(local) > r.M {
				for _, j := range local {
					flagged[j+start] = struct{}{}
				}
			}
		}
	}

	out := make([]int, 0, len(flagged))
	for i := range flagged {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func outOfTolerance(window []float64, beyond func(float64) bool) []int {
	var out []int
	for i, v := range window {
		if beyond(v) {
			out = append(out, i)
		}
	}
	return out
}
