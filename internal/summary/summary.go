package summary

import (
	"github.com/daniel-winkler/showdown/internal/entity"
)

// RoundSummary aggregates the numeric votes of a revealed round.
// Sentinel cards like "?" count toward nothing but VoteCount.
type RoundSummary struct {
	VoteCount    int      `json:"voteCount"`
	NumericCount int      `json:"numericCount"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	Average      *float64 `json:"average,omitempty"`
	Consensus    bool     `json:"consensus"`
}

// Summarize computes min, max, and average over the numeric votes of a
// round. Consensus means every vote, sentinel or numeric, carries the
// same value; a single vote is trivially consensus.
func Summarize(round *entity.Round) RoundSummary {
	out := RoundSummary{VoteCount: len(round.Votes)}
	if out.VoteCount == 0 {
		return out
	}

	var (
		sum   float64
		first *entity.CardValue
	)
	out.Consensus = true

	for _, vote := range round.Votes {
		v := vote.Value
		if first == nil {
			first = &v
		} else if !first.Equal(v) {
			out.Consensus = false
		}

		if !v.Numeric {
			continue
		}
		if out.NumericCount == 0 {
			min, max := v.Number, v.Number
			out.Min, out.Max = &min, &max
		} else {
			if v.Number < *out.Min {
				*out.Min = v.Number
			}
			if v.Number > *out.Max {
				*out.Max = v.Number
			}
		}
		sum += v.Number
		out.NumericCount++
	}

	if out.NumericCount > 0 {
		avg := sum / float64(out.NumericCount)
		out.Average = &avg
	}
	return out
}
