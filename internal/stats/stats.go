// Package stats computes the summary shown on a journal's dashboard.
package stats

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/tradejournal/tradejournal-server/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Summarize aggregates trades. Sums are kept exact and only rounded to two
// decimals on the way out. The result always has the same field set.
func Summarize(trades []model.Trade) model.Summary {
	if len(trades) == 0 {
		return model.Summary{}
	}

	var (
		total     = decimal.Zero
		riskSum   = decimal.Zero
		riskCount int64
		wins      int
		losses    int
	)
	for _, t := range trades {
		if finite(t.Result) {
			total = total.Add(decimal.NewFromFloat(*t.Result))
		}
		if t.Status == nil {
			continue
		}
		switch *t.Status {
		case model.StatusTP:
			wins++
			if finite(t.Risk) {
				riskSum = riskSum.Add(decimal.NewFromFloat(*t.Risk))
				riskCount++
			}
		case model.StatusSL:
			losses++
		}
	}

	n := decimal.NewFromInt(int64(len(trades)))
	s := model.Summary{
		TotalTrades:   len(trades),
		TotalPnL:      round(total),
		AvgPnL:        round(total.Div(n)),
		WinningTrades: wins,
		LosingTrades:  losses,
		WinRate:       round(decimal.NewFromInt(int64(wins)).Div(n).Mul(hundred)),
	}
	if riskCount > 0 {
		s.AvgRisk = round(riskSum.Div(decimal.NewFromInt(riskCount)))
	}
	return s
}

// finite reports whether v holds a usable number.
func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func round(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
