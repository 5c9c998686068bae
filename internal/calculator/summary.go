package calculator

import (
	"log"

	"github.com/shopspring/decimal"

	"StockKit/internal/model"
)

// PriceStats summarises the close column.
type PriceStats struct {
	Start       decimal.Decimal
	End         decimal.Decimal
	High        decimal.Decimal
	Low         decimal.Decimal
	Mean        decimal.Decimal
	Volatility  decimal.Decimal // sample std of daily pct change, 4 places
	TotalReturn decimal.Decimal // percent
}

// VolumeStats summarises the volume column.
type VolumeStats struct {
	Total decimal.Decimal
	Mean  decimal.Decimal
}

// Summary holds the statistics of one series. Nil sections were skipped
// because the column was absent.
type Summary struct {
	Symbol string
	Rows   int
	Price  *PriceStats
	Volume *VolumeStats
}

// Summarize computes price and volume statistics. Prices are rounded to two
// places for display.
func Summarize(s *model.Series) *Summary {
	sum := &Summary{Symbol: s.Symbol, Rows: s.Len()}

	if _, closes := s.Points(model.FieldClose); len(closes) > 0 {
		sum.Price = priceStats(closes)
	} else {
		log.Printf("[WARN] %s has no %s column, skipping price statistics", s.Symbol, model.FieldClose)
	}

	if _, vols := s.Points(model.FieldVolume); len(vols) > 0 {
		total := decimal.Zero
		for _, v := range vols {
			total = total.Add(decimal.NewFromFloat(v))
		}
		sum.Volume = &VolumeStats{
			Total: total,
			Mean:  total.Div(decimal.NewFromInt(int64(len(vols)))).Round(2),
		}
	} else {
		log.Printf("[WARN] %s has no %s column, skipping volume statistics", s.Symbol, model.FieldVolume)
	}
	return sum
}

func priceStats(closes []float64) *PriceStats {
	high, low, _ := Range(closes)
	mean, _ := Mean(closes)
	first, last := closes[0], closes[len(closes)-1]

	ps := &PriceStats{
		Start: decimal.NewFromFloat(first).Round(2),
		End:   decimal.NewFromFloat(last).Round(2),
		High:  decimal.NewFromFloat(high).Round(2),
		Low:   decimal.NewFromFloat(low).Round(2),
		Mean:  decimal.NewFromFloat(mean).Round(2),
	}
	if std, err := SampleStd(PctChange(closes)); err == nil {
		ps.Volatility = decimal.NewFromFloat(std).Round(4)
	}
	if first != 0 {
		ret := decimal.NewFromFloat(last).Div(decimal.NewFromFloat(first)).Sub(decimal.NewFromInt(1))
		ps.TotalReturn = ret.Mul(decimal.NewFromInt(100)).Round(2)
	}
	return ps
}
