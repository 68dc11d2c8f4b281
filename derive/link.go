package derive

import (
	"fmt"
	"math"
	"math/big"

	"github.com/sarchlab/radflow/validation"
)

// CycleRatio says that a link accepts a transfer on Accept cycles out of
// every Total cycles.
type CycleRatio struct {
	Accept int64
	Total  int64
}

// FullRate accepts a transfer every cycle.
var FullRate = CycleRatio{Accept: 1, Total: 1}

// Bandwidth converts a bandwidth target in bits per ns into a cycle ratio
// for a link of the given width clocked at period ns. The ratio keeps three
// decimals. Targets above the link capacity, or non-positive ones, fall
// back to full rate with a warning.
func Bandwidth(bw, period float64, width int) (CycleRatio, *validation.Warning) {
	ratio := bw * period / float64(width)

	scaled := math.Round(ratio * 1000)
	switch {
	case math.IsNaN(ratio) || ratio <= 0:
		return FullRate, &validation.Warning{
			Param:    "inter_rad_bw",
			Msg:      fmt.Sprintf("bandwidth %v gives a non-positive accept ratio", bw),
			Fallback: "one transfer per cycle",
		}
	case scaled == 0:
		return FullRate, &validation.Warning{
			Param: "inter_rad_bw",
			Msg: fmt.Sprintf("bandwidth %v is below the 0.001 resolution of the %d-bit link at %v ns",
				bw, width, period),
			Fallback: "one transfer per cycle, the full link rate rather than the requested one",
		}
	case scaled > 1000:
		return FullRate, &validation.Warning{
			Param: "inter_rad_bw",
			Msg: fmt.Sprintf("bandwidth %v exceeds the %d-bit link at %v ns",
				bw, width, period),
			Fallback: "one transfer per cycle",
		}
	}

	r := big.NewRat(int64(scaled), 1000)

	return CycleRatio{Accept: r.Num().Int64(), Total: r.Denom().Int64()}, nil
}

// LatencyCycles converts a latency in ns into whole driver cycles, rounding
// up.
func LatencyCycles(latency, period float64) (int, error) {
	if period <= 0 {
		return 0, validation.Errorf(validation.Arithmetic, "sim_driver_period",
			"period must be positive, got %v", period)
	}
	return int(math.Ceil(latency / period)), nil
}
