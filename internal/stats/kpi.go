package stats

import (
	"math"

	"github.com/bkovacic/liftstats/pkg"
)

// restClampSeconds bounds a single rest sample before it enters a
// mean, so one bad value cannot dominate a small sample.
const restClampSeconds = 600.0

// Density is volume over active minutes, kg/min, rounded to 2
// decimals. 0 when active time is not positive.
func Density(volumeKg, activeMinutes float64) float64 {
	if activeMinutes <= 0 {
		return 0
	}
	return pkg.RoundTo2Decimals(volumeKg / activeMinutes)
}

// AvgRestSec is the mean of rest intervals (ms input), each sample
// clamped into [0, 600] seconds first. 0 when there are no intervals.
func AvgRestSec(intervalsMs []float64) float64 {
	if len(intervalsMs) == 0 {
		return 0
	}
	var totalSec float64
	for _, intervalMs := range intervalsMs {
		sec := intervalMs / 1000
		if sec < 0 {
			sec = 0
		}
		if sec > restClampSeconds {
			sec = restClampSeconds
		}
		totalSec += sec
	}
	return pkg.RoundTo2Decimals(totalSec / float64(len(intervalsMs)))
}

// AvgRestSecFromTotals is the aggregate-only variant used when no
// interval list exists: floor(totalRestSec / setCount). This is a
// different formula than AvgRestSec and the two are not
// interchangeable.
func AvgRestSecFromTotals(totalRestSec float64, setCount int) float64 {
	if setCount <= 0 || totalRestSec <= 0 {
		return 0
	}
	return math.Floor(totalRestSec / float64(setCount))
}

// SetEfficiencyRatio relates average rest to the target rest time.
// Nil when no positive target is available.
func SetEfficiencyRatio(avgRestSec, targetRestSec float64) *float64 {
	if targetRestSec <= 0 {
		return nil
	}
	ratio := pkg.RoundTo2Decimals(avgRestSec / targetRestSec)
	return &ratio
}

// ThroughputKgMin is volume over total (active + rest) minutes.
func ThroughputKgMin(volumeKg, activeMin, restMin float64) float64 {
	totalMin := activeMin + restMin
	if totalMin <= 0 {
		return 0
	}
	return pkg.RoundTo2Decimals(volumeKg / totalMin)
}

// RestCoveragePct relates observed rest samples to theoretically
// possible set-to-set gaps, 0-100.
func RestCoveragePct(observedSamples, possibleGaps int) float64 {
	if possibleGaps <= 0 || observedSamples <= 0 {
		return 0
	}
	pct := float64(observedSamples) / float64(possibleGaps) * 100
	if pct > 100 {
		pct = 100
	}
	return pkg.RoundTo2Decimals(pct)
}
