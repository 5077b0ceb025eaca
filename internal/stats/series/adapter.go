package series

import (
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/bkovacic/liftstats/internal/instrumentation"
	"github.com/bkovacic/liftstats/pkg"
)

// DefaultTargetRestSeconds is the target rest time used by the
// efficiency ratio until real per-exercise targets exist.
const DefaultTargetRestSeconds = 90.0

// Normalized is the adapter output: the series map keyed by canonical
// measures plus their mirror spellings, and the list of canonical
// measures that actually carry data.
type Normalized struct {
	Series    map[string][]TimeSeriesPoint `json:"series"`
	Available []Measure                    `json:"available"`
}

type Adapter struct {
	targetRestSec float64
	instr         *instrumentation.Instrumentation
}

func NewAdapter(instr *instrumentation.Instrumentation) *Adapter {
	return &Adapter{
		targetRestSec: DefaultTargetRestSeconds,
		instr:         instr,
	}
}

// Normalize maps a raw series map with arbitrary key spellings onto
// the canonical measure set. Unknown keys are dropped (logged, not
// errors). When a derived series is missing but its inputs are
// present, it is computed element-wise per date, with nulls
// propagated. Each canonical key is additionally mirrored into its
// alternate spelling.
func (a *Adapter) Normalize(raw map[string][]TimeSeriesPoint) Normalized {
	canonical := make(map[Measure][]TimeSeriesPoint)
	for key, points := range raw {
		measure, ok := Canonical(key)
		if !ok {
			log.Warnf("series adapter: dropping unrecognized series key %q", key)
			continue
		}
		// a canonical-named key wins over an alias of the same measure
		if _, exists := canonical[measure]; exists && key != measure.String() {
			continue
		}
		canonical[measure] = points
	}

	a.fillDensity(canonical)
	a.fillSetEfficiency(canonical)

	out := make(map[string][]TimeSeriesPoint, 2*len(canonical))
	available := make([]Measure, 0, len(canonical))
	for measure, points := range canonical {
		out[measure.String()] = points
		if mirror := MirrorKey(measure); mirror != "" {
			out[mirror] = points
		}
		if hasValues(points) {
			available = append(available, measure)
		}
	}
	sort.Slice(available, func(i, j int) bool {
		return available[i] < available[j]
	})

	return Normalized{
		Series:    out,
		Available: available,
	}
}

// fillDensity computes density as volume/duration per date when the
// density series is absent but both inputs are there.
func (a *Adapter) fillDensity(canonical map[Measure][]TimeSeriesPoint) {
	if _, ok := canonical[MeasureDensity]; ok {
		return
	}
	volume, ok := canonical[MeasureVolume]
	if !ok {
		return
	}
	duration, ok := canonical[MeasureDuration]
	if !ok {
		return
	}

	durationByDate := make(map[string]*float64, len(duration))
	for _, point := range duration {
		durationByDate[point.Date] = point.Value
	}

	density := make([]TimeSeriesPoint, 0, len(volume))
	for _, volPoint := range volume {
		point := TimeSeriesPoint{Date: volPoint.Date}
		durValue, known := durationByDate[volPoint.Date]
		if volPoint.Value != nil && known && durValue != nil && *durValue > 0 {
			value := pkg.RoundTo2Decimals(*volPoint.Value / *durValue)
			point.Value = &value
			log.WithFields(log.Fields{
				"date":     volPoint.Date,
				"volume":   *volPoint.Value,
				"duration": *durValue,
				"density":  value,
			}).Debug("series adapter: density computed from volume and duration")
		}
		density = append(density, point)
	}

	canonical[MeasureDensity] = density
	a.instr.CounterSeriesFallbacks.Inc()
	log.Infof("series adapter: density series derived from volume and duration (%d points)", len(density))
}

// fillSetEfficiency computes the rest-to-target ratio per date when
// the efficiency series is absent but avg rest is there.
func (a *Adapter) fillSetEfficiency(canonical map[Measure][]TimeSeriesPoint) {
	if _, ok := canonical[MeasureSetEfficiency]; ok {
		return
	}
	if a.targetRestSec <= 0 {
		return
	}
	avgRest, ok := canonical[MeasureAvgRest]
	if !ok {
		return
	}

	efficiency := make([]TimeSeriesPoint, 0, len(avgRest))
	for _, restPoint := range avgRest {
		point := TimeSeriesPoint{Date: restPoint.Date}
		if restPoint.Value != nil {
			value := pkg.RoundTo2Decimals(*restPoint.Value / a.targetRestSec)
			point.Value = &value
		}
		efficiency = append(efficiency, point)
	}

	canonical[MeasureSetEfficiency] = efficiency
	a.instr.CounterSeriesFallbacks.Inc()
	log.Infof("series adapter: set efficiency series derived from avg rest (%d points)", len(efficiency))
}

func hasValues(points []TimeSeriesPoint) bool {
	for _, point := range points {
		if point.Value != nil {
			return true
		}
	}
	return false
}
