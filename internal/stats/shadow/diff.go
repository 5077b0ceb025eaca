package shadow

import (
	"github.com/bkovacic/liftstats/internal/stats"
	"github.com/bkovacic/liftstats/internal/stats/series"
)

// V1Output is the legacy summary shape still served to old clients.
// Only the fields tracked by the parity diff are modeled here.
type V1Output struct {
	Totals V1Totals                            `json:"totals"`
	Prs    []V1PersonalRecord                  `json:"prs"`
	Series map[string][]series.TimeSeriesPoint `json:"series"`
}

type V1Totals struct {
	TotalVolumeKg float64 `json:"totalVolumeKg"`
}

type V1PersonalRecord struct {
	ExerciseID string  `json:"exerciseId"`
	WeightKg   float64 `json:"weightKg"`
}

type FloatPair struct {
	V1 float64 `json:"v1"`
	V2 float64 `json:"v2"`
}

type IntPair struct {
	V1 int `json:"v1"`
	V2 int `json:"v2"`
}

// Diff describes where v1 and v2 disagree on the tracked fields.
type Diff struct {
	Mismatches      []string   `json:"mismatches"`
	Totals          *FloatPair `json:"totals,omitempty"`
	PrsLength       *IntPair   `json:"prsLength,omitempty"`
	SeriesVolumeLen *IntPair   `json:"seriesVolumeLen,omitempty"`
}

// Compare checks total volume, PR-list length and the main (volume)
// series length. Nil when no tracked field differs. A series missing
// on one side entirely is presence/absence, not a mismatch.
func Compare(v1 *V1Output, v2 *stats.ServiceOutput) *Diff {
	if v1 == nil || v2 == nil {
		return nil
	}

	diff := &Diff{}

	if v1.Totals.TotalVolumeKg != v2.Totals.TotalVolumeKg {
		diff.Mismatches = append(diff.Mismatches, "totals.totalVolumeKg")
		diff.Totals = &FloatPair{V1: v1.Totals.TotalVolumeKg, V2: v2.Totals.TotalVolumeKg}
	}

	if len(v1.Prs) != len(v2.Prs) {
		diff.Mismatches = append(diff.Mismatches, "prs.length")
		diff.PrsLength = &IntPair{V1: len(v1.Prs), V2: len(v2.Prs)}
	}

	v1Volume, v1Has := volumeSeries(v1.Series)
	v2Volume, v2Has := volumeSeries(v2.Series)
	if v1Has && v2Has && len(v1Volume) != len(v2Volume) {
		diff.Mismatches = append(diff.Mismatches, "series.volume.length")
		diff.SeriesVolumeLen = &IntPair{V1: len(v1Volume), V2: len(v2Volume)}
	}

	if len(diff.Mismatches) == 0 {
		return nil
	}
	return diff
}

func volumeSeries(seriesMap map[string][]series.TimeSeriesPoint) ([]series.TimeSeriesPoint, bool) {
	for key, points := range seriesMap {
		if measure, ok := series.Canonical(key); ok && measure == series.MeasureVolume {
			return points, true
		}
	}
	return nil, false
}
