// Package shadow orchestrates the migration from the legacy (v1)
// stats summary to the new engine: it can serve either one, or serve
// v1 while running v2 in the background and reporting parity
// mismatches as telemetry.
package shadow

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/bkovacic/liftstats/internal/instrumentation"
	"github.com/bkovacic/liftstats/internal/stats"
)

//go:generate mockgen -source=$GOFILE -destination=facade_mocks_test.go -package=shadow_test

type Mode string

const (
	// ModeDefault serves the v1 output unchanged.
	ModeDefault Mode = "default"
	// ModeV2 bypasses v1 entirely.
	ModeV2 Mode = "v2"
	// ModeShadow serves v1 and runs v2 in the background for
	// comparison.
	ModeShadow Mode = "shadow"
)

// ModeFromFlags combines the two independent feature flags. When both
// are set, the full cutover wins over shadowing.
func ModeFromFlags(v2Enabled, shadowEnabled bool) Mode {
	switch {
	case v2Enabled:
		return ModeV2
	case shadowEnabled:
		return ModeShadow
	default:
		return ModeDefault
	}
}

// FetchV1Func produces the legacy summary for the same user and range
// the v2 params describe.
type FetchV1Func func(ctx context.Context, params stats.Params) (*V1Output, error)

type statsAnalyzer interface {
	WorkoutStats(ctx context.Context, params stats.Params) (*stats.ServiceOutput, error)
}

type telemetry interface {
	ReportShadowMismatch(ctx context.Context, mismatches []string)
	ReportShadowError(ctx context.Context, shadowErr error)
}

// Result carries exactly one of the two output shapes, depending on
// the facade mode.
type Result struct {
	V1 *V1Output            `json:"v1,omitempty"`
	V2 *stats.ServiceOutput `json:"v2,omitempty"`
}

type Facade struct {
	mode      Mode
	fetchV1   FetchV1Func
	analyzer  statsAnalyzer
	telemetry telemetry
	instr     *instrumentation.Instrumentation

	shadowRuns sync.WaitGroup
}

func NewFacade(
	mode Mode,
	fetchV1 FetchV1Func,
	analyzer statsAnalyzer,
	telemetry telemetry,
	instr *instrumentation.Instrumentation,
) *Facade {
	return &Facade{
		mode:      mode,
		fetchV1:   fetchV1,
		analyzer:  analyzer,
		telemetry: telemetry,
		instr:     instr,
	}
}

func (f *Facade) Mode() Mode {
	return f.mode
}

// Stats serves the stats output per the configured mode. In shadow
// mode the v2 run can never block or fail the returned v1 response.
func (f *Facade) Stats(ctx context.Context, params stats.Params) (*Result, error) {
	switch f.mode {
	case ModeV2:
		output, err := f.analyzer.WorkoutStats(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("v2 stats: %w", err)
		}
		return &Result{V2: output}, nil

	case ModeShadow:
		v1Output, err := f.fetchV1(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("v1 stats: %w", err)
		}
		f.runShadow(ctx, params, v1Output)
		return &Result{V1: v1Output}, nil

	default:
		v1Output, err := f.fetchV1(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("v1 stats: %w", err)
		}
		return &Result{V1: v1Output}, nil
	}
}

// runShadow executes v2 in the background and compares it against the
// already-served v1 output. Everything that goes wrong in here is
// downgraded to telemetry.
func (f *Facade) runShadow(ctx context.Context, params stats.Params, v1Output *V1Output) {
	// the shadow run must survive the request context
	bgCtx := context.WithoutCancel(ctx)

	f.shadowRuns.Add(1)
	go func() {
		defer f.shadowRuns.Done()
		defer func() {
			if r := recover(); r != nil {
				f.instr.CounterShadowFailures.Inc()
				panicErr := fmt.Errorf("shadow stats panic: %v", r)
				log.Error(panicErr)
				f.telemetry.ReportShadowError(bgCtx, panicErr)
			}
		}()

		f.instr.CounterShadowRuns.Inc()

		v2Output, err := f.analyzer.WorkoutStats(bgCtx, params)
		if err != nil {
			f.instr.CounterShadowFailures.Inc()
			log.Errorf("shadow stats run: %s", err)
			f.telemetry.ReportShadowError(bgCtx, err)
			return
		}

		diff := Compare(v1Output, v2Output)
		if diff == nil {
			return
		}

		f.instr.CounterShadowMismatches.Inc()
		log.WithFields(log.Fields{
			"mismatches": diff.Mismatches,
			"user_id":    params.UserID,
		}).Warn("shadow stats mismatch")
		f.telemetry.ReportShadowMismatch(bgCtx, diff.Mismatches)
	}()
}

// Wait blocks until all in-flight shadow runs finished. Used by
// graceful shutdown and tests.
func (f *Facade) Wait() {
	f.shadowRuns.Wait()
}
