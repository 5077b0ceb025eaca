package events

import (
	"context"
	"fmt"
	"time"

	"github.com/bkovacic/liftstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=events_test

type eventsRepo interface {
	Add(ctx context.Context, event Event) (*Event, error)
	List(ctx context.Context, params ListParams) ([]*Event, error)
	Count(ctx context.Context, params EventParams) (int, error)
	LatestWeightReport(ctx context.Context) (*WeightReport, error)
}

type Service struct {
	repo eventsRepo
}

func NewService(repo eventsRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) AddTrainingStart(ctx context.Context, ts TrainingStart) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.trainingstart")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tsEvent := NewTrainingStartEvent(ts)
	event, err := s.repo.Add(ctx, tsEvent)
	if err != nil {
		return 0, fmt.Errorf("add training start event: %w", err)
	}
	return event.ID, nil
}

func (s *Service) AddTrainingFinish(ctx context.Context, tf TrainingFinish) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.trainingfinish")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tfEvent := NewTrainingFinishEvent(tf)
	event, err := s.repo.Add(ctx, tfEvent)
	if err != nil {
		return 0, fmt.Errorf("add training finish event: %w", err)
	}
	return event.ID, nil
}

func (s *Service) AddWeightReport(ctx context.Context, wr WeightReport) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.add.weightreport")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	wrEvent := NewWeightReportEvent(wr)
	event, err := s.repo.Add(ctx, wrEvent)
	if err != nil {
		return 0, fmt.Errorf("add weight report event: %w", err)
	}
	return event.ID, nil
}

// LatestBodyMassKg returns the most recently reported body weight.
// The bool result is false when the user never reported any.
func (s *Service) LatestBodyMassKg(ctx context.Context) (_ float64, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.latestBodyMass")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	wr, err := s.repo.LatestWeightReport(ctx)
	if err != nil {
		if err == ErrNoWeightReport {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("latest weight report: %w", err)
	}
	return wr.WeightKg, true, nil
}

// ReportShadowMismatch persists a shadow comparison mismatch as an
// event. Failures are logged and swallowed: telemetry must never
// break the caller.
func (s *Service) ReportShadowMismatch(ctx context.Context, mismatches []string) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.shadowMismatch")
	defer span.End()

	event := NewShadowMismatchEvent(time.Now(), mismatches)
	if _, err := s.repo.Add(ctx, event); err != nil {
		log.Errorf("store shadow mismatch event: %s", err)
	}
}

// ReportShadowError persists a shadow run failure as an event.
// Failures are logged and swallowed.
func (s *Service) ReportShadowError(ctx context.Context, shadowErr error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.shadowError")
	defer span.End()

	event := NewShadowErrorEvent(time.Now(), shadowErr)
	if _, err := s.repo.Add(ctx, event); err != nil {
		log.Errorf("store shadow error event: %s", err)
	}
}

func (s *Service) List(ctx context.Context, params ListParams) (_ []*Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.list")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	events, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *Service) Count(ctx context.Context, params EventParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.count")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	count, err := s.repo.Count(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}
