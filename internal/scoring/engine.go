package scoring

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lending/recovery-service/internal/config"
	"github.com/lending/recovery-service/internal/domain"
	"github.com/lending/recovery-service/internal/pkg/logger"
)

// Engine runs the assessment pipeline: validation, feature engineering,
// model inference, risk categorization, strategy selection, record
// assembly. One synchronous pass per request on the calling goroutine; the
// only blocking call is model inference. No state is shared between
// requests, so concurrent assessments need no locking beyond the latency
// metrics below.
type Engine struct {
	adapter *ModelAdapter

	cfg    *config.ScoringConfig
	log    *logger.Logger
	tracer trace.Tracer

	// Metrics
	assessmentCount int64
	avgLatencyMs    float64
	latencyMu       sync.RWMutex
}

// NewEngine creates an assessment engine.
func NewEngine(adapter *ModelAdapter, cfg *config.ScoringConfig, log *logger.Logger, tracer trace.Tracer) *Engine {
	return &Engine{
		adapter: adapter,
		cfg:     cfg,
		log:     log.Named("assessment_engine"),
		tracer:  tracer,
	}
}

// Assess runs the full pipeline for one borrower submission. Identical
// input yields identical engineered features and strategy; only the model
// call is outside the determinism guarantee. Every failure is recoverable
// at the request boundary and identifies the field or stage that failed.
func (e *Engine) Assess(ctx context.Context, raw *domain.RawBorrowerInput) (*domain.BorrowerRecord, error) {
	startTime := time.Now()
	assessmentID := uuid.New()

	ctx, span := e.tracer.Start(ctx, "assessment",
		trace.WithAttributes(attribute.String("assessment.id", assessmentID.String())))
	defer span.End()

	// 1. Validation completes before any feature computation runs.
	profile, err := ValidateInput(raw)
	if err != nil {
		e.log.ValidationFailed(assessmentID.String(), err)
		return nil, err
	}

	e.log.AssessmentStarted(assessmentID.String(), profile.FullName())

	// 2. EMI and engineered features. Validation guarantees the loan
	// figures are positive, so a degenerate-loan sentinel here means the
	// validator and calculator disagree; treat it as an input error.
	emi, ok := CalculateEMI(
		decimal.NewFromFloat(profile.LoanAmount),
		decimal.NewFromFloat(profile.InterestRatePct),
		profile.LoanTenureMonths,
	)
	if !ok {
		return nil, &domain.InvalidValueError{Field: "loan_amount", Reason: "loan has no computable EMI"}
	}
	features := EngineerFeatures(profile, emi)

	// 3. Fixed-order feature vector.
	vector, err := BuildFeatureVector(profile, &features)
	if err != nil {
		return nil, err
	}

	// 4. Model inference, the single external call of the pipeline.
	probability, err := e.adapter.Score(ctx, vector)
	if err != nil {
		e.log.ModelCallFailed(assessmentID.String(), err)
		return nil, err
	}
	span.SetAttributes(attribute.Float64("assessment.risk_probability", probability))

	// 5. Strategy assignment.
	category, strategyText := AssignStrategy(probability, profile.DaysPastDue)

	assessment := domain.RiskAssessment{
		ID:               assessmentID,
		RiskProbability:  probability,
		RiskCategory:     category,
		StrategyText:     strategyText,
		NearCriticalZone: NearCriticalZone(probability),
		Insights:         BuildInsights(profile, &features),
		CreatedAt:        time.Now().UTC(),
	}

	// 6. Ranked explanation when the classifier supports it. A failed
	// explanation degrades the record, it never fails the assessment.
	if contributions, supported, err := e.adapter.Explain(ctx, vector); supported {
		if err != nil {
			e.log.ExplanationSkipped(assessmentID.String(), err)
		} else {
			assessment.FeatureImpacts = RankFeatureImpacts(vector, contributions)
		}
	}

	// 7. Assemble the immutable record.
	record, err := domain.NewBorrowerRecord(profile, &features, &assessment)
	if err != nil {
		return nil, err
	}

	durationMs := time.Since(startTime).Milliseconds()
	e.recordLatency(durationMs)
	if e.cfg != nil && durationMs > e.cfg.MaxAssessmentLatency.Milliseconds() {
		e.log.LatencyWarning("full_assessment", durationMs, e.cfg.MaxAssessmentLatency.Milliseconds())
	}

	e.log.AssessmentCompleted(assessmentID.String(), string(category), probability, durationMs)

	return record, nil
}

// recordLatency records assessment latency for metrics
func (e *Engine) recordLatency(durationMs int64) {
	e.latencyMu.Lock()
	defer e.latencyMu.Unlock()

	e.assessmentCount++
	// Exponential moving average
	e.avgLatencyMs = e.avgLatencyMs*0.9 + float64(durationMs)*0.1
}

// GetAverageLatency returns the average assessment latency
func (e *Engine) GetAverageLatency() float64 {
	e.latencyMu.RLock()
	defer e.latencyMu.RUnlock()
	return e.avgLatencyMs
}

// GetAssessmentCount returns total assessments performed
func (e *Engine) GetAssessmentCount() int64 {
	e.latencyMu.RLock()
	defer e.latencyMu.RUnlock()
	return e.assessmentCount
}
