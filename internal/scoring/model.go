package scoring

import (
	"context"
	"math"

	"github.com/lending/recovery-service/internal/domain"
	"github.com/lending/recovery-service/internal/pkg/logger"
)

// FeatureVectorSize is the number of inputs the classifier was trained on.
const FeatureVectorSize = 10

// FeatureVector is the ordered numeric input to the classifier. The order
// is a fixed contract with the trained model: reordering does not fail, it
// silently produces a wrong prediction.
type FeatureVector [FeatureVectorSize]float64

// FeatureNames lists the vector slots in contract order.
var FeatureNames = [FeatureVectorSize]string{
	"age",
	"monthly_income",
	"num_dependents",
	"loan_tenure",
	"interest_rate",
	"outstanding_loan",
	"collection_attempts",
	"emi_to_income",
	"collateral_coverage",
	"default_severity",
}

// BuildFeatureVector assembles the classifier input from the validated
// profile and engineered features. Slot order must match FeatureNames.
// An undefined ratio cannot be encoded (there is no numeric stand-in that
// would not bias the prediction), so building fails instead.
func BuildFeatureVector(profile *domain.BorrowerProfile, features *domain.EngineeredFeatures) (FeatureVector, error) {
	if !features.EMIToIncome.Valid {
		return FeatureVector{}, &domain.UndefinedRatioError{Ratio: "emi_to_income"}
	}
	if !features.CollateralCoverage.Valid {
		return FeatureVector{}, &domain.UndefinedRatioError{Ratio: "collateral_coverage"}
	}

	return FeatureVector{
		float64(profile.Age),
		profile.MonthlyIncome,
		float64(profile.NumDependents),
		float64(profile.LoanTenureMonths),
		profile.InterestRatePct,
		profile.OutstandingLoan,
		float64(features.CollectionAttempts),
		features.EMIToIncome.Value,
		features.CollateralCoverage.Value,
		float64(features.DefaultSeverity),
	}, nil
}

// Classifier is the query interface of the pre-trained binary classifier.
// Implementations return the positive-class (default) probability.
type Classifier interface {
	PredictProbability(ctx context.Context, features FeatureVector) (float64, error)
}

// Explainer is optionally implemented by classifiers that can attribute the
// prediction to individual features. Contributions are positional, matching
// FeatureNames.
type Explainer interface {
	Explain(ctx context.Context, features FeatureVector) ([FeatureVectorSize]float64, error)
}

// ModelAdapter wraps the external classifier behind the fixed feature
// vector contract and normalizes its failure modes.
type ModelAdapter struct {
	classifier Classifier
	log        *logger.Logger
}

// NewModelAdapter creates a model adapter.
func NewModelAdapter(classifier Classifier, log *logger.Logger) *ModelAdapter {
	return &ModelAdapter{
		classifier: classifier,
		log:        log.Named("model_adapter"),
	}
}

// Score queries the classifier and validates its output. Any failure, or a
// probability outside [0,1], surfaces as ModelUnavailableError: the
// assessment is simply not produced, the host process keeps running.
func (a *ModelAdapter) Score(ctx context.Context, features FeatureVector) (float64, error) {
	if a.classifier == nil {
		return 0, &domain.ModelUnavailableError{}
	}

	probability, err := a.classifier.PredictProbability(ctx, features)
	if err != nil {
		return 0, &domain.ModelUnavailableError{Cause: err}
	}
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		a.log.Error("classifier returned out-of-range probability",
			logger.Float64Field("probability", probability))
		return 0, &domain.ModelUnavailableError{}
	}

	return probability, nil
}

// Explain returns positional feature contributions when the underlying
// classifier supports explanation. The boolean is false when it does not.
func (a *ModelAdapter) Explain(ctx context.Context, features FeatureVector) ([FeatureVectorSize]float64, bool, error) {
	explainer, ok := a.classifier.(Explainer)
	if !ok {
		return [FeatureVectorSize]float64{}, false, nil
	}
	contributions, err := explainer.Explain(ctx, features)
	if err != nil {
		return [FeatureVectorSize]float64{}, true, err
	}
	return contributions, true, nil
}
