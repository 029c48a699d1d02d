package modelselection

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/hayato-ueda/mlgrid/core/model"
	"github.com/hayato-ueda/mlgrid/metrics"
	"github.com/hayato-ueda/mlgrid/pkg/errors"
	mllog "github.com/hayato-ueda/mlgrid/pkg/log"
)

// Estimator is the contract a candidate model must satisfy to be tuned.
type Estimator interface {
	model.Fitter
	model.Predictor
}

// Factory constructs a fresh estimator from one hyperparameter assignment.
// Returning a ConfigurationError marks the assignment invalid for the model
// family; the search skips it and moves on.
type Factory func(params Params) (Estimator, error)

// Scorer evaluates a fitted estimator against labelled data and returns a
// score where higher is better.
type Scorer func(est Estimator, X, y mat.Matrix) (float64, error)

// AccuracyScorer scores a fitted estimator by classification accuracy.
func AccuracyScorer(est Estimator, X, y mat.Matrix) (float64, error) {
	pred, err := est.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, pred)
}

// CandidateResult is the outcome of evaluating one configuration: its index
// in the enumeration order, the assignment itself, its validation score, and
// the fitted estimator.
type CandidateResult struct {
	Index     int
	Params    Params
	Score     float64
	Estimator Estimator
}

// GridSearch exhaustively evaluates every configuration of a parameter grid
// against a fixed validation set and keeps the best one.
//
// Candidates are evaluated strictly in enumeration order, one at a time. The
// best slot is replaced only on a strictly higher score, so ties go to the
// earlier configuration.
type GridSearch struct {
	model.BaseEstimator

	factory Factory
	grid    ParamGrid
	scorer  Scorer
	logger  *slog.Logger

	// BestIndex is the enumeration index of the winning configuration.
	BestIndex int
	// BestParams is the winning hyperparameter assignment.
	BestParams Params
	// BestScore is the winning validation score.
	BestScore float64
	// BestEstimator is the fitted artifact of the winning configuration.
	BestEstimator Estimator
	// Results holds one entry per valid candidate, in enumeration order.
	// Skipped configurations do not appear. Fitted estimators other than the
	// best are not retained.
	Results []CandidateResult
}

// GridSearchOption configures a GridSearch.
type GridSearchOption func(*GridSearch)

// WithScorer replaces the default accuracy scorer.
func WithScorer(scorer Scorer) GridSearchOption {
	return func(gs *GridSearch) { gs.scorer = scorer }
}

// WithLogger replaces the default slog logger.
func WithLogger(logger *slog.Logger) GridSearchOption {
	return func(gs *GridSearch) { gs.logger = logger }
}

// NewGridSearch creates a grid search over grid using factory to build each
// candidate. Scoring defaults to classification accuracy.
func NewGridSearch(factory Factory, grid ParamGrid, opts ...GridSearchOption) *GridSearch {
	gs := &GridSearch{
		factory:   factory,
		grid:      grid,
		scorer:    AccuracyScorer,
		BestIndex: -1,
	}
	for _, opt := range opts {
		opt(gs)
	}
	if gs.logger == nil {
		gs.logger = slog.Default()
	}
	return gs
}

// Fit evaluates every configuration: each candidate is fitted on the training
// set and scored on the validation set. Configurations rejected with a
// ConfigurationError are skipped; any other failure aborts the search and no
// partial result is exposed.
func (gs *GridSearch) Fit(XTrain, yTrain, XVal, yVal mat.Matrix) error {
	if err := validateSearchData(XTrain, yTrain, XVal, yVal); err != nil {
		return err
	}

	candidates := gs.grid.Expand()
	if len(candidates) == 0 {
		return errors.NewModelError("GridSearch.Fit", "grid expands to zero configurations", errors.ErrEmptyGrid)
	}

	var (
		best    *CandidateResult
		results []CandidateResult
		skipped int
	)
	for idx, params := range candidates {
		est, err := gs.evaluateCandidate(params, XTrain, yTrain)
		if err != nil {
			var confErr *errors.ConfigurationError
			if errors.As(err, &confErr) {
				skipped++
				gs.logger.Warn("skipping invalid configuration",
					mllog.OperationKey, "search",
					mllog.CandidateKey, idx,
					mllog.ParamsKey, params,
					mllog.ErrAttr(err),
				)
				continue
			}
			return errors.Wrapf(err, "GridSearch.Fit: candidate %d", idx)
		}

		score, err := gs.scorer(est, XVal, yVal)
		if err != nil {
			return errors.Wrapf(err, "GridSearch.Fit: scoring candidate %d", idx)
		}

		result := CandidateResult{Index: idx, Params: params.Clone(), Score: score}
		results = append(results, result)

		// Strict improvement only: on ties the earlier candidate stays.
		if best == nil || score > best.Score {
			result.Estimator = est
			best = &result
		}
	}

	if best == nil {
		return errors.NewModelError("GridSearch.Fit", "all configurations were invalid", errors.ErrNoValidCandidate)
	}

	gs.BestIndex = best.Index
	gs.BestParams = best.Params
	gs.BestScore = best.Score
	gs.BestEstimator = best.Estimator
	gs.Results = results
	gs.SetFitted()

	gs.logger.Info("grid search complete",
		mllog.OperationKey, "search",
		"candidates", len(candidates),
		"skipped", skipped,
		mllog.CandidateKey, best.Index,
		mllog.ParamsKey, best.Params,
		mllog.AccuracyKey, best.Score,
	)
	return nil
}

// evaluateCandidate constructs and fits a fresh estimator for one assignment.
func (gs *GridSearch) evaluateCandidate(params Params, XTrain, yTrain mat.Matrix) (Estimator, error) {
	est, err := gs.factory(params.Clone())
	if err != nil {
		return nil, err
	}
	if err := est.Fit(XTrain, yTrain); err != nil {
		return nil, err
	}
	return est, nil
}

// Best returns the winning candidate after a successful Fit.
func (gs *GridSearch) Best() (*CandidateResult, error) {
	if !gs.IsFitted() {
		return nil, errors.NewNotFittedError("GridSearch", "Best")
	}
	return &CandidateResult{
		Index:     gs.BestIndex,
		Params:    gs.BestParams,
		Score:     gs.BestScore,
		Estimator: gs.BestEstimator,
	}, nil
}

// validateSearchData checks the training and validation sets against each
// other before any candidate is fitted, so a malformed validation set cannot
// waste a full grid of fits.
func validateSearchData(XTrain, yTrain, XVal, yVal mat.Matrix) error {
	rTr, cTr := XTrain.Dims()
	if rTr == 0 || cTr == 0 {
		return errors.NewModelError("GridSearch.Fit", "empty training data", errors.ErrEmptyData)
	}
	if yr, yc := yTrain.Dims(); yc != 1 {
		return errors.NewValueError("GridSearch.Fit", "y_train must be a column vector (n×1 matrix)")
	} else if yr != rTr {
		return errors.NewDimensionError("GridSearch.Fit", rTr, yr, 0)
	}

	rVal, cVal := XVal.Dims()
	if rVal == 0 || cVal == 0 {
		return errors.NewModelError("GridSearch.Fit", "empty validation data", errors.ErrEmptyData)
	}
	if yr, yc := yVal.Dims(); yc != 1 {
		return errors.NewValueError("GridSearch.Fit", "y_val must be a column vector (n×1 matrix)")
	} else if yr != rVal {
		return errors.NewDimensionError("GridSearch.Fit", rVal, yr, 0)
	}

	if cVal != cTr {
		return errors.NewDimensionError("GridSearch.Fit", cTr, cVal, 1)
	}
	return nil
}
