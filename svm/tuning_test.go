package svm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayato-ueda/mlgrid/datasets"
	"github.com/hayato-ueda/mlgrid/modelselection"
	"github.com/hayato-ueda/mlgrid/preprocessing"
	"github.com/hayato-ueda/mlgrid/svm"
)

// TestGridSearchOverSVC runs the full workflow end to end: synthetic data,
// standardization, split, grid search over C and kernel, held-out accuracy.
func TestGridSearchOverSVC(t *testing.T) {
	X, y, err := datasets.MakeClassification(120, 2, 4.0, 21)
	require.NoError(t, err)

	scaler := preprocessing.NewStandardScalerDefault()
	XScaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	XTrain, XVal, yTrain, yVal, err := modelselection.TrainTestSplit(XScaled, y, 0.3, modelselection.WithSeed(4))
	require.NoError(t, err)

	factory := func(params modelselection.Params) (modelselection.Estimator, error) {
		return svm.FromParams(params)
	}
	gs := modelselection.NewGridSearch(factory, modelselection.ParamGrid{
		"C":      {0.1, 1.0, 10.0},
		"kernel": {"linear", "rbf"},
	})

	require.NoError(t, gs.Fit(XTrain, yTrain, XVal, yVal))

	// Clusters four standard deviations apart are trivially separable.
	assert.Greater(t, gs.BestScore, 0.9)
	require.NotNil(t, gs.BestEstimator)

	clf, ok := gs.BestEstimator.(*svm.SVC)
	require.True(t, ok)
	score, err := clf.Score(XVal, yVal)
	require.NoError(t, err)
	assert.Equal(t, gs.BestScore, score)
}

// TestGridSearchSkipsInvalidSVCConfigs verifies that configurations the SVC
// family rejects do not abort the search.
func TestGridSearchSkipsInvalidSVCConfigs(t *testing.T) {
	X, y, err := datasets.MakeClassification(80, 2, 4.0, 11)
	require.NoError(t, err)

	XTrain, XVal, yTrain, yVal, err := modelselection.TrainTestSplit(X, y, 0.25)
	require.NoError(t, err)

	factory := func(params modelselection.Params) (modelselection.Estimator, error) {
		return svm.FromParams(params)
	}
	gs := modelselection.NewGridSearch(factory, modelselection.ParamGrid{
		"C":      {-1.0, 1.0},        // -1 is invalid for SVC
		"kernel": {"linear", "warp"}, // "warp" is not a kernel
	})

	require.NoError(t, gs.Fit(XTrain, yTrain, XVal, yVal))

	assert.Len(t, gs.Results, 1, "only C=1/linear is a valid configuration")
	assert.Equal(t, 1.0, gs.BestParams["C"])
	assert.Equal(t, "linear", gs.BestParams["kernel"])
}
