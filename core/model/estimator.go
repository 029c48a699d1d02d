package model

import "gonum.org/v1/gonum/mat"

// Fitter is a model that can be trained on data.
type Fitter interface {
	// Fit trains the model on X (n_samples x n_features) and y (n_samples x 1).
	Fit(X, y mat.Matrix) error
}

// Predictor is a model that can produce predictions.
type Predictor interface {
	// Predict returns predictions for X as an n_samples x 1 matrix.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Transformer is a stateless-after-fit data transformation such as a scaler.
type Transformer interface {
	Fitter
	// Transform applies the fitted transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// Classifier is a predictor that can score itself against labelled data.
type Classifier interface {
	Fitter
	Predictor
	// Score returns the mean accuracy of Predict(X) against y.
	Score(X, y mat.Matrix) (float64, error)
}
