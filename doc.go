// Package mlgrid is a small scikit-learn-flavoured toolkit for classifier
// hyperparameter tuning in Go.
//
// The workflow it supports end to end: load or generate a dataset
// (datasets), standardize features (preprocessing), split into train,
// validation, and test sets (modelselection.TrainTestSplit), exhaustively
// search a hyperparameter grid for a support vector classifier (svm,
// modelselection.GridSearch), and evaluate by accuracy (metrics).
//
// All data is exchanged as gonum mat.Matrix values with samples in rows and
// features in columns; labels are n×1 column matrices.
package mlgrid
