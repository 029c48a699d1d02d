package log

// Standard attribute keys for machine learning operations. Using the same
// keys everywhere keeps logs filterable across packages.
const (
	// ModelNameKey identifies the estimator type, e.g. "SVC" or
	// "StandardScaler".
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed: "fit", "predict",
	// "transform", "score", "search".
	OperationKey = "ml.operation"

	// SamplesKey is the number of rows in the data being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns in the data being processed.
	FeaturesKey = "data.features"

	// CandidateKey is the index of a hyperparameter configuration within its
	// grid enumeration.
	CandidateKey = "search.candidate"

	// ParamsKey holds the hyperparameter assignment under evaluation.
	ParamsKey = "search.params"

	// AccuracyKey is a classification accuracy in [0, 1].
	AccuracyKey = "metrics.accuracy"

	// DurationMsKey is the elapsed time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
