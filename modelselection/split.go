package modelselection

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/hayato-ueda/mlgrid/pkg/errors"
)

type splitConfig struct {
	seed     uint64
	shuffle  bool
	stratify bool
}

// SplitOption configures TrainTestSplit.
type SplitOption func(*splitConfig)

// WithSeed sets the shuffle seed.
func WithSeed(seed uint64) SplitOption {
	return func(c *splitConfig) { c.seed = seed }
}

// WithShuffle enables or disables shuffling before the split.
func WithShuffle(shuffle bool) SplitOption {
	return func(c *splitConfig) { c.shuffle = shuffle }
}

// WithStratify preserves the label distribution across both halves of the
// split.
func WithStratify(stratify bool) SplitOption {
	return func(c *splitConfig) { c.stratify = stratify }
}

// TrainTestSplit partitions (X, y) into train and test halves, with the test
// half holding roughly testSize of the rows. Rows are shuffled by default
// with a fixed seed so splits are reproducible.
func TrainTestSplit(X, y mat.Matrix, testSize float64, opts ...SplitOption) (XTrain, XTest, yTrain, yTest *mat.Dense, err error) {
	cfg := splitConfig{seed: 42, shuffle: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, nil, nil, nil, errors.NewModelError("TrainTestSplit", "empty data", errors.ErrEmptyData)
	}
	yr, yc := y.Dims()
	if yc != 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "y must be a column vector (n×1 matrix)")
	}
	if yr != r {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", r, yr, 0)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "test_size must be in (0, 1)")
	}
	if r < 2 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "need at least 2 samples to split")
	}

	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed))

	var testIdx []int
	if cfg.stratify {
		testIdx = stratifiedTestIndices(y, r, testSize, cfg.shuffle, rng)
	} else {
		indices := make([]int, r)
		for i := range indices {
			indices[i] = i
		}
		if cfg.shuffle {
			rng.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}
		nTest := clampCount(int(float64(r)*testSize+0.5), 1, r-1)
		testIdx = indices[:nTest]
	}

	inTest := make(map[int]bool, len(testIdx))
	for _, i := range testIdx {
		inTest[i] = true
	}
	trainIdx := make([]int, 0, r-len(testIdx))
	for i := 0; i < r; i++ {
		if !inTest[i] {
			trainIdx = append(trainIdx, i)
		}
	}

	XTrain, yTrain = takeRows(X, y, trainIdx)
	XTest, yTest = takeRows(X, y, testIdx)
	return XTrain, XTest, yTrain, yTest, nil
}

// stratifiedTestIndices draws a proportional test share from every class.
func stratifiedTestIndices(y mat.Matrix, rows int, testSize float64, shuffle bool, rng *rand.Rand) []int {
	classIndices := make(map[float64][]int)
	var classOrder []float64
	for i := 0; i < rows; i++ {
		label := y.At(i, 0)
		if _, ok := classIndices[label]; !ok {
			classOrder = append(classOrder, label)
		}
		classIndices[label] = append(classIndices[label], i)
	}

	var testIdx []int
	for _, label := range classOrder {
		indices := classIndices[label]
		if shuffle {
			rng.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}
		nTest := clampCount(int(float64(len(indices))*testSize+0.5), 0, len(indices)-1)
		testIdx = append(testIdx, indices[:nTest]...)
	}
	// A degenerate rounding outcome must still leave both halves non-empty.
	if len(testIdx) == 0 {
		testIdx = append(testIdx, classIndices[classOrder[0]][0])
	}
	return testIdx
}

func clampCount(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// takeRows copies the selected rows of X and y into fresh matrices. Callers
// guarantee indices is non-empty.
func takeRows(X, y mat.Matrix, indices []int) (*mat.Dense, *mat.Dense) {
	_, xCols := X.Dims()
	xOut := mat.NewDense(len(indices), xCols, nil)
	yOut := mat.NewDense(len(indices), 1, nil)
	for i, idx := range indices {
		for j := 0; j < xCols; j++ {
			xOut.Set(i, j, X.At(idx, j))
		}
		yOut.Set(i, 0, y.At(idx, 0))
	}
	return xOut, yOut
}
