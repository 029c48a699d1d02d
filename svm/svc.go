// Package svm implements a support vector classifier trained with a
// simplified SMO solver, with an sklearn-style hyperparameter surface
// (C, kernel, gamma, degree).
package svm

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/hayato-ueda/mlgrid/core/model"
	"github.com/hayato-ueda/mlgrid/metrics"
	"github.com/hayato-ueda/mlgrid/pkg/errors"
)

// SVC is a binary kernel support vector classifier. The two class labels may
// be any two distinct values; internally they are mapped to -1/+1.
type SVC struct {
	model.BaseEstimator

	// Hyperparameters
	c           float64 // Regularization strength (inverse)
	kernel      string  // "linear", "rbf", "poly"
	gamma       float64 // Kernel coefficient; 0 means "scale" (1 / (n_features * var(X)))
	degree      int     // Polynomial degree
	coef0       float64 // Independent term for poly kernel
	tol         float64 // KKT violation tolerance
	maxIter     int     // Hard cap on SMO sweeps
	randomState uint64  // Seed for the SMO pair-selection RNG

	// Fitted attributes
	alphas     []float64 // Lagrange multipliers of the support vectors
	supportX   *mat.Dense
	supportY   []float64 // -1/+1 labels of the support vectors
	intercept  float64
	classes    [2]float64 // Original labels: classes[0] -> -1, classes[1] -> +1
	gammaValue float64    // Resolved gamma actually used
	nFeatures  int
	nIter      int
}

// SVCOption is a functional option for SVC.
type SVCOption func(*SVC)

// WithC sets the regularization parameter C.
func WithC(c float64) SVCOption {
	return func(s *SVC) { s.c = c }
}

// WithKernel sets the kernel name.
func WithKernel(kernel string) SVCOption {
	return func(s *SVC) { s.kernel = kernel }
}

// WithGamma sets the kernel coefficient for rbf and poly kernels. Zero keeps
// the "scale" default.
func WithGamma(gamma float64) SVCOption {
	return func(s *SVC) { s.gamma = gamma }
}

// WithDegree sets the polynomial kernel degree.
func WithDegree(degree int) SVCOption {
	return func(s *SVC) { s.degree = degree }
}

// WithCoef0 sets the polynomial kernel independent term.
func WithCoef0(coef0 float64) SVCOption {
	return func(s *SVC) { s.coef0 = coef0 }
}

// WithTol sets the optimization tolerance.
func WithTol(tol float64) SVCOption {
	return func(s *SVC) { s.tol = tol }
}

// WithMaxIter sets the maximum number of SMO sweeps.
func WithMaxIter(maxIter int) SVCOption {
	return func(s *SVC) { s.maxIter = maxIter }
}

// WithRandomState seeds the solver's RNG for reproducible fits.
func WithRandomState(seed uint64) SVCOption {
	return func(s *SVC) { s.randomState = seed }
}

// NewSVC creates an SVC with scikit-learn's defaults: C=1, rbf kernel,
// gamma="scale", degree=3.
func NewSVC(opts ...SVCOption) *SVC {
	s := &SVC{
		c:           1.0,
		kernel:      KernelRBF,
		gamma:       0, // "scale"
		degree:      3,
		coef0:       0.0,
		tol:         1e-3,
		maxIter:     1000,
		randomState: 42,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromParams builds an SVC from a name/value map such as one configuration
// of a parameter grid. Unknown names, wrong value types, and out-of-range
// values all yield a ConfigurationError.
func FromParams(params map[string]interface{}) (*SVC, error) {
	s := NewSVC()
	for name, value := range params {
		switch name {
		case "C":
			v, ok := toFloat(value)
			if !ok {
				return nil, errors.NewConfigurationError("SVC", name, value, "expected a number")
			}
			s.c = v
		case "kernel":
			v, ok := value.(string)
			if !ok {
				return nil, errors.NewConfigurationError("SVC", name, value, "expected a string")
			}
			s.kernel = v
		case "gamma":
			v, ok := toFloat(value)
			if !ok {
				return nil, errors.NewConfigurationError("SVC", name, value, "expected a number")
			}
			s.gamma = v
		case "degree":
			v, ok := toInt(value)
			if !ok {
				return nil, errors.NewConfigurationError("SVC", name, value, "expected an integer")
			}
			s.degree = v
		case "coef0":
			v, ok := toFloat(value)
			if !ok {
				return nil, errors.NewConfigurationError("SVC", name, value, "expected a number")
			}
			s.coef0 = v
		case "tol":
			v, ok := toFloat(value)
			if !ok {
				return nil, errors.NewConfigurationError("SVC", name, value, "expected a number")
			}
			s.tol = v
		case "max_iter":
			v, ok := toInt(value)
			if !ok {
				return nil, errors.NewConfigurationError("SVC", name, value, "expected an integer")
			}
			s.maxIter = v
		default:
			return nil, errors.NewConfigurationError("SVC", name, value, "unknown parameter")
		}
	}
	if err := s.validateParams(); err != nil {
		return nil, err
	}
	return s, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	}
	return 0, false
}

func toInt(v interface{}) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		if x == math.Trunc(x) {
			return int(x), true
		}
	}
	return 0, false
}

func (s *SVC) validateParams() error {
	if s.c <= 0 {
		return errors.NewConfigurationError("SVC", "C", s.c, "must be positive")
	}
	if s.kernel != KernelLinear && s.kernel != KernelRBF && s.kernel != KernelPoly {
		return errors.NewConfigurationError("SVC", "kernel", s.kernel, "unknown kernel")
	}
	if s.gamma < 0 {
		return errors.NewConfigurationError("SVC", "gamma", s.gamma, "must be positive or 0 for scale")
	}
	if s.kernel == KernelPoly && s.degree < 1 {
		return errors.NewConfigurationError("SVC", "degree", s.degree, "must be at least 1")
	}
	if s.tol <= 0 {
		return errors.NewConfigurationError("SVC", "tol", s.tol, "must be positive")
	}
	if s.maxIter < 1 {
		return errors.NewConfigurationError("SVC", "max_iter", s.maxIter, "must be at least 1")
	}
	return nil
}

// Fit trains the classifier on X (n_samples x n_features) and y
// (n_samples x 1) holding exactly two distinct labels.
func (s *SVC) Fit(X, y mat.Matrix) error {
	if err := s.validateParams(); err != nil {
		return err
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("SVC.Fit", "empty data", errors.ErrEmptyData)
	}
	yr, yc := y.Dims()
	if yc != 1 {
		return errors.NewValueError("SVC.Fit", "y must be a column vector (n×1 matrix)")
	}
	if yr != r {
		return errors.NewDimensionError("SVC.Fit", r, yr, 0)
	}

	classes, err := twoClasses(y, r)
	if err != nil {
		return err
	}
	s.classes = classes

	// Copy the data: the solver must not alias caller memory, and Predict
	// needs the support vectors after Fit returns.
	data := mat.DenseCopyOf(X)
	labels := make([]float64, r)
	for i := 0; i < r; i++ {
		if y.At(i, 0) == classes[1] {
			labels[i] = 1
		} else {
			labels[i] = -1
		}
	}

	s.nFeatures = c
	s.gammaValue = s.resolveGamma(data, r, c)

	kfn, err := makeKernel(s.kernel, s.gammaValue, s.degree, s.coef0)
	if err != nil {
		return err
	}

	alphas, b, iters := s.smo(data, labels, r, kfn)
	s.nIter = iters
	if iters >= s.maxIter {
		errors.Warn(errors.NewConvergenceWarning("SVC", iters, ""))
	}

	// Keep only the support vectors.
	var svIdx []int
	for i, a := range alphas {
		if a > 1e-8 {
			svIdx = append(svIdx, i)
		}
	}
	s.alphas = make([]float64, len(svIdx))
	s.supportY = make([]float64, len(svIdx))
	s.supportX = mat.NewDense(max(len(svIdx), 1), c, nil)
	for k, i := range svIdx {
		s.alphas[k] = alphas[i]
		s.supportY[k] = labels[i]
		s.supportX.SetRow(k, data.RawRowView(i))
	}
	s.intercept = b

	s.SetFitted()
	return nil
}

// twoClasses extracts the two distinct labels of y in sorted order.
func twoClasses(y mat.Matrix, rows int) ([2]float64, error) {
	seen := make(map[float64]struct{})
	for i := 0; i < rows; i++ {
		seen[y.At(i, 0)] = struct{}{}
	}
	if len(seen) != 2 {
		return [2]float64{}, errors.NewValueError("SVC.Fit",
			fmt.Sprintf("expected exactly 2 classes, got %d", len(seen)))
	}
	labels := make([]float64, 0, 2)
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Float64s(labels)
	return [2]float64{labels[0], labels[1]}, nil
}

// resolveGamma implements sklearn's gamma="scale": 1 / (n_features * var(X)).
func (s *SVC) resolveGamma(X *mat.Dense, r, c int) float64 {
	if s.gamma > 0 {
		return s.gamma
	}
	mean := 0.0
	n := float64(r * c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			mean += X.At(i, j)
		}
	}
	mean /= n
	variance := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d := X.At(i, j) - mean
			variance += d * d
		}
	}
	variance /= n
	if variance < 1e-12 {
		return 1.0 / float64(c)
	}
	return 1.0 / (float64(c) * variance)
}

// smo runs the simplified SMO algorithm and returns the multipliers, the
// intercept, and the number of sweeps used.
func (s *SVC) smo(X *mat.Dense, y []float64, n int, kfn kernelFunc) ([]float64, float64, int) {
	// The full kernel matrix is affordable at the sample counts this solver
	// targets and removes repeated kernel evaluations from the inner loop.
	K := make([][]float64, n)
	for i := 0; i < n; i++ {
		K[i] = make([]float64, n)
		for j := 0; j <= i; j++ {
			v := kfn(X.RawRowView(i), X.RawRowView(j))
			K[i][j] = v
			K[j][i] = v
		}
	}

	alphas := make([]float64, n)
	b := 0.0

	f := func(i int) float64 {
		sum := b
		for k := 0; k < n; k++ {
			if alphas[k] > 0 {
				sum += alphas[k] * y[k] * K[k][i]
			}
		}
		return sum
	}

	rng := rand.New(rand.NewPCG(s.randomState, s.randomState))

	const quietPasses = 3
	passes := 0
	iter := 0
	for passes < quietPasses && iter < s.maxIter {
		changed := 0
		for i := 0; i < n; i++ {
			Ei := f(i) - y[i]
			if !((y[i]*Ei < -s.tol && alphas[i] < s.c) || (y[i]*Ei > s.tol && alphas[i] > 0)) {
				continue
			}

			j := rng.IntN(n - 1)
			if j >= i {
				j++
			}
			Ej := f(j) - y[j]

			alphaIOld, alphaJOld := alphas[i], alphas[j]
			var lo, hi float64
			if y[i] != y[j] {
				lo = math.Max(0, alphaJOld-alphaIOld)
				hi = math.Min(s.c, s.c+alphaJOld-alphaIOld)
			} else {
				lo = math.Max(0, alphaIOld+alphaJOld-s.c)
				hi = math.Min(s.c, alphaIOld+alphaJOld)
			}
			if lo == hi {
				continue
			}

			eta := 2*K[i][j] - K[i][i] - K[j][j]
			if eta >= 0 {
				continue
			}

			aj := alphaJOld - y[j]*(Ei-Ej)/eta
			aj = math.Min(hi, math.Max(lo, aj))
			if math.Abs(aj-alphaJOld) < 1e-5 {
				continue
			}
			alphas[j] = aj
			alphas[i] = alphaIOld + y[i]*y[j]*(alphaJOld-aj)

			b1 := b - Ei - y[i]*(alphas[i]-alphaIOld)*K[i][i] - y[j]*(aj-alphaJOld)*K[i][j]
			b2 := b - Ej - y[i]*(alphas[i]-alphaIOld)*K[i][j] - y[j]*(aj-alphaJOld)*K[j][j]
			switch {
			case alphas[i] > 0 && alphas[i] < s.c:
				b = b1
			case alphas[j] > 0 && alphas[j] < s.c:
				b = b2
			default:
				b = (b1 + b2) / 2
			}
			changed++
		}
		iter++
		if changed == 0 {
			passes++
		} else {
			passes = 0
		}
	}

	return alphas, b, iter
}

// DecisionFunction returns the signed distance of each row of X to the
// separating hyperplane as an n x 1 matrix.
func (s *SVC) DecisionFunction(X mat.Matrix) (*mat.Dense, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("SVC", "DecisionFunction")
	}
	r, c := X.Dims()
	if c != s.nFeatures {
		return nil, errors.NewDimensionError("SVC.DecisionFunction", s.nFeatures, c, 1)
	}

	kfn, err := makeKernel(s.kernel, s.gammaValue, s.degree, s.coef0)
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(r, 1, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			row[j] = X.At(i, j)
		}
		score := s.intercept
		for k := range s.alphas {
			score += s.alphas[k] * s.supportY[k] * kfn(s.supportX.RawRowView(k), row)
		}
		out.Set(i, 0, score)
	}
	return out, nil
}

// Predict returns the predicted class label for each row of X.
func (s *SVC) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("SVC", "Predict")
	}
	scores, err := s.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	r, _ := scores.Dims()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		if scores.At(i, 0) > 0 {
			out.Set(i, 0, s.classes[1])
		} else {
			out.Set(i, 0, s.classes[0])
		}
	}
	return out, nil
}

// Score returns the mean accuracy of Predict(X) against y.
func (s *SVC) Score(X, y mat.Matrix) (float64, error) {
	pred, err := s.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, pred)
}

// NSupport returns the number of support vectors kept by Fit.
func (s *SVC) NSupport() int {
	return len(s.alphas)
}

// Classes returns the two class labels in sorted order.
func (s *SVC) Classes() [2]float64 {
	return s.classes
}

// NIter returns the number of SMO sweeps the last Fit used.
func (s *SVC) NIter() int {
	return s.nIter
}

// GetParams returns the hyperparameters in sklearn naming.
func (s *SVC) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"C":        s.c,
		"kernel":   s.kernel,
		"gamma":    s.gamma,
		"degree":   s.degree,
		"coef0":    s.coef0,
		"tol":      s.tol,
		"max_iter": s.maxIter,
	}
}

// String returns a scikit-learn style representation.
func (s *SVC) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("SVC(C=%g, kernel=%s, gamma=%g)", s.c, s.kernel, s.gamma)
	}
	return fmt.Sprintf("SVC(C=%g, kernel=%s, gamma=%g, n_support=%d)",
		s.c, s.kernel, s.gammaValue, len(s.alphas))
}
