// Package datasets provides data acquisition helpers: a synthetic
// classification generator for examples and tests, and a numeric CSV loader.
package datasets

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/hayato-ueda/mlgrid/pkg/errors"
)

// MakeClassification generates a two-class dataset of Gaussian blobs. Class 0
// is centered at -sep/2 and class 1 at +sep/2 along every feature axis, with
// unit-variance noise. The rows are shuffled so the classes are interleaved.
// The same seed always produces the same dataset.
func MakeClassification(nSamples, nFeatures int, sep float64, seed uint64) (*mat.Dense, *mat.Dense, error) {
	if nSamples < 2 {
		return nil, nil, errors.NewValueError("MakeClassification", "need at least 2 samples")
	}
	if nFeatures < 1 {
		return nil, nil, errors.NewValueError("MakeClassification", "need at least 1 feature")
	}

	rng := rand.New(rand.NewPCG(seed, seed))

	X := mat.NewDense(nSamples, nFeatures, nil)
	y := mat.NewDense(nSamples, 1, nil)

	nPos := nSamples / 2
	for i := 0; i < nSamples; i++ {
		center := -sep / 2
		label := 0.0
		if i < nPos {
			center = sep / 2
			label = 1.0
		}
		for j := 0; j < nFeatures; j++ {
			X.Set(i, j, center+rng.NormFloat64())
		}
		y.Set(i, 0, label)
	}

	// Interleave the classes.
	perm := rng.Perm(nSamples)
	Xs := mat.NewDense(nSamples, nFeatures, nil)
	ys := mat.NewDense(nSamples, 1, nil)
	for i, p := range perm {
		Xs.SetRow(i, X.RawRowView(p))
		ys.Set(i, 0, y.At(p, 0))
	}

	return Xs, ys, nil
}

// MakeCircles generates a two-class dataset of two concentric rings, a
// standard sanity check for non-linear kernels. Class 0 lies on the outer
// ring of radius 1, class 1 on an inner ring of radius factor.
func MakeCircles(nSamples int, factor, noise float64, seed uint64) (*mat.Dense, *mat.Dense, error) {
	if nSamples < 2 {
		return nil, nil, errors.NewValueError("MakeCircles", "need at least 2 samples")
	}
	if factor <= 0 || factor >= 1 {
		return nil, nil, errors.NewValueError("MakeCircles", "factor must be in (0, 1)")
	}

	rng := rand.New(rand.NewPCG(seed, seed))

	X := mat.NewDense(nSamples, 2, nil)
	y := mat.NewDense(nSamples, 1, nil)

	nInner := nSamples / 2
	for i := 0; i < nSamples; i++ {
		radius := 1.0
		label := 0.0
		if i < nInner {
			radius = factor
			label = 1.0
		}
		theta := 2 * math.Pi * rng.Float64()
		X.Set(i, 0, radius*math.Cos(theta)+noise*rng.NormFloat64())
		X.Set(i, 1, radius*math.Sin(theta)+noise*rng.NormFloat64())
		y.Set(i, 0, label)
	}

	perm := rng.Perm(nSamples)
	Xs := mat.NewDense(nSamples, 2, nil)
	ys := mat.NewDense(nSamples, 1, nil)
	for i, p := range perm {
		Xs.SetRow(i, X.RawRowView(p))
		ys.Set(i, 0, y.At(p, 0))
	}

	return Xs, ys, nil
}
