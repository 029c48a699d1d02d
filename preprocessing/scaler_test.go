package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/hayato-ueda/mlgrid/pkg/errors"
)

func TestStandardScalerFitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// Each column must have mean 0 and unit variance.
	r, c := scaled.Dims()
	for j := 0; j < c; j++ {
		mean, variance := 0.0, 0.0
		for i := 0; i < r; i++ {
			mean += scaled.At(i, j)
		}
		mean /= float64(r)
		for i := 0; i < r; i++ {
			d := scaled.At(i, j) - mean
			variance += d * d
		}
		variance /= float64(r)

		if math.Abs(mean) > 1e-12 {
			t.Errorf("column %d mean = %v, want 0", j, mean)
		}
		if math.Abs(variance-1) > 1e-12 {
			t.Errorf("column %d variance = %v, want 1", j, variance)
		}
	}
}

func TestStandardScalerKnownValues(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{0, 2})

	scaler := NewStandardScalerDefault()
	if err := scaler.Fit(X); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if scaler.Mean[0] != 1 {
		t.Errorf("Mean = %v, want 1", scaler.Mean[0])
	}
	if scaler.Scale[0] != 1 {
		t.Errorf("Scale = %v, want 1", scaler.Scale[0])
	}

	out, err := scaler.Transform(mat.NewDense(1, 1, []float64{3}))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got := out.At(0, 0); got != 2 {
		t.Errorf("Transform(3) = %v, want 2", got)
	}
}

func TestStandardScalerConstantFeature(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{5, 5, 5})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if got := scaled.At(i, 0); got != 0 {
			t.Errorf("row %d = %v, want 0 for constant feature", i, got)
		}
	}
}

func TestStandardScalerInverseRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1.5, -2.0,
		0.5, 4.0,
		-3.0, 1.0,
	})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	restored, err := scaler.InverseTransform(scaled)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}

	if !mat.EqualApprox(X, restored, 1e-12) {
		t.Errorf("round trip mismatch:\ngot  %v\nwant %v", mat.Formatted(restored), mat.Formatted(X))
	}
}

func TestStandardScalerErrors(t *testing.T) {
	scaler := NewStandardScalerDefault()

	if _, err := scaler.Transform(mat.NewDense(1, 1, nil)); err == nil {
		t.Error("Transform before Fit should fail")
	} else {
		var nf *errors.NotFittedError
		if !errors.As(err, &nf) {
			t.Errorf("expected NotFittedError, got %v", err)
		}
	}

	if err := scaler.Fit(mat.NewDense(2, 2, nil)); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := scaler.Transform(mat.NewDense(2, 3, nil)); err == nil {
		t.Error("Transform with wrong feature count should fail")
	} else {
		var de *errors.DimensionError
		if !errors.As(err, &de) {
			t.Errorf("expected DimensionError, got %v", err)
		}
	}
}

func TestStandardScalerWithoutCentering(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{2, 4})

	scaler := NewStandardScaler(false, false)
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	if !mat.EqualApprox(X, scaled, 1e-12) {
		t.Error("disabled centering and scaling must be the identity")
	}
}
