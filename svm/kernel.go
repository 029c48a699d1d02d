package svm

import (
	"math"

	"github.com/hayato-ueda/mlgrid/pkg/errors"
)

// Supported kernel names.
const (
	KernelLinear = "linear"
	KernelRBF    = "rbf"
	KernelPoly   = "poly"
)

// kernelFunc computes the kernel value for two feature vectors of equal
// length.
type kernelFunc func(a, b []float64) float64

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func linearKernel(a, b []float64) float64 {
	return dot(a, b)
}

func rbfKernel(gamma float64) kernelFunc {
	return func(a, b []float64) float64 {
		d := 0.0
		for i := range a {
			diff := a[i] - b[i]
			d += diff * diff
		}
		return math.Exp(-gamma * d)
	}
}

func polyKernel(gamma float64, degree int, coef0 float64) kernelFunc {
	return func(a, b []float64) float64 {
		return math.Pow(gamma*dot(a, b)+coef0, float64(degree))
	}
}

// makeKernel resolves a kernel name and its parameters into a kernelFunc.
// gamma must already be resolved to a concrete positive value.
func makeKernel(kernel string, gamma float64, degree int, coef0 float64) (kernelFunc, error) {
	switch kernel {
	case KernelLinear:
		return linearKernel, nil
	case KernelRBF:
		return rbfKernel(gamma), nil
	case KernelPoly:
		return polyKernel(gamma, degree, coef0), nil
	default:
		return nil, errors.NewConfigurationError("SVC", "kernel", kernel, "unknown kernel")
	}
}
