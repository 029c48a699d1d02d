package datasets

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMakeClassification(t *testing.T) {
	X, y, err := MakeClassification(100, 4, 3.0, 42)
	if err != nil {
		t.Fatalf("MakeClassification() error = %v", err)
	}

	r, c := X.Dims()
	if r != 100 || c != 4 {
		t.Errorf("X dims = %dx%d, want 100x4", r, c)
	}
	yr, yc := y.Dims()
	if yr != 100 || yc != 1 {
		t.Errorf("y dims = %dx%d, want 100x1", yr, yc)
	}

	n0, n1 := 0, 0
	for i := 0; i < yr; i++ {
		switch y.At(i, 0) {
		case 0:
			n0++
		case 1:
			n1++
		default:
			t.Fatalf("unexpected label %v", y.At(i, 0))
		}
	}
	if n0 == 0 || n1 == 0 {
		t.Errorf("expected both classes present, got %d/%d", n0, n1)
	}
}

func TestMakeClassificationDeterministic(t *testing.T) {
	X1, y1, err := MakeClassification(50, 3, 2.0, 7)
	if err != nil {
		t.Fatalf("MakeClassification() error = %v", err)
	}
	X2, y2, err := MakeClassification(50, 3, 2.0, 7)
	if err != nil {
		t.Fatalf("MakeClassification() error = %v", err)
	}

	if !mat.Equal(X1, X2) || !mat.Equal(y1, y2) {
		t.Error("same seed produced different datasets")
	}
}

func TestMakeCirclesValidation(t *testing.T) {
	if _, _, err := MakeCircles(10, 1.5, 0.05, 1); err == nil {
		t.Error("expected error for factor outside (0, 1)")
	}
	X, y, err := MakeCircles(40, 0.4, 0.02, 1)
	if err != nil {
		t.Fatalf("MakeCircles() error = %v", err)
	}
	if r, c := X.Dims(); r != 40 || c != 2 {
		t.Errorf("X dims = %dx%d, want 40x2", r, c)
	}
	if r, _ := y.Dims(); r != 40 {
		t.Errorf("y rows = %d, want 40", r)
	}
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	content := "a,b,label\n1.0,2.0,0\n3.0,4.0,1\n5.5,6.5,1\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	X, y, err := LoadCSV(path, 2, true)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	if r, c := X.Dims(); r != 3 || c != 2 {
		t.Fatalf("X dims = %dx%d, want 3x2", r, c)
	}
	if got := X.At(2, 1); got != 6.5 {
		t.Errorf("X[2,1] = %v, want 6.5", got)
	}
	if got := y.At(1, 0); got != 1 {
		t.Errorf("y[1] = %v, want 1", got)
	}
}

func TestLoadCSVErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(bad, []byte("1.0,x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadCSV(bad, 1, false); err == nil {
		t.Error("expected parse error for non-numeric field")
	}

	if _, _, err := LoadCSV(filepath.Join(dir, "missing.csv"), 0, false); err == nil {
		t.Error("expected error for missing file")
	}

	ok := filepath.Join(dir, "ok.csv")
	if err := os.WriteFile(ok, []byte("1.0,0\n2.0,1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadCSV(ok, 5, false); err == nil {
		t.Error("expected error for label column out of range")
	}
}
