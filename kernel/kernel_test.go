package kernel

import (
	"testing"

	"github.com/merybenavente/ragsearch-engine/ragerr"
)

func TestNormalize(t *testing.T) {
	v, err := Normalize([]float32{3, 4})
	if err != nil {
		t.Fatalf("Normalize(3,4) failed: %v", err)
	}
	if !IsUnit(v) {
		t.Fatalf("Normalize(3,4) = %v, want unit vector", v)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	_, err := Normalize([]float32{0, 0, 0})
	if !ragerr.Is(err, ragerr.KindDegenerateVector) {
		t.Fatalf("Normalize(0,0,0) error = %v, want DegenerateVector", err)
	}
}

func TestCosineOrthogonal(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	if sim := Cosine(a, b); sim != 0 {
		t.Fatalf("Cosine(a,b) = %v, want 0", sim)
	}
}

func TestCosineIdentical(t *testing.T) {
	a := []float32{1, 0}
	if sim := Cosine(a, a); sim != 1 {
		t.Fatalf("Cosine(a,a) = %v, want 1", sim)
	}
}

func TestCosineDistance(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	if d := CosineDistance(a, b); d != 1 {
		t.Fatalf("CosineDistance(a,b) = %v, want 1", d)
	}
}
