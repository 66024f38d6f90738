package plocbvh

import (
	"math"
	"testing"
)

func TestSafeInverseRegularValue(t *testing.T) {
	if got := safeInverse(2); got != 0.5 {
		t.Fatalf("safeInverse(2) = %v, want 0.5", got)
	}
}

func TestSafeInverseAvoidsInfinityAtZero(t *testing.T) {
	got := safeInverse(0)
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Fatalf("safeInverse(0) = %v, want a large finite value", got)
	}
	if got <= 0 {
		t.Fatalf("safeInverse(0) = %v, want positive", got)
	}
}

func TestSafeInverseNegativeZero(t *testing.T) {
	got := safeInverse(-0.0)
	if got <= 0 {
		t.Fatalf("safeInverse(-0.0) = %v, want positive (treats -0 as non-negative)", got)
	}
}

func TestNewRayComputesInvDirection(t *testing.T) {
	r := NewRay(vec3(0, 0, 0), vec3(2, 0, 0), 0, 10)
	if r.InvDirection.X != 0.5 {
		t.Fatalf("InvDirection.X = %v, want 0.5", r.InvDirection.X)
	}
	if r.Tmin != 0 || r.Tmax != 10 {
		t.Fatalf("Tmin/Tmax = %v/%v, want 0/10", r.Tmin, r.Tmax)
	}
}

func TestNewInfiniteRayHasInfiniteTmax(t *testing.T) {
	r := NewInfiniteRay(vec3(0, 0, 0), vec3(1, 0, 0))
	if !math.IsInf(r.Tmax, 1) {
		t.Fatalf("Tmax = %v, want +Inf", r.Tmax)
	}
	if r.Tmin != 0 {
		t.Fatalf("Tmin = %v, want 0", r.Tmin)
	}
}
