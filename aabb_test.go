package plocbvh

import (
	"math"
	"testing"
)

func TestEmptyAabbUnionIdentity(t *testing.T) {
	e := EmptyAabb()
	box := Aabb{Min: vec3(1, 2, 3), Max: vec3(4, 5, 6)}
	got := e.Union(box)
	if got != box {
		t.Fatalf("EmptyAabb().Union(box) = %v, want %v", got, box)
	}
}

func TestAabbExtendGrowsToContainPoint(t *testing.T) {
	a := AabbFromPoint(vec3(0, 0, 0))
	a.Extend(vec3(-1, 2, 5))
	want := Aabb{Min: vec3(-1, 0, 0), Max: vec3(0, 2, 5)}
	if a != want {
		t.Fatalf("Extend result = %v, want %v", a, want)
	}
}

func TestAabbHalfArea(t *testing.T) {
	a := Aabb{Min: vec3(0, 0, 0), Max: vec3(1, 2, 3)}
	// d = (1,2,3); half-area = (1+2)*3 + 1*2 = 11
	if got := a.HalfArea(); got != 11 {
		t.Fatalf("HalfArea() = %v, want 11", got)
	}
}

func TestAabbRayIntersectHit(t *testing.T) {
	box := Aabb{Min: vec3(-1, -1, -1), Max: vec3(1, 1, 1)}
	ray := NewInfiniteRay(vec3(-5, 0, 0), vec3(1, 0, 0))
	got := box.RayIntersect(&ray)
	if got != 4 {
		t.Fatalf("RayIntersect() = %v, want 4", got)
	}
}

func TestAabbRayIntersectMiss(t *testing.T) {
	box := Aabb{Min: vec3(-1, -1, -1), Max: vec3(1, 1, 1)}
	ray := NewInfiniteRay(vec3(-5, 5, 0), vec3(1, 0, 0))
	got := box.RayIntersect(&ray)
	if !math.IsInf(got, 1) {
		t.Fatalf("RayIntersect() = %v, want +Inf", got)
	}
}

func TestAabbRayIntersectBehindOrigin(t *testing.T) {
	box := Aabb{Min: vec3(-1, -1, -1), Max: vec3(1, 1, 1)}
	ray := NewInfiniteRay(vec3(5, 0, 0), vec3(1, 0, 0))
	got := box.RayIntersect(&ray)
	if !math.IsInf(got, 1) {
		t.Fatalf("RayIntersect() = %v, want +Inf (box behind ray origin)", got)
	}
}
