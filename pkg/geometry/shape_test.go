package geometry

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

func TestShapeList_ClosestHitWins(t *testing.T) {
	near := material.NewLambertian(core.NewRGB(1, 0, 0))
	far := material.NewLambertian(core.NewRGB(0, 0, 1))

	farSphere := NewSphere(core.NewVec3(0, 0, -10), 1, far)
	nearSphere := NewSphere(core.NewVec3(0, 0, -3), 1, near)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	orders := map[string]*ShapeList{
		"near first": NewShapeList(nearSphere, farSphere),
		"far first":  NewShapeList(farSphere, nearSphere),
	}

	for name, list := range orders {
		t.Run(name, func(t *testing.T) {
			hit, isHit := list.Hit(ray, 0.001, math32.Inf(1))
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math32.Abs(hit.T-2) > 1e-5 {
				t.Errorf("Expected t=2, got %f", hit.T)
			}
			if hit.Material != near {
				t.Error("Expected the nearer sphere's material")
			}
		})
	}
}

func TestShapeList_RespectsInterval(t *testing.T) {
	list := NewShapeList(
		NewSphere(core.NewVec3(0, 0, -3), 1, testMaterial),
		NewSphere(core.NewVec3(0, 0, -10), 1, testMaterial),
	)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// Roots are 2, 4, 9 and 11; only the far sphere's exit is above 10
	hit, isHit := list.Hit(ray, 10, 100)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math32.Abs(hit.T-11) > 1e-4 {
		t.Errorf("Expected t=11, got %f", hit.T)
	}

	if _, isHit := list.Hit(ray, 0.001, 1.5); isHit {
		t.Error("Expected miss when tMax is before every root")
	}
}

func TestShapeList_Empty(t *testing.T) {
	list := NewShapeList()
	if list.Len() != 0 {
		t.Fatalf("Expected empty list, got %d shapes", list.Len())
	}
	if _, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math32.Inf(1)); isHit {
		t.Error("Empty list should never be hit")
	}

	list.Add(NewSphere(core.NewVec3(0, 0, -2), 0.5, testMaterial))
	if list.Len() != 1 {
		t.Errorf("Expected 1 shape after Add, got %d", list.Len())
	}
}
