package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// unitCube is the cube [-0.5, 0.5]^3 written as six half-spaces
func unitCube(t *testing.T) *Polyhedron {
	t.Helper()
	planes := [][4]float64{
		{1, 0, 0, -0.5},
		{-1, 0, 0, -0.5},
		{0, 1, 0, -0.5},
		{0, -1, 0, -0.5},
		{0, 0, 1, -0.5},
		{0, 0, -1, -0.5},
	}
	faces := make([]Face, 0, len(planes))
	for _, p := range planes {
		face, err := NewFace(p[0], p[1], p[2], p[3])
		if err != nil {
			t.Fatalf("NewFace: %v", err)
		}
		faces = append(faces, face)
	}
	poly, err := NewPolyhedron(faces)
	if err != nil {
		t.Fatalf("NewPolyhedron: %v", err)
	}
	return poly
}

func TestNewFace_Degenerate(t *testing.T) {
	_, err := NewFace(0, 0, 0, 1)
	if !errors.Is(err, ErrDegenerateFace) {
		t.Errorf("Expected ErrDegenerateFace, got %v", err)
	}
}

func TestFace_OrientAway(t *testing.T) {
	// z <= 1 written the wrong way round: -z + 1 <= 0 excludes the origin
	face, err := NewFace(0, 0, -1, 1)
	if err != nil {
		t.Fatal(err)
	}

	oriented := face.OrientAway(core.NewVec3(0, 0, 0))
	if oriented.Normal() != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected normal (0,0,1), got %v", oriented.Normal())
	}
	if !oriented.Contains(core.NewVec3(0, 0, 0)) {
		t.Error("Expected interior point to be contained after orientation")
	}

	// Already correct faces are untouched
	if again := oriented.OrientAway(core.NewVec3(0, 0, 0)); again != oriented {
		t.Errorf("Expected no change, got %+v", again)
	}
}

func TestFace_PointInPlane(t *testing.T) {
	face, _ := NewFace(0, 2, 0, -4) // y = 2
	p := face.PointInPlane()
	if math.Abs(face.SignedDistance(p)) > 1e-12 {
		t.Errorf("Expected point on plane, got signed distance %f", face.SignedDistance(p))
	}
	if p != core.NewVec3(0, 2, 0) {
		t.Errorf("Expected (0,2,0), got %v", p)
	}
}

func TestPolyhedron_Hit(t *testing.T) {
	cube := unitCube(t)

	tests := []struct {
		name           string
		origin         core.Vec3
		direction      core.Vec3
		expectHit      bool
		expectedT      float64
		expectedNormal core.Vec3
		expectedFront  bool
	}{
		{
			name:           "outside through center reports entry face",
			origin:         core.NewVec3(0, 0, 5),
			direction:      core.NewVec3(0, 0, -1),
			expectHit:      true,
			expectedT:      4.5,
			expectedNormal: core.NewVec3(0, 0, 1),
			expectedFront:  true,
		},
		{
			name:           "outside along x reports entry face",
			origin:         core.NewVec3(-3, 0.1, 0.2),
			direction:      core.NewVec3(2, 0, 0),
			expectHit:      true,
			expectedT:      1.25,
			expectedNormal: core.NewVec3(-1, 0, 0),
			expectedFront:  true,
		},
		{
			name:           "inside reports exit face with flipped normal",
			origin:         core.NewVec3(0, 0, 0),
			direction:      core.NewVec3(0, 1, 0),
			expectHit:      true,
			expectedT:      0.5,
			expectedNormal: core.NewVec3(0, -1, 0),
			expectedFront:  false,
		},
		{
			name:      "miss beside the cube",
			origin:    core.NewVec3(2, 0, 5),
			direction: core.NewVec3(0, 0, -1),
			expectHit: false,
		},
		{
			name:      "parallel to a face and outside it",
			origin:    core.NewVec3(0, 1, 5),
			direction: core.NewVec3(0, 0, -1),
			expectHit: false,
		},
		{
			name:      "pointing away from the cube",
			origin:    core.NewVec3(0, 0, 5),
			direction: core.NewVec3(0, 0, 1),
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := cube.Hit(core.NewRay(tt.origin, tt.direction), core.Epsilon, core.Infinity)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			// Reported normal always opposes the incoming ray
			if hit.Normal.Dot(tt.direction) >= 0 {
				t.Errorf("Normal %v does not face the ray direction %v", hit.Normal, tt.direction)
			}
		})
	}
}

func TestPolyhedron_Hit_RespectsTMax(t *testing.T) {
	cube := unitCube(t)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	if _, isHit := cube.Hit(ray, core.Epsilon, 4.0); isHit {
		t.Error("Expected miss when entry lies beyond tMax")
	}
}

func TestPolyhedron_Hit_UnboundedIsMiss(t *testing.T) {
	// A single half-space y <= 0 is never exited by a downward ray
	floor, err := NewFace(0, 1, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	poly, _ := NewPolyhedron([]Face{floor})
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	if _, isHit := poly.Hit(ray, core.Epsilon, core.Infinity); isHit {
		t.Error("Expected miss for an unbounded intersection along the ray")
	}
}

func TestNewAxisAlignedBox(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(1, 2, 3), core.NewVec3(0.5, 1, 2))

	if !box.Contains(core.NewVec3(1, 2, 3)) {
		t.Error("Expected box to contain its center")
	}
	if box.Contains(core.NewVec3(1.6, 2, 3)) {
		t.Error("Expected point beyond the right face to be outside")
	}

	ray := core.NewRay(core.NewVec3(1, 10, 3), core.NewVec3(0, -1, 0))
	hit, isHit := box.Hit(ray, core.Epsilon, core.Infinity)
	if !isHit {
		t.Fatal("Expected hit on top face")
	}
	if math.Abs(hit.T-7) > 1e-9 {
		t.Errorf("Expected t=7, got %f", hit.T)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-9 {
		t.Errorf("Expected normal (0,1,0), got %v", hit.Normal)
	}
}

func TestNewPolyhedron_RequiresFaces(t *testing.T) {
	if _, err := NewPolyhedron(nil); err == nil {
		t.Error("Expected error for polyhedron without faces")
	}
}
