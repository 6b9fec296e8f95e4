package loaders

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const fullScene = `# Scene: Parser Fixture
# Description: every record type

0 0 0
0 0 -1
0 1 0
90

3
0 0 0   0.2 0.2 0.2   1 0 0
0 5 0   1 1 1         1 0.1 0.01
5 5 5   0.5 0.5 0.5   1 0 0

3
solid 0.8 0.3 0.3
checker 0 0 0  1 1 1  0.5
textmap wood.ppm
1 0 0 0
0 1 0 0

2
1 0 0 1 0 0 1
0.1 0.7 0.5 30 0.2 0.3 1.5

2
0 0 sphere 0 0 -3 1
1 1 polyhedron 6
 1  0  0 -1
-1  0  0 -1
 0  1  0 -1
 0 -1  0 -1
 0  0  1 -1
 0  0 -1 -1
`

func stubTexture(path string) (*material.Texture, error) {
	return material.NewTexture(1, 1, []core.Vec3{core.NewVec3(0.5, 0.25, 0)})
}

func TestParseScene(t *testing.T) {
	var loaded []string
	opts := SceneOptions{
		AspectRatio: 2,
		BaseDir:     "assets",
		LoadTexture: func(path string) (*material.Texture, error) {
			loaded = append(loaded, path)
			return stubTexture(path)
		},
	}

	s, err := ParseScene(strings.NewReader(fullScene), opts)
	if err != nil {
		t.Fatalf("ParseScene() error: %v", err)
	}

	// Camera uses the float aspect ratio: viewport twice as wide as tall
	if got := s.Camera.Horizontal.Length() / s.Camera.Vertical.Length(); math.Abs(got-2) > 1e-9 {
		t.Errorf("Expected viewport aspect 2, got %f", got)
	}
	if math.Abs(s.Camera.LensRadius-DefaultAperture/2) > 1e-12 {
		t.Errorf("Expected lens radius %f, got %f", DefaultAperture/2, s.Camera.LensRadius)
	}

	if len(s.Lights) != 3 {
		t.Fatalf("Expected 3 lights, got %d", len(s.Lights))
	}
	if s.Ambient().Color != core.NewVec3(0.2, 0.2, 0.2) {
		t.Errorf("Unexpected ambient color %v", s.Ambient().Color)
	}
	point := s.Lights[1].(*lights.PointLight)
	if point.Position != core.NewVec3(0, 5, 0) || point.Linear != 0.1 || point.Quadratic != 0.01 {
		t.Errorf("Unexpected point light %+v", point)
	}

	if len(s.Pigments) != 3 {
		t.Fatalf("Expected 3 pigments, got %d", len(s.Pigments))
	}
	if _, ok := s.Pigments[1].(*material.CheckerPigment); !ok {
		t.Errorf("Expected checker pigment, got %T", s.Pigments[1])
	}
	if _, ok := s.Pigments[2].(*material.TexturePigment); !ok {
		t.Errorf("Expected texture pigment, got %T", s.Pigments[2])
	}
	if len(loaded) != 1 || loaded[0] != filepath.Join("assets", "wood.ppm") {
		t.Errorf("Expected texture resolved against base dir, got %v", loaded)
	}

	if len(s.Finishings) != 2 || s.Finishings[1].IOR != 1.5 || s.Finishings[1].Alpha != 30 {
		t.Errorf("Unexpected finishings %+v", s.Finishings)
	}

	if s.GetPrimitiveCount() != 2 {
		t.Fatalf("Expected 2 primitives, got %d", s.GetPrimitiveCount())
	}
	sphere, ok := s.Primitives[0].Shape.(*geometry.Sphere)
	if !ok || sphere.Radius != 1 || sphere.Center != core.NewVec3(0, 0, -3) {
		t.Errorf("Unexpected sphere %+v", s.Primitives[0].Shape)
	}
	poly, ok := s.Primitives[1].Shape.(*geometry.Polyhedron)
	if !ok || len(poly.Faces) != 6 {
		t.Errorf("Unexpected polyhedron %+v", s.Primitives[1].Shape)
	}
	if s.Primitives[1].Pigment != s.Pigments[1] || s.Primitives[1].Finishing != s.Finishings[1] {
		t.Error("Expected polyhedron to share the indexed materials")
	}
}

func TestParseScene_Errors(t *testing.T) {
	header := "0 0 0\n0 0 -1\n0 1 0\n90\n"
	ambient := "1\n0 0 0 1 1 1 1 0 0\n"
	materials := "1\nsolid 1 1 1\n1\n1 0 0 1 0 0 1\n"

	tests := []struct {
		name     string
		input    string
		wantLine int
		wantMsg  string
	}{
		{"empty input", "", 0, "end of input"},
		{"short eye", "0 0\n", 1, "camera eye needs 3 values"},
		{"bad number", "0 0 x\n", 1, `invalid camera eye value "x"`},
		{"bad fov", "0 0 0\n0 0 -1\n0 1 0\n180\n", 4, "field of view"},
		{"up parallel to view", "0 0 0\n0 0 -1\n0 0 1\n90\n", 4, "parallel"},
		{"no lights", header + "0\n", 5, "ambient light"},
		{"short light", header + "1\n0 0 0 1 1 1\n", 6, "light needs 9 values"},
		{"unknown pigment", header + ambient + "1\nmarble 1 1 1\n", 8, `unknown pigment type "marble"`},
		{"zero checker", header + ambient + "1\nchecker 0 0 0 1 1 1 0\n", 8, "invalid checker pigment"},
		{"short finishing", header + ambient + "1\nsolid 1 1 1\n1\n1 0 0\n", 10, "finishing needs 7 values"},
		{"zero ior", header + ambient + "1\nsolid 1 1 1\n1\n1 0 0 1 0 0 0\n", 10, "index of refraction"},
		{"pigment index", header + ambient + materials + "1\n3 0 sphere 0 0 -1 1\n", 12, "pigment index"},
		{"finishing index", header + ambient + materials + "1\n0 -1 sphere 0 0 -1 1\n", 12, "finishing index"},
		{"unknown object", header + ambient + materials + "1\n0 0 torus 1 2\n", 12, `unknown object type "torus"`},
		{"zero radius", header + ambient + materials + "1\n0 0 sphere 0 0 -1 0\n", 12, "invalid sphere"},
		{"degenerate face", header + ambient + materials + "1\n0 0 polyhedron 1\n0 0 0 1\n", 13, "invalid face"},
		{"missing faces", header + ambient + materials + "1\n0 0 polyhedron 2\n1 0 0 -1\n", 0, "expected face"},
		{"huge face count", header + ambient + materials + "1\n0 0 polyhedron 1125899906842624\n1 0 0 -1\n", 0, "expected face"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene(strings.NewReader(tt.input), SceneOptions{AspectRatio: 1, LoadTexture: stubTexture})
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected *ParseError, got %v", err)
			}
			if parseErr.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d (%v)", parseErr.Line, tt.wantLine, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseScene_DegenerateFaceIsSentinel(t *testing.T) {
	input := "0 0 0\n0 0 -1\n0 1 0\n90\n1\n0 0 0 1 1 1 1 0 0\n1\nsolid 1 1 1\n1\n1 0 0 1 0 0 1\n1\n0 0 polyhedron 1\n0 0 0 1\n"
	_, err := ParseScene(strings.NewReader(input), SceneOptions{AspectRatio: 1})
	if !errors.Is(err, geometry.ErrDegenerateFace) {
		t.Errorf("Expected ErrDegenerateFace, got %v", err)
	}
}

func TestParseScene_TextureFailure(t *testing.T) {
	input := "0 0 0\n0 0 -1\n0 1 0\n90\n1\n0 0 0 1 1 1 1 0 0\n1\ntexmap nope.gif\n1 0 0 0\n0 1 0 0\n0\n0\n"
	_, err := ParseScene(strings.NewReader(input), SceneOptions{AspectRatio: 1, BaseDir: t.TempDir()})

	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Line != 8 {
		t.Fatalf("Expected ParseError on line 8, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected missing file to be reported, got %v", err)
	}
}

func TestParseScene_RejectsBadAspect(t *testing.T) {
	if _, err := ParseScene(strings.NewReader(fullScene), SceneOptions{}); err == nil {
		t.Error("Expected error for zero aspect ratio")
	}
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	input := strings.Replace(fullScene, "textmap wood.ppm", "textmap tex/wood.ppm", 1)
	path := filepath.Join(dir, "fixture.scene")
	if err := os.WriteFile(path, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "tex"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tex", "wood.ppm"), []byte("P3 1 1 255 200 100 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScene(context.Background(), path, SceneOptions{AspectRatio: 1})
	if err != nil {
		t.Fatalf("LoadScene() error: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Loaded scene invalid: %v", err)
	}

	// The metadata header is shared with scene discovery
	info, err := scene.ParseSceneMetadata(path)
	if err != nil || info.Name != "Parser Fixture" {
		t.Errorf("Unexpected metadata %+v (%v)", info, err)
	}

	if _, err := LoadScene(context.Background(), filepath.Join(dir, "missing.scene"), SceneOptions{AspectRatio: 1}); err == nil {
		t.Error("Expected error for missing scene file")
	}
}
