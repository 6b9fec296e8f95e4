package loaders

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultAperture is the lens aperture given to cameras read from scene files
const DefaultAperture = 0.01

// SceneOptions controls how a scene file is turned into a scene
type SceneOptions struct {
	AspectRatio float64 // Image width / height, used to shape the camera viewport
	BaseDir     string  // Directory texture paths are resolved against

	// LoadTexture decodes texture files; nil uses LoadTexture
	LoadTexture func(path string) (*material.Texture, error)
}

// ParseError reports a malformed scene file
type ParseError struct {
	Line int    // 1-based line number, 0 when the input ended early
	Msg  string // What was wrong
	Err  error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// sceneParser reads the scene file one significant line at a time
type sceneParser struct {
	scanner *bufio.Scanner
	line    int
	opts    SceneOptions
}

// LoadScene reads a scene file from disk. Relative texture paths are resolved
// against the scene file's directory unless opts.BaseDir is set.
func LoadScene(ctx context.Context, filename string, opts SceneOptions) (*scene.Scene, error) {
	tracer := otel.Tracer("go-whitted-raytracer/loaders")
	var span trace.Span
	_, span = tracer.Start(ctx, "LoadScene")
	defer span.End()
	span.SetAttributes(attribute.String("filename", filename))

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Dir(filename)
	}

	s, err := ParseScene(file, opts)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("while parsing %s: %w", filename, err)
	}
	span.SetAttributes(attribute.Int64("primitives", int64(s.GetPrimitiveCount())))
	return s, nil
}

// ParseScene reads a scene description. Blank lines and lines starting with
// '#' are ignored. The returned scene has passed Validate.
func ParseScene(r io.Reader, opts SceneOptions) (*scene.Scene, error) {
	if opts.AspectRatio <= 0 {
		return nil, fmt.Errorf("aspect ratio must be positive, got %v", opts.AspectRatio)
	}
	if opts.LoadTexture == nil {
		opts.LoadTexture = LoadTexture
	}

	p := &sceneParser{scanner: bufio.NewScanner(r), opts: opts}
	s := &scene.Scene{}

	steps := []func(*scene.Scene) error{
		p.parseCamera,
		p.parseLights,
		p.parsePigments,
		p.parseFinishings,
		p.parseObjects,
	}
	for _, step := range steps {
		if err := step(s); err != nil {
			return nil, err
		}
	}

	if err := s.Validate(); err != nil {
		return nil, &ParseError{Msg: "invalid scene", Err: err}
	}
	return s, nil
}

// next returns the fields of the next significant line
func (p *sceneParser) next(what string) ([]string, error) {
	for p.scanner.Scan() {
		p.line++
		line := strings.TrimSpace(p.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.Fields(line), nil
	}
	if err := p.scanner.Err(); err != nil {
		return nil, &ParseError{Line: p.line, Msg: "error reading input", Err: err}
	}
	return nil, &ParseError{Msg: fmt.Sprintf("unexpected end of input, expected %s", what)}
}

func (p *sceneParser) errorf(format string, args ...interface{}) error {
	return &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

// floats reads exactly n numbers from the next line
func (p *sceneParser) floats(what string, n int) ([]float64, error) {
	fields, err := p.next(what)
	if err != nil {
		return nil, err
	}
	if len(fields) != n {
		return nil, p.errorf("%s needs %d values, got %d", what, n, len(fields))
	}
	return p.parseFloats(what, fields)
}

func (p *sceneParser) parseFloats(what string, fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, &ParseError{Line: p.line, Msg: fmt.Sprintf("invalid %s value %q", what, f), Err: err}
		}
		values[i] = v
	}
	return values, nil
}

// count reads a non-negative record count on its own line
func (p *sceneParser) count(what string) (int, error) {
	fields, err := p.next(what + " count")
	if err != nil {
		return 0, err
	}
	if len(fields) != 1 {
		return 0, p.errorf("%s count must be a single integer", what)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, p.errorf("invalid %s count %q", what, fields[0])
	}
	return n, nil
}

func vec(values []float64) core.Vec3 {
	return core.NewVec3(values[0], values[1], values[2])
}

func (p *sceneParser) parseCamera(s *scene.Scene) error {
	eye, err := p.floats("camera eye", 3)
	if err != nil {
		return err
	}
	target, err := p.floats("camera target", 3)
	if err != nil {
		return err
	}
	up, err := p.floats("camera up", 3)
	if err != nil {
		return err
	}
	fov, err := p.floats("field of view", 1)
	if err != nil {
		return err
	}
	if fov[0] <= 0 || fov[0] >= 180 {
		return p.errorf("field of view must be in (0, 180), got %v", fov[0])
	}

	config := geometry.CameraConfig{
		Eye:         vec(eye),
		Target:      vec(target),
		Up:          vec(up),
		VFov:        fov[0],
		AspectRatio: p.opts.AspectRatio,
		Aperture:    DefaultAperture,
	}
	back := config.Eye.Subtract(config.Target)
	if back.LengthSquared() == 0 {
		return p.errorf("camera eye and target coincide")
	}
	if config.Up.Cross(back).LengthSquared() == 0 {
		return p.errorf("camera up is parallel to the view direction")
	}

	s.Camera = geometry.NewCamera(config)
	return nil
}

// parseLights reads the light block. The first light is the ambient light and
// only its color is used.
func (p *sceneParser) parseLights(s *scene.Scene) error {
	n, err := p.count("light")
	if err != nil {
		return err
	}
	if n == 0 {
		return p.errorf("scene needs at least the ambient light")
	}

	for i := 0; i < n; i++ {
		values, err := p.floats("light", 9)
		if err != nil {
			return err
		}
		position, color := vec(values[0:3]), vec(values[3:6])
		if i == 0 {
			s.Lights = append(s.Lights, lights.NewAmbientLight(color))
			continue
		}
		s.Lights = append(s.Lights, lights.NewPointLight(position, color, values[6], values[7], values[8]))
	}
	return nil
}

func (p *sceneParser) parsePigments(s *scene.Scene) error {
	n, err := p.count("pigment")
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		fields, err := p.next("pigment")
		if err != nil {
			return err
		}

		var pigment material.Pigment
		switch kind := fields[0]; kind {
		case "solid":
			if len(fields) != 4 {
				return p.errorf("solid pigment needs 3 values, got %d", len(fields)-1)
			}
			values, err := p.parseFloats("solid pigment", fields[1:])
			if err != nil {
				return err
			}
			pigment = material.NewSolidPigment(vec(values))

		case "checker":
			if len(fields) != 8 {
				return p.errorf("checker pigment needs 7 values, got %d", len(fields)-1)
			}
			values, err := p.parseFloats("checker pigment", fields[1:])
			if err != nil {
				return err
			}
			checker, err := material.NewCheckerPigment(vec(values[0:3]), vec(values[3:6]), values[6])
			if err != nil {
				return &ParseError{Line: p.line, Msg: "invalid checker pigment", Err: err}
			}
			pigment = checker

		case "texmap", "textmap":
			if len(fields) != 2 {
				return p.errorf("texture pigment needs a file name")
			}
			pigment, err = p.parseTexture(fields[1])
			if err != nil {
				return err
			}

		default:
			return p.errorf("unknown pigment type %q", kind)
		}

		s.Pigments = append(s.Pigments, pigment)
	}
	return nil
}

// parseTexture loads the texture file and reads the two projection lines
func (p *sceneParser) parseTexture(name string) (material.Pigment, error) {
	line := p.line
	path := name
	if !filepath.IsAbs(path) && p.opts.BaseDir != "" {
		path = filepath.Join(p.opts.BaseDir, path)
	}

	projU, err := p.floats("texture U projection", 4)
	if err != nil {
		return nil, err
	}
	projV, err := p.floats("texture V projection", 4)
	if err != nil {
		return nil, err
	}

	texture, err := p.opts.LoadTexture(path)
	if err != nil {
		return nil, &ParseError{Line: line, Msg: fmt.Sprintf("cannot load texture %q", name), Err: err}
	}

	return material.NewTexturePigment(texture,
		material.Projection{A: projU[0], B: projU[1], C: projU[2], D: projU[3]},
		material.Projection{A: projV[0], B: projV[1], C: projV[2], D: projV[3]},
	), nil
}

func (p *sceneParser) parseFinishings(s *scene.Scene) error {
	n, err := p.count("finishing")
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		v, err := p.floats("finishing", 7)
		if err != nil {
			return err
		}
		if v[6] <= 0 {
			return p.errorf("index of refraction must be positive, got %v", v[6])
		}
		s.Finishings = append(s.Finishings, material.NewFinishing(v[0], v[1], v[2], v[3], v[4], v[5], v[6]))
	}
	return nil
}

func (p *sceneParser) parseObjects(s *scene.Scene) error {
	n, err := p.count("object")
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		fields, err := p.next("object")
		if err != nil {
			return err
		}
		if len(fields) < 3 {
			return p.errorf("object needs pigment index, finishing index and type")
		}

		pigment, finishing, err := p.materials(s, fields[0], fields[1])
		if err != nil {
			return err
		}

		var shape geometry.Shape
		switch kind := fields[2]; kind {
		case "sphere":
			if len(fields) != 7 {
				return p.errorf("sphere needs center and radius, got %d values", len(fields)-3)
			}
			values, err := p.parseFloats("sphere", fields[3:])
			if err != nil {
				return err
			}
			sphere, err := geometry.NewSphere(vec(values[0:3]), values[3])
			if err != nil {
				return &ParseError{Line: p.line, Msg: "invalid sphere", Err: err}
			}
			shape = sphere

		case "polyhedron":
			if len(fields) != 4 {
				return p.errorf("polyhedron needs a face count")
			}
			faceCount, err := strconv.Atoi(fields[3])
			if err != nil || faceCount < 1 {
				return p.errorf("invalid face count %q", fields[3])
			}
			shape, err = p.parsePolyhedron(faceCount)
			if err != nil {
				return err
			}

		default:
			return p.errorf("unknown object type %q", kind)
		}

		s.Primitives = append(s.Primitives, scene.NewPrimitive(shape, pigment, finishing))
	}
	return nil
}

// materials resolves the pigment and finishing indices of an object
func (p *sceneParser) materials(s *scene.Scene, pigmentField, finishingField string) (material.Pigment, *material.Finishing, error) {
	pi, err := strconv.Atoi(pigmentField)
	if err != nil || pi < 0 || pi >= len(s.Pigments) {
		return nil, nil, p.errorf("pigment index %q out of range [0, %d)", pigmentField, len(s.Pigments))
	}
	fi, err := strconv.Atoi(finishingField)
	if err != nil || fi < 0 || fi >= len(s.Finishings) {
		return nil, nil, p.errorf("finishing index %q out of range [0, %d)", finishingField, len(s.Finishings))
	}
	return s.Pigments[pi], s.Finishings[fi], nil
}

func (p *sceneParser) parsePolyhedron(faceCount int) (*geometry.Polyhedron, error) {
	// faceCount is untrusted, so the slice grows with the faces actually read
	var faces []geometry.Face
	for j := 0; j < faceCount; j++ {
		v, err := p.floats("face", 4)
		if err != nil {
			return nil, err
		}
		face, err := geometry.NewFace(v[0], v[1], v[2], v[3])
		if err != nil {
			return nil, &ParseError{Line: p.line, Msg: "invalid face", Err: err}
		}
		faces = append(faces, face)
	}
	return geometry.NewPolyhedron(faces)
}
