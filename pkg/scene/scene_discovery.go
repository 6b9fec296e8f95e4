package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneFileExt is the extension of scene description files
const SceneFileExt = ".scene"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by --scene
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the scene file (file type only)
}

// Builtin is a scene compiled into the binary
type Builtin struct {
	Info  SceneInfo
	Build func(aspectRatio float64) *Scene
}

var builtins = []Builtin{
	{
		Info:  SceneInfo{ID: "simple", Name: "Simple", Description: "Single matte sphere under white ambient light", Type: "builtin"},
		Build: NewSimpleScene,
	},
	{
		Info:  SceneInfo{ID: "default", Name: "Default Scene", Description: "Mirror, glass and matte objects on a checkered floor", Type: "builtin"},
		Build: NewDefaultScene,
	},
	{
		Info:  SceneInfo{ID: "glass", Name: "Glass", Description: "Glass sphere, hollow shell and octahedron in front of a checkered wall", Type: "builtin"},
		Build: NewGlassScene,
	},
	{
		Info:  SceneInfo{ID: "cornell", Name: "Cornell Box", Description: "Cornell box with a mirror sphere and a glass sphere", Type: "builtin"},
		Build: NewCornellScene,
	},
	{
		Info:  SceneInfo{ID: "spheregrid", Name: "Sphere Grid", Description: "10x10 grid of glossy rainbow-colored spheres", Type: "builtin"},
		Build: NewSphereGridScene,
	},
}

// Builtins returns the built-in scenes in display order
func Builtins() []Builtin {
	out := make([]Builtin, len(builtins))
	copy(out, builtins)
	return out
}

// LookupBuiltin finds a built-in scene by ID
func LookupBuiltin(id string) (Builtin, bool) {
	for _, b := range builtins {
		if b.Info.ID == id {
			return b, true
		}
	}
	return Builtin{}, false
}

// ListSceneFiles scans dir for scene files and returns their metadata sorted by name.
// A missing directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return []SceneInfo{}, nil
		}
		return nil, err
	}

	files, err := filepath.Glob(filepath.Join(dir, "*"+SceneFileExt))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata for %s: %w", filePath, err)
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneMetadata extracts metadata from the leading comment block of a
// scene file. Recognized keys are "# Scene:" and "# Description:".
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Type:     "file",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// Metadata only lives in the header
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		switch {
		case strings.HasPrefix(content, "Scene:"):
			info.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		case strings.HasPrefix(content, "Description:"):
			info.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		}
	}

	return info, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by the scene files in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	all := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		all = append(all, b.Info)
	}

	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(all, files...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
