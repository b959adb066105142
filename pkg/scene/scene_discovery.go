package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
)

// ErrUnknownScene is returned when a name matches neither a built-in scene nor a scene file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a scene that can be rendered by name
type SceneInfo struct {
	ID          string `json:"id"`                 // Name passed to NewScene
	DisplayName string `json:"displayName"`        // UI display name
	Description string `json:"description"`        // Optional description
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to the scene file (file type only)
}

type builtinScene struct {
	info   SceneInfo
	create func() *Scene
}

var builtinScenes = []builtinScene{
	{SceneInfo{ID: "default", DisplayName: "Default Scene", Description: "Ground sphere, diffuse center sphere and two metal spheres", Type: "builtin"}, NewDefaultScene},
	{SceneInfo{ID: "glass", DisplayName: "Glass", Description: "Hollow glass sphere next to diffuse and gold spheres", Type: "builtin"}, NewGlassScene},
	{SceneInfo{ID: "ground", DisplayName: "Ground", Description: "Single diffuse ground sphere under open sky", Type: "builtin"}, NewGroundScene},
	{SceneInfo{ID: "plane", DisplayName: "Plane", Description: "Sphere on an infinite plane in front of a quad mirror", Type: "builtin"}, NewPlaneScene},
}

// NewScene resolves name to a built-in scene, or loads it as a scene file
// when it ends in .yaml, .yml or .toml
func NewScene(name string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.create(), nil
		}
	}

	if loaders.IsSceneFile(name) {
		s, err := NewFileScene(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load scene %q: %w", name, err)
		}
		return s, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		scenes = append(scenes, b.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// ListFileScenes scans dir for scene files. A missing directory yields no scenes.
// Files that fail to parse are skipped and reported through logger.
func ListFileScenes(dir string, logger core.Logger) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return []SceneInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !loaders.IsSceneFile(entry.Name()) {
			continue
		}

		filePath := filepath.Join(dir, entry.Name())
		desc, err := loaders.LoadSceneFile(filePath)
		if err != nil {
			if logger != nil {
				logger.Printf("Warning: skipping scene file %s: %v", filePath, err)
			}
			continue
		}

		displayName := desc.Name
		if displayName == strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())) {
			displayName = titleCase(displayName)
		}

		scenes = append(scenes, SceneInfo{
			ID:          filePath,
			DisplayName: displayName,
			Description: desc.Description,
			Type:        "file",
			FilePath:    filePath,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ListAllScenes returns the built-in scenes followed by the scene files in dir
func ListAllScenes(dir string, logger core.Logger) ([]SceneInfo, error) {
	fileScenes, err := ListFileScenes(dir, logger)
	if err != nil {
		return nil, err
	}
	return append(ListScenes(), fileScenes...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
