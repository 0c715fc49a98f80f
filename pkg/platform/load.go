package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/xyhuang/mlbox/pkg/mlbox"
	"github.com/xyhuang/mlbox/pkg/schema"
)

// Load reads one platform configuration document and converts it through
// the schema.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read platform file: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := NewConfig()
	if err := cfg.FromPrimitive(doc); err != nil {
		return nil, fmt.Errorf("platform file %s: %w", path, err)
	}
	if cfg.SchemaType() != SchemaType {
		return nil, fmt.Errorf("platform file %s: schema_type %q, want %q",
			path, cfg.SchemaType(), SchemaType)
	}
	return cfg, nil
}

// Build computes the effective configuration for one box invocation.
// Layers, lowest precedence first: declared defaults, the box's own
// platform defaults (platforms/<name>.yaml, when present), then the
// user's platform file. When taskName is non-empty and the effective
// configuration declares an override for it, the override applies last.
func Build(box *mlbox.Box, platformPath, taskName string) (*Config, error) {
	user, err := Load(platformPath)
	if err != nil {
		return nil, err
	}

	cfg := NewConfig()
	cfg.Default()

	name := user.Platform().Name()
	if name == "" {
		name = DefaultPlatformName
	}
	boxFile := filepath.Join(box.PlatformsPath(), name+".yaml")
	if _, err := os.Stat(boxFile); err == nil {
		layer, err := Load(boxFile)
		if err != nil {
			return nil, err
		}
		if err := cfg.Merge(layer); err != nil {
			return nil, fmt.Errorf("merge box platform defaults: %w", err)
		}
		log.Debug().Str("file", boxFile).Msg("Merged box platform defaults")
	}

	if err := cfg.Merge(user); err != nil {
		return nil, fmt.Errorf("merge platform file: %w", err)
	}

	if taskName != "" {
		applied, err := cfg.ApplyOverride(taskName)
		if err != nil {
			return nil, fmt.Errorf("apply task override %q: %w", taskName, err)
		}
		if applied {
			log.Debug().Str("task", taskName).Msg("Applied task override")
		}
	}
	return cfg, nil
}

// ApplyOverride folds the named task's override into the receiver: its
// params merge into the params mapping, its env entries append to the
// container environment. Returns false when no override is declared.
func (c *Config) ApplyOverride(task string) (bool, error) {
	entry, ok := c.Overrides().Get(task)
	if !ok {
		return false, nil
	}
	ov := std(entry)
	if ov == nil {
		return false, nil
	}

	var envPrim any = []any{}
	if env := ov.Object("env"); env != nil {
		envPrim = env.Primitive()
	}
	overlay := NewConfig()
	if err := overlay.FromPrimitive(map[string]any{
		"params": ov.Val("params").Primitive(),
		"exec": map[string]any{
			"container": map[string]any{"env": envPrim},
		},
	}); err != nil {
		return false, err
	}
	if err := c.Merge(overlay); err != nil {
		return false, err
	}
	return true, nil
}

// Document projects the effective configuration to a mapping for JSON
// rendering.
func (c *Config) Document() map[string]any {
	doc, _ := c.Standard.Primitive().(map[string]any)
	return doc
}

var _ schema.Object = (*Config)(nil)
