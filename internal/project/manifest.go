package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ScriptExt is the extension of setslice scripts.
const ScriptExt = ".sl"

var (
	// ErrPackageSectionMissing reports a manifest without [package].
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing reports an empty [package].name.
	ErrPackageNameMissing = errors.New("missing [package].name")
	// ErrRunSectionMissing reports a manifest without [run].
	ErrRunSectionMissing = errors.New("missing [run]")
	// ErrRunMainMissing reports an empty [run].main.
	ErrRunMainMissing = errors.New("missing [run].main")
)

// Manifest is a loaded setslice.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package     PackageConfig     `toml:"package"`
	Run         RunConfig         `toml:"run"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Cache       CacheConfig       `toml:"cache"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type RunConfig struct {
	Main string `toml:"main"`
}

type DiagnosticsConfig struct {
	// Max caps the number of diagnostics kept per file; 0 means the CLI default.
	Max    int    `toml:"max,omitempty"`
	Format string `toml:"format,omitempty"` // pretty|json
}

type CacheConfig struct {
	// Enabled defaults to true when the key is absent.
	Enabled *bool `toml:"enabled,omitempty"`
}

// CacheEnabled reports whether the parse cache may be used.
func (c Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

// DefaultConfig is what `setslice init` writes.
func DefaultConfig(name string) Config {
	enabled := true
	return Config{
		Package:     PackageConfig{Name: name},
		Run:         RunConfig{Main: "main" + ScriptExt},
		Diagnostics: DiagnosticsConfig{Max: 100, Format: "pretty"},
		Cache:       CacheConfig{Enabled: &enabled},
	}
}

// Load finds setslice.toml above startDir and decodes it. ok is false when
// no manifest exists.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if !meta.IsDefined("run") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrRunSectionMissing)
	}
	if !meta.IsDefined("run", "main") || strings.TrimSpace(cfg.Run.Main) == "" {
		return Config{}, fmt.Errorf("%s: %w", path, ErrRunMainMissing)
	}
	if cfg.Diagnostics.Max < 0 {
		return Config{}, fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	switch cfg.Diagnostics.Format {
	case "", "pretty", "json":
	default:
		return Config{}, fmt.Errorf("%s: [diagnostics].format must be pretty or json, got %q", path, cfg.Diagnostics.Format)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	return cfg, nil
}

// MainPath resolves [run].main against the project root. The script must
// stay inside the root and carry the .sl extension.
func (m *Manifest) MainPath() (string, error) {
	if m == nil {
		return "", fmt.Errorf("missing project manifest")
	}
	mainRel := strings.TrimSpace(m.Config.Run.Main)
	if filepath.IsAbs(mainRel) {
		return "", fmt.Errorf("%s: [run].main %q must be relative", m.Path, mainRel)
	}
	mainPath := filepath.Join(m.Root, filepath.FromSlash(mainRel))
	if !pathWithin(m.Root, mainPath) {
		return "", fmt.Errorf("%s: [run].main %q escapes the project root", m.Path, mainRel)
	}
	if filepath.Ext(mainPath) != ScriptExt {
		return "", fmt.Errorf("%s: [run].main must be a %s file", m.Path, ScriptExt)
	}
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [run].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [run].main: %w", m.Path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: [run].main is a directory: %s", m.Path, mainPath)
	}
	return mainPath, nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}
