package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[package]
name = "demo"

[run]
main = "scripts/main.sl"

[diagnostics]
max = 10
format = "json"
`)
	writeFile(t, filepath.Join(root, "scripts", "main.sl"), "print v;\n")
	nested := filepath.Join(root, "scripts", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	m, ok, err := Load(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, root, m.Root)
	require.Equal(t, "demo", m.Config.Package.Name)
	require.Equal(t, 10, m.Config.Diagnostics.Max)
	require.Equal(t, "json", m.Config.Diagnostics.Format)
	require.True(t, m.Config.CacheEnabled())

	mainPath, err := m.MainPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "scripts", "main.sl"), mainPath)

	gotRoot, ok, err := FindProjectRoot(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, root, gotRoot)
}

func TestLoadWithoutManifest(t *testing.T) {
	m, ok, err := Load(t.TempDir())
	// выше TempDir манифеста тоже быть не должно
	if ok {
		t.Skip("a setslice.toml exists above the temp dir")
	}
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		wantMsg string
	}{
		{name: "no package", content: "[run]\nmain = \"main.sl\"\n", wantErr: ErrPackageSectionMissing},
		{name: "empty name", content: "[package]\nname = \" \"\n[run]\nmain = \"main.sl\"\n", wantErr: ErrPackageNameMissing},
		{name: "no run", content: "[package]\nname = \"x\"\n", wantErr: ErrRunSectionMissing},
		{name: "no main", content: "[package]\nname = \"x\"\n[run]\n", wantErr: ErrRunMainMissing},
		{name: "bad format", content: "[package]\nname = \"x\"\n[run]\nmain = \"m.sl\"\n[diagnostics]\nformat = \"xml\"\n", wantMsg: "must be pretty or json"},
		{name: "negative max", content: "[package]\nname = \"x\"\n[run]\nmain = \"m.sl\"\n[diagnostics]\nmax = -1\n", wantMsg: "must not be negative"},
		{name: "unknown key", content: "[package]\nname = \"x\"\nversion = 2\n[run]\nmain = \"m.sl\"\n", wantMsg: "unknown key package.version"},
		{name: "broken toml", content: "[package\n", wantMsg: "failed to parse TOML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)

			_, err := LoadConfig(path)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				require.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestMainPathRejects(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "notes.txt"), "")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dir.sl"), 0o755))

	tests := map[string]string{
		"../outside.sl": "escapes the project root",
		"notes.txt":     "must be a .sl file",
		"missing.sl":    "does not exist",
		"dir.sl":        "is a directory",
	}
	for main, want := range tests {
		m := &Manifest{Path: filepath.Join(root, ManifestName), Root: root}
		m.Config.Run.Main = main
		_, err := m.MainPath()
		require.ErrorContains(t, err, want, main)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Encode(DefaultConfig("demo"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, string(data))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "demo", cfg.Package.Name)
	require.Equal(t, "main.sl", cfg.Run.Main)
	require.True(t, cfg.CacheEnabled())

	disabled := false
	cfg.Cache.Enabled = &disabled
	require.False(t, cfg.CacheEnabled())
}

func TestCacheKey(t *testing.T) {
	var content Digest
	content[0] = 1
	require.Equal(t, CacheKey(content, 1), CacheKey(content, 1))
	require.NotEqual(t, CacheKey(content, 1), CacheKey(content, 2))
	require.Len(t, CacheKey(content, 1).Hex(), 64)
}
