package source

import (
	"path/filepath"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc\r\n"))
	if string(out) != "a\nb\rc\n" || !changed {
		t.Fatalf("got %q changed=%v", out, changed)
	}
	out, changed = normalizeCRLF([]byte("plain\n"))
	if string(out) != "plain\n" || changed {
		t.Fatalf("got %q changed=%v", out, changed)
	}
}

func TestRemoveBOM(t *testing.T) {
	out, had := removeBOM([]byte("\xEF\xBB\xBFx"))
	if string(out) != "x" || !had {
		t.Fatalf("got %q had=%v", out, had)
	}
	out, had = removeBOM([]byte("xy"))
	if string(out) != "xy" || had {
		t.Fatalf("got %q had=%v", out, had)
	}
}

func TestRelativePath(t *testing.T) {
	base := t.TempDir()
	inside := filepath.Join(base, "dir", "file.sl")
	rel, err := RelativePath(inside, base)
	if err != nil {
		t.Fatal(err)
	}
	if rel != "dir/file.sl" {
		t.Errorf("inside: got %q", rel)
	}

	outside := filepath.Join(filepath.Dir(base), "elsewhere.sl")
	rel, err = RelativePath(outside, base)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := AbsolutePath(outside)
	if rel != want {
		t.Errorf("outside: got %q, want %q", rel, want)
	}
}
