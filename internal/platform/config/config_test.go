package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	perr "taupe/internal/platform/errors"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	api := root.Prefix("TAUPE_API_")
	if got := api.key("ADDR"); got != "TAUPE_API_ADDR" {
		t.Fatalf("key() = %q, want %q", got, "TAUPE_API_ADDR")
	}
	// nested prefix
	rl := api.Prefix("RATE_")
	if got := rl.key("BURST"); got != "TAUPE_API_RATE_BURST" {
		t.Fatalf("nested key() = %q, want %q", got, "TAUPE_API_RATE_BURST")
	}
}

func TestMayString(t *testing.T) {
	c := New().Prefix("S_")
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q, want %q", got, "def")
	}
	t.Setenv("S_NAME", " taupe ")
	if got := c.MayString("NAME", "x"); got != "taupe" {
		t.Fatalf("MayString value = %q, want %q", got, "taupe")
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("I_")
	if got := c.MayInt("MISSING", 9); got != 9 {
		t.Fatalf("MayInt default = %d, want 9", got)
	}
	t.Setenv("I_OK", " 12 ")
	if got := c.MayInt("OK", 0); got != 12 {
		t.Fatalf("MayInt = %d, want 12", got)
	}
	t.Setenv("I_BAD", "x")
	if got := c.MayInt("BAD", 5); got != 5 {
		t.Fatalf("MayInt invalid = %d, want 5", got)
	}
}

func TestMayFloat64(t *testing.T) {
	c := New().Prefix("F_")
	t.Setenv("F_RATE", "0.5")
	if got := c.MayFloat64("RATE", 1); got != 0.5 {
		t.Fatalf("MayFloat64 = %v, want 0.5", got)
	}
	t.Setenv("F_BAD", "fast")
	if got := c.MayFloat64("BAD", 2); got != 2 {
		t.Fatalf("MayFloat64 invalid = %v, want 2", got)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("B_")
	t.Setenv("B_ON", "true")
	if !c.MayBool("ON", false) {
		t.Fatalf("MayBool true expected")
	}
	t.Setenv("B_BAD", "perhaps")
	if !c.MayBool("BAD", true) {
		t.Fatalf("MayBool invalid should return default")
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("D_")
	t.Setenv("D_TIMEOUT", " 250ms ")
	if got := c.MayDuration("TIMEOUT", time.Second); got != 250*time.Millisecond {
		t.Fatalf("MayDuration = %v, want 250ms", got)
	}
	t.Setenv("D_BAD", "soon")
	if got := c.MayDuration("BAD", time.Second); got != time.Second {
		t.Fatalf("MayDuration invalid = %v, want 1s", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("C_")
	t.Setenv("C_ORIGINS", " https://a.example , ,https://b.example ")
	got := c.MayCSV("ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("MayCSV = %#v", got)
	}
	t.Setenv("C_EMPTY", " , ")
	if got := c.MayCSV("EMPTY", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV empty = %#v", got)
	}
}

type settings struct {
	Extract   string `yaml:"extract"`
	Canonical bool   `yaml:"canonical_urls"`
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("extract: likes\ncanonical_urls: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := LoadYAML[settings](good)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if s.Extract != "likes" || !s.Canonical {
		t.Fatalf("LoadYAML = %+v", s)
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadYAML[settings](empty); err != nil {
		t.Fatalf("empty file should decode to zero value, got %v", err)
	}

	if s, err := LoadYAML[settings](""); err != nil || s != (settings{}) {
		t.Fatalf("empty path should yield zero value, got %+v %v", s, err)
	}

	typo := filepath.Join(dir, "typo.yaml")
	if err := os.WriteFile(typo, []byte("extrakt: likes\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadYAML[settings](typo); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("unknown key should be invalid argument, got %v", err)
	}

	if _, err := LoadYAML[settings](filepath.Join(dir, "missing.yaml")); !perr.IsCode(err, perr.ErrorCodeFile) {
		t.Fatalf("missing file should be a file error, got %v", err)
	}
}
