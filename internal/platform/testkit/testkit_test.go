package testkit

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"testing"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()

	MustPanic(t, func() {
		panic("boom")
	})
}

func TestMustContain(t *testing.T) {
	t.Parallel()

	MustContain(t, "alpha beta gamma", "beta")
}

func TestZip_RoundTripsMembersInOrder(t *testing.T) {
	t.Parallel()

	b := Zip(t, map[string]string{
		"data/tweets.js":  "tweets",
		"data/account.js": "account",
	})
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected 2 members got %d", len(zr.File))
	}
	if zr.File[0].Name != "data/account.js" || zr.File[1].Name != "data/tweets.js" {
		t.Fatalf("members not sorted: %s, %s", zr.File[0].Name, zr.File[1].Name)
	}
	rc, err := zr.File[1].Open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "tweets" {
		t.Fatalf("content = %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	p := WriteFile(t, "x.bin", []byte("abc"))
	got, err := os.ReadFile(p)
	if err != nil || string(got) != "abc" {
		t.Fatalf("ReadFile = %q, %v", got, err)
	}
}

var swapTarget = func() string { return "orig" }

func TestSwap_RestoresAfterSubtest(t *testing.T) {
	t.Run("swap", func(t *testing.T) {
		Swap(t, &swapTarget, func() string { return "swapped" })
		if got := swapTarget(); got != "swapped" {
			t.Fatalf("swap did not take effect, got %q", got)
		}
	})
	if got := swapTarget(); got != "orig" {
		t.Fatalf("swap did not restore original, got %q", got)
	}
}

func TestSerial_Reentrant(t *testing.T) {
	for i := 0; i < 2; i++ {
		t.Run("serial", func(t *testing.T) {
			Serial(t)
		})
	}
}
