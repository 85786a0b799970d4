package theme

import (
	"bytes"
	"strings"
	"testing"
)

func TestBannerNamesTool(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	if !strings.Contains(buf.String(), "TRUSTSCOPE") {
		t.Fatalf("banner missing name: %q", buf.String())
	}
}

func TestColorize(t *testing.T) {
	if got := Colorize("unknown", "x"); got != "x" {
		t.Fatalf("unknown class should pass through, got %q", got)
	}
	got := Colorize("danger", "x")
	if !strings.HasPrefix(got, red) || !strings.HasSuffix(got, reset) {
		t.Fatalf("expected red wrap, got %q", got)
	}
}
