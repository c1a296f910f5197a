package persona

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDoc = `
operator: Shaun
intro: Freelance web developer.
services:
  - Custom websites
tiers:
  - name: Starter Website
    price: $700
    bullets:
      - Up to 5 pages
      - Mobile-responsive design
guidelines:
  - Keep answers short.
`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "persona.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	return path
}

func TestLoadAndPreamble(t *testing.T) {
	doc, err := Load(writeDoc(t, sampleDoc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	preamble := doc.Preamble()
	for _, want := range []string{"Shaun", "Starter Website", "$700", "Keep answers short."} {
		if !strings.Contains(preamble, want) {
			t.Errorf("preamble missing %q:\n%s", want, preamble)
		}
	}
}

func TestLoadRejectsMissingOperator(t *testing.T) {
	if _, err := Load(writeDoc(t, "intro: hello")); err == nil {
		t.Errorf("expected error for document without operator")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
