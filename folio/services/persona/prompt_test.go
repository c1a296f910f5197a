package persona

import (
	"strings"
	"testing"

	"folio/folio/utils/types"
)

func TestBuildPromptOrdering(t *testing.T) {
	preamble := "PREAMBLE BLOCK"
	msgs := []types.Message{
		{Role: "user", Content: "A"},
		{Role: "assistant", Content: "B"},
		{Role: "user", Content: "C"},
	}
	prompt := BuildPrompt(preamble, msgs)

	if strings.Count(prompt, preamble) != 1 {
		t.Errorf("expected preamble exactly once, got %d", strings.Count(prompt, preamble))
	}
	if !strings.HasPrefix(prompt, preamble) {
		t.Errorf("expected prompt to start with preamble")
	}

	iA := strings.Index(prompt, "User: A")
	iB := strings.Index(prompt, "Assistant: B")
	iC := strings.Index(prompt, "User: C")
	if iA == -1 || iB == -1 || iC == -1 {
		t.Fatalf("missing labeled turns in prompt:\n%s", prompt)
	}
	if !(iA < iB && iB < iC) {
		t.Errorf("turns out of order: %d %d %d", iA, iB, iC)
	}
	if !strings.HasSuffix(prompt, "Assistant:") {
		t.Errorf("expected open assistant cue at end, got %q", prompt[len(prompt)-20:])
	}
}

func TestBuildPromptToleratesConsecutiveRoles(t *testing.T) {
	msgs := []types.Message{
		{Role: "user", Content: "first"},
		{Role: "user", Content: "second"},
	}
	prompt := BuildPrompt("p", msgs)
	if !strings.Contains(prompt, "User: first\nUser: second") {
		t.Errorf("consecutive same-role turns should pass through unchanged:\n%s", prompt)
	}
}

func TestNormalizeRole(t *testing.T) {
	cases := map[string]string{
		"User":      "user",
		"ASSISTANT": "assistant",
		"model":     "assistant",
		"system":    "system",
	}
	for in, want := range cases {
		if got := NormalizeRole(in); got != want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRoleLabelDefaultsToUser(t *testing.T) {
	if roleLabel("something-else") != "User" {
		t.Errorf("unknown roles should render as User lines")
	}
	if roleLabel("model") != "Assistant" {
		t.Errorf("model should render as an Assistant line")
	}
}
