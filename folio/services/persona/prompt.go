package persona

import (
	"strings"

	"folio/folio/utils/types"
)

// NormalizeRole lowercases a role and maps the backend's "model" label to
// "assistant". Unknown roles pass through.
func NormalizeRole(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	if r == "model" {
		return types.RoleAssistant
	}
	return r
}

func roleLabel(role string) string {
	if NormalizeRole(role) == types.RoleAssistant {
		return "Assistant"
	}
	return "User"
}

// BuildPrompt renders the preamble followed by the transcript as labeled
// lines, terminated by an open assistant cue so the model continues the
// conversation. Consecutive same-role turns are kept as-is.
func BuildPrompt(preamble string, msgs []types.Message) string {
	var sb strings.Builder
	sb.WriteString(preamble)
	sb.WriteString("\n\nConversation so far:\n")
	for _, m := range msgs {
		sb.WriteString(roleLabel(m.Role))
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("Assistant:")
	return sb.String()
}
