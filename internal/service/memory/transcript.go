package memory

import (
	"strings"

	"github.com/samber/lo"
	"github.com/sandevgo/haven/internal/core"
)

// conversationWindow returns the last n user/companion messages that carry text.
func conversationWindow(messages []core.Message, n int) []core.Message {
	conv := lo.Filter(messages, func(m core.Message, _ int) bool {
		return m.IsConversation() && strings.TrimSpace(m.Content) != ""
	})
	if len(conv) > n {
		conv = conv[len(conv)-n:]
	}
	return conv
}

func formatTranscript(window []core.Message) string {
	var b strings.Builder
	for _, m := range window {
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteByte('\n')
	}
	return b.String()
}

// toLLMMessages maps chat roles onto the analysis wire roles.
func toLLMMessages(window []core.Message) []core.LLMMessage {
	return lo.Map(window, func(m core.Message, _ int) core.LLMMessage {
		role := core.RoleAssistant
		if m.IsUser() {
			role = core.RoleUser
		}
		return core.LLMMessage{Role: role, Content: m.Content}
	})
}

func lastMessageIDs(messages []core.Message, n int) []string {
	ids := lo.FilterMap(messages, func(m core.Message, _ int) (string, bool) {
		return m.ID, m.ID != ""
	})
	if len(ids) > n {
		ids = ids[len(ids)-n:]
	}
	return ids
}
