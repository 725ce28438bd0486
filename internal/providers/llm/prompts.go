package llm

import (
	"fmt"
	"strings"

	"github.com/sandevgo/haven/internal/core"
)

const analystSystemPrompt = "You analyse conversations between a user and a supportive wellness companion. " +
	"You never diagnose and you never give advice. Output only what is asked for."

func buildExtractionPrompt(transcript string) string {
	return fmt.Sprintf(`Identify durable patterns about the user in the conversation below.
Output format: JSON list of objects {category, content, confidence}.
Categories: [automatic_thoughts, emotions, behaviors, values_goals, strengths, life_context].
Rules:
1. Only patterns that recur or matter beyond this conversation; ignore greetings and small talk.
2. content is one self-contained sentence about the user, written in third person without a name.
3. confidence is a number between 0 and 1.
4. Output [] when nothing qualifies.
Conversation:
%s`, transcript)
}

func buildSummaryPrompt(transcript string) string {
	return fmt.Sprintf(`Summarize the conversation below in two to four plain sentences.
Cover the topics the user raised, how they seemed to feel and anything they decided to try.
Do not quote the user and do not use markdown.
Conversation:
%s`, transcript)
}

func buildConsolidationPrompt(summaries []string) string {
	var b strings.Builder
	for i, s := range summaries {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return fmt.Sprintf(`The following are summaries of earlier sessions with the same user, newest first.
Write one plain paragraph describing the recurring themes and how they changed over time.
Do not use markdown.
Sessions:
%s`, b.String())
}

// formatConversation renders messages as "ROLE: content" lines.
func formatConversation(messages []core.LLMMessage) string {
	var b strings.Builder
	for _, m := range messages {
		b.WriteString(strings.ToUpper(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteByte('\n')
	}
	return b.String()
}
