package memory

import (
	"testing"

	"github.com/sandevgo/haven/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestScheduler_ShouldExtract(t *testing.T) {
	mixed := append(conversation(4, "I keep worrying about work deadlines"), conversation(1, "ok thanks")...)
	threeMeaningful := append(conversation(3, "I keep worrying about work deadlines"), conversation(2, "not really sure")...)
	freshShort := append(meaningfulConversation(5), conversation(5, "fine")...)

	tests := []struct {
		name     string
		messages []core.Message
		baseline int
		expected bool
	}{
		{name: "no messages", messages: nil, expected: false},
		{name: "four new meaningful messages", messages: meaningfulConversation(4), expected: false},
		{name: "five new meaningful messages", messages: meaningfulConversation(5), expected: true},
		{name: "five new one-word messages", messages: conversation(5, "yes"), expected: false},
		{name: "five new two-word messages", messages: conversation(5, "not sure"), expected: false},
		{name: "four meaningful and one short", messages: mixed, expected: true},
		{name: "three-word messages are not meaningful", messages: threeMeaningful, expected: false},
		{name: "baseline leaves too few new messages", messages: meaningfulConversation(7), baseline: 5, expected: false},
		{name: "baseline with enough new messages", messages: meaningfulConversation(10), baseline: 5, expected: true},
		{name: "only the new messages are judged", messages: freshShort, baseline: 5, expected: false},
		{name: "negative baseline counts from zero", messages: meaningfulConversation(5), baseline: -1, expected: true},
		{name: "baseline beyond the history", messages: meaningfulConversation(3), baseline: 9, expected: false},
	}

	s := NewScheduler(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ShouldExtract(tt.messages, core.ExtractionMetadata{MessageCount: tt.baseline})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestScheduler_CompanionMessagesDoNotCount(t *testing.T) {
	var msgs []core.Message
	for i := 0; i < 5; i++ {
		msgs = append(msgs,
			core.Message{Role: core.RoleUser, Content: "hi"},
			core.Message{Role: core.RoleSystem, Content: "Tell me more about how your week has been going"},
		)
	}
	assert.False(t, NewScheduler(DefaultConfig()).ShouldExtract(msgs, core.ExtractionMetadata{}))
}

func TestScheduler_RequiredMeaningful(t *testing.T) {
	assert.Equal(t, 4, NewScheduler(DefaultConfig()).requiredMeaningful())
}
