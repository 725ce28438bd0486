package core

import "time"

const (
	HavenName          = "haven"
	HavenUserAgent     = "Haven-Memory/0.1"
	HavenRepositoryURL = "https://github.com/sandevgo/haven"
	HavenVersion       = "0.1.0"
)

const (
	RoleUser = "user"
	// RoleSystem marks companion replies in the chat history.
	RoleSystem    = "system"
	RoleAssistant = "assistant"
)

type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// IsConversation reports whether the message is part of the user/companion exchange.
func (m Message) IsConversation() bool {
	return m.Role == RoleUser || m.Role == RoleSystem
}
