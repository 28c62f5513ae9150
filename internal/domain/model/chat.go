package model

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry in the session-scoped assistant transcript.
// The transcript is ordered, append-only and not persisted across
// restarts.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
