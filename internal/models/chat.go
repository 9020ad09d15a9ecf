package models

// Chat roles used in the displayed history
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry of the displayed conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatReply is the outcome of one chat turn
type ChatReply struct {
	Intent Intent `json:"intent"`
	Query  string `json:"query,omitempty"`
	Answer string `json:"answer"`
}
