package model

// Role represents the role of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is one entry in a sender's conversation history. History lives in
// process memory only, keyed by the sender identifier; directive markers in
// assistant replies are stored verbatim.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
