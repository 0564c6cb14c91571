package entity

import "time"

// ChatTurn is a single message in a conversation.
type ChatTurn struct {
	Role      string    `json:"role"` // constant.ChatRoleUser | constant.ChatRoleAssistant
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatSession is the in-memory conversational state for one client
// session. Owned exclusively by the session repository; handed out only
// as history snapshots.
type ChatSession struct {
	Id         string     `json:"id"`
	Turns      []ChatTurn `json:"turns"`
	CreatedAt  time.Time  `json:"created_at"`
	LastActive time.Time  `json:"last_active"`
}
