package domain

import "time"

// ConversationMessage is one turn of an advisor conversation.
type ConversationMessage struct {
	Role      string
	Content   string
	CreatedAt time.Time
}
