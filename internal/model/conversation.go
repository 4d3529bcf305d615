package model

import (
	"time"
)

type ConversationSummaryList []ConversationSummary

type ConversationSummary struct {
	ConversationID string      `json:"conversationId"`
	OtherUser      Participant `json:"otherUser"`
	LastMessage    LastMessage `json:"lastMessage"`
	UnreadCount    int         `json:"unreadCount"`
}

type LastMessage struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	IsRead    bool      `json:"isRead"`
	IsSeen    bool      `json:"isSeen"`
}

// ConversationHistory is what a user gets when opening a conversation.
type ConversationHistory struct {
	ConversationID string
	Messages       MessageList
	OtherUser      Participant
	MarkedRead     int64
	ReadAt         time.Time
}

// SeenReceipt is the outcome of marking a conversation seen.
type SeenReceipt struct {
	ConversationID string
	OtherUserID    string
	Count          int64
	SeenAt         time.Time
}
