package model

import (
	"encoding/json"
	"time"
)

// Inbound realtime events.
const (
	EventAuthenticate   = "authenticate"
	EventPrivateMessage = "private_message"
	EventMarkAsSeen     = "mark_as_seen"
	EventMarkAsRead     = "mark_as_read"
	EventTyping         = "typing"
)

// Outbound realtime events.
const (
	EventNewMessage               = "new_message"
	EventMessageSent              = "message_sent"
	EventMessageError             = "message_error"
	EventMessagesSeen             = "messages_seen"
	EventMessagesSeenConfirmation = "messages_seen_confirmation"
	EventMessageRead              = "message_read"
	EventMessagesRead             = "messages_read"
	EventMessageDeleted           = "message_deleted"
	EventUserTyping               = "user_typing"
	EventUserOnline               = "userOnline"
	EventUserOffline              = "userOffline"
	EventOnlineUsers              = "onlineUsers"
)

// InboundEvent is a frame received from a client. Data is decoded per Type.
type InboundEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Event is a frame sent to a client.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type AuthenticatePayload struct {
	Token string `json:"token"`
}

type PrivateMessagePayload struct {
	ReceiverID   string      `json:"receiverId"`
	Content      string      `json:"content"`
	RelatedSkill *string     `json:"relatedSkill,omitempty"`
	MessageType  string      `json:"messageType,omitempty"`
	Attachments  Attachments `json:"attachments,omitempty"`
}

type MarkAsSeenPayload struct {
	ConversationID string `json:"conversationId"`
}

type MarkAsReadPayload struct {
	MessageID string `json:"messageId"`
}

type TypingPayload struct {
	ReceiverID string `json:"receiverId"`
	IsTyping   bool   `json:"isTyping"`
}

type NewMessageData struct {
	Message        PopulatedMessage `json:"message"`
	ConversationID string           `json:"conversationId"`
}

type MessageSentData struct {
	Message PopulatedMessage `json:"message"`
}

type MessageErrorData struct {
	Error string `json:"error"`
	Event string `json:"event,omitempty"`
}

type MessagesSeenData struct {
	ConversationID string    `json:"conversationId"`
	SeenAt         time.Time `json:"seenAt"`
}

type MessagesSeenConfirmationData struct {
	ConversationID string `json:"conversationId"`
	SeenCount      int64  `json:"seenCount"`
}

type MessageReadData struct {
	MessageID      string     `json:"messageId"`
	ConversationID string     `json:"conversationId"`
	ReadAt         *time.Time `json:"readAt"`
}

// MessagesReadData tells a sender that the receiver opened the conversation and read its backlog.
type MessagesReadData struct {
	ConversationID string    `json:"conversationId"`
	ReadCount      int64     `json:"readCount"`
	ReadAt         time.Time `json:"readAt"`
}

type MessageDeletedData struct {
	MessageID      string `json:"messageId"`
	ConversationID string `json:"conversationId"`
}

type UserTypingData struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

type PresenceData struct {
	UserID string `json:"userId"`
}

type OnlineUsersData struct {
	UserIDs []string `json:"userIds"`
}

// MessageEvent is published to the message topic after a durable change.
type MessageEvent struct {
	Type           string    `json:"type"`
	MessageID      string    `json:"message_id,omitempty"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id,omitempty"`
	ReceiverID     string    `json:"receiver_id"`
	Count          int64     `json:"count,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

const (
	MessageEventSent    = "message.sent"
	MessageEventRead    = "message.read"
	MessageEventSeen    = "message.seen"
	MessageEventDeleted = "message.deleted"
)
