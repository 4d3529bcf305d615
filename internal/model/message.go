package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	TextMessageType  = "text"
	ImageMessageType = "image"
	FileMessageType  = "file"

	MaxContentLength = 1000
)

type MessageList []Message

type Message struct {
	ID             string      `db:"id" bson:"_id" json:"id"`
	ConversationID string      `db:"conversation_id" bson:"conversation_id" json:"conversationId"`
	SenderID       string      `db:"sender_id" bson:"sender_id" json:"senderId"`
	ReceiverID     string      `db:"receiver_id" bson:"receiver_id" json:"receiverId"`
	Content        string      `db:"content" bson:"content" json:"content"`
	MessageType    string      `db:"message_type" bson:"message_type" json:"messageType"`
	Attachments    Attachments `db:"attachments" bson:"attachments" json:"attachments"`
	RelatedSkillID *string     `db:"related_skill_id" bson:"related_skill_id,omitempty" json:"relatedSkill,omitempty"`
	IsRead         bool        `db:"is_read" bson:"is_read" json:"isRead"`
	ReadAt         *time.Time  `db:"read_at" bson:"read_at,omitempty" json:"readAt,omitempty"`
	IsSeen         bool        `db:"is_seen" bson:"is_seen" json:"isSeen"`
	SeenAt         *time.Time  `db:"seen_at" bson:"seen_at,omitempty" json:"seenAt,omitempty"`
	CreatedAt      time.Time   `db:"created_at" bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `db:"updated_at" bson:"updated_at" json:"updatedAt"`
}

// PopulatedMessage is a message expanded with the display data of both participants.
type PopulatedMessage struct {
	Message
	Sender   Participant `json:"sender"`
	Receiver Participant `json:"receiver"`
}

type Attachment struct {
	Filename string `bson:"filename" json:"filename"`
	URL      string `bson:"url" json:"url"`
	Size     int64  `bson:"size" json:"size"`
	Type     string `bson:"type" json:"type"`
}

// Attachments is stored as a jsonb column.
type Attachments []Attachment

func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

func (a *Attachments) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*a = Attachments{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported attachments type %T", src)
	}

	return json.Unmarshal(data, a)
}

// SendMessageParams is what a sender supplies, whichever path the message arrives on.
type SendMessageParams struct {
	ReceiverID     string
	Content        string
	RelatedSkillID *string
	MessageType    string
	Attachments    Attachments
}
