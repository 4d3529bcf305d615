//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package messaging

import (
	"context"
	"time"

	"github.com/s21platform/skills-messenger/internal/model"
)

type DBRepo interface {
	SaveMessage(ctx context.Context, message *model.Message) error
	GetMessage(ctx context.Context, messageID string) (*model.Message, error)
	GetConversationMessages(ctx context.Context, conversationID string) (model.MessageList, error)
	GetUserMessages(ctx context.Context, userID string) (model.MessageList, error)
	MarkMessageRead(ctx context.Context, messageID string, readAt time.Time) (int64, error)
	MarkConversationRead(ctx context.Context, conversationID, receiverID string, readAt time.Time) (int64, error)
	MarkConversationSeen(ctx context.Context, conversationID, receiverID string, seenAt time.Time) (int64, error)
	DeleteMessage(ctx context.Context, messageID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
	GetUsers(ctx context.Context, userIDs []string) ([]model.User, error)

	WithTx(ctx context.Context, cb func(ctx context.Context) error) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event model.MessageEvent) error
}

type Validator interface {
	ValidateSendMessage(senderID string, params *model.SendMessageParams) error
	ValidateUserID(id string) (string, error)
	ValidateMessageID(id string) (string, error)
	ValidateConversationID(id string) (string, error)
}
