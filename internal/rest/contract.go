//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package rest

import (
	"context"

	"github.com/s21platform/skills-messenger/internal/model"
)

type MessageStore interface {
	Append(ctx context.Context, senderID string, params model.SendMessageParams) (*model.PopulatedMessage, error)
	OpenConversation(ctx context.Context, userID, otherID string) (*model.ConversationHistory, error)
	ListUserConversations(ctx context.Context, userID string) (model.ConversationSummaryList, error)
	MarkRead(ctx context.Context, messageID, actingUser string) (*model.Message, bool, error)
	MarkSeenBulk(ctx context.Context, conversationID, actingUser string) (*model.SeenReceipt, error)
	Delete(ctx context.Context, messageID, actingUser string) (*model.Message, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type Relay interface {
	Notify(userID string, event model.Event) bool
}

type Presence interface {
	IsOnline(userID string) bool
}

type JWTGenerator interface {
	GenerateConnectToken(userID string) (string, int64, error)
}
