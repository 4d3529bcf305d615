//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package realtime

import (
	"context"

	"github.com/s21platform/skills-messenger/internal/model"
)

type MessageStore interface {
	Append(ctx context.Context, senderID string, params model.SendMessageParams) (*model.PopulatedMessage, error)
	MarkRead(ctx context.Context, messageID, actingUser string) (*model.Message, bool, error)
	MarkSeenBulk(ctx context.Context, conversationID, actingUser string) (*model.SeenReceipt, error)
}

type TokenValidator interface {
	ValidateConnectToken(tokenString string) (*model.ConnectClaims, error)
}

type PresenceMirror interface {
	SetOnline(ctx context.Context, userID string) error
	SetOffline(ctx context.Context, userID string) error
	Refresh(ctx context.Context, userID string) error
}
