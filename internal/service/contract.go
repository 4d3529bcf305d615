//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package service

import (
	"context"

	"github.com/s21platform/skills-messenger/internal/model"
)

type MessageStore interface {
	UnreadCount(ctx context.Context, userID string) (int64, error)
	ListUserConversations(ctx context.Context, userID string) (model.ConversationSummaryList, error)
}

type PresenceLookup interface {
	Online(ctx context.Context, userIDs []string) (map[string]bool, error)
}
