package service

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/skills-messenger/internal/config"
	"github.com/s21platform/skills-messenger/internal/model"
	"github.com/s21platform/skills-messenger/internal/pkg/validator"
	"github.com/s21platform/skills-messenger/pkg/messenger"
)

const maxPresenceBatch = 500

type Service struct {
	store    MessageStore
	presence PresenceLookup
}

func New(store MessageStore, presence PresenceLookup) *Service {
	return &Service{
		store:    store,
		presence: presence,
	}
}

func (s *Service) GetUnreadCount(ctx context.Context, _ *messenger.GetUnreadCountIn) (*messenger.GetUnreadCountOut, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("GetUnreadCount")

	userUUID, ok := ctx.Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to find uuid")
		return nil, status.Error(codes.Unauthenticated, "failed to find uuid")
	}

	count, err := s.store.UnreadCount(ctx, userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to count unread messages: %v", err))
		return nil, toStatus(err, "failed to count unread messages")
	}

	return &messenger.GetUnreadCountOut{UnreadCount: count}, nil
}

func (s *Service) GetConversations(ctx context.Context, _ *messenger.GetConversationsIn) (*messenger.GetConversationsOut, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("GetConversations")

	userUUID, ok := ctx.Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to find uuid")
		return nil, status.Error(codes.Unauthenticated, "failed to find uuid")
	}

	summaries, err := s.store.ListUserConversations(ctx, userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to get conversations: %v", err))
		return nil, toStatus(err, "failed to get conversations")
	}

	conversations := make([]messenger.Conversation, len(summaries))
	for i, summary := range summaries {
		conversations[i] = messenger.Conversation{
			ConversationID:     summary.ConversationID,
			OtherUserUUID:      summary.OtherUser.ID,
			OtherUserName:      summary.OtherUser.Name,
			LastMessageContent: summary.LastMessage.Content,
			LastMessageAt:      summary.LastMessage.CreatedAt,
			UnreadCount:        int64(summary.UnreadCount),
		}
	}

	return &messenger.GetConversationsOut{Conversations: conversations}, nil
}

func (s *Service) GetPresence(ctx context.Context, in *messenger.GetPresenceIn) (*messenger.GetPresenceOut, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("GetPresence")

	if len(in.UserUUIDs) > maxPresenceBatch {
		return nil, status.Errorf(codes.InvalidArgument, "at most %d users per request", maxPresenceBatch)
	}

	ids := make([]string, len(in.UserUUIDs))
	for i, id := range in.UserUUIDs {
		ids[i] = validator.Canonical(id)
	}

	online, err := s.presence.Online(ctx, ids)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to get presence: %v", err))
		return nil, status.Error(codes.Internal, "failed to get presence")
	}

	// answer under the ids the caller asked for
	out := make(map[string]bool, len(ids))
	for i, id := range in.UserUUIDs {
		out[id] = online[ids[i]]
	}

	return &messenger.GetPresenceOut{Online: out}, nil
}

func toStatus(err error, msg string) error {
	switch {
	case errors.Is(err, model.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, model.ErrNotAuthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	default:
		return status.Error(codes.Internal, msg)
	}
}
