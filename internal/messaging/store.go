// Package messaging is the message store: durable messages, receipts and derived conversations.
// Both the HTTP API and the realtime gateway go through it.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/skills-messenger/internal/config"
	"github.com/s21platform/skills-messenger/internal/model"
	"github.com/s21platform/skills-messenger/internal/pkg/conversation"
)

type Store struct {
	repository DBRepo
	publisher  EventPublisher
	validator  Validator
	now        func() time.Time
}

func New(repo DBRepo, publisher EventPublisher, validator Validator) *Store {
	return &Store{
		repository: repo,
		publisher:  publisher,
		validator:  validator,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Append persists a new message from senderID and returns it with both participants populated.
func (s *Store) Append(ctx context.Context, senderID string, params model.SendMessageParams) (*model.PopulatedMessage, error) {
	senderID, err := s.validator.ValidateUserID(senderID)
	if err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}
	if err := s.validator.ValidateSendMessage(senderID, &params); err != nil {
		return nil, err
	}

	attachments := params.Attachments
	if attachments == nil {
		attachments = model.Attachments{}
	}

	now := s.now()
	message := model.Message{
		ID:             uuid.NewString(),
		ConversationID: conversation.Key(senderID, params.ReceiverID),
		SenderID:       senderID,
		ReceiverID:     params.ReceiverID,
		Content:        params.Content,
		MessageType:    params.MessageType,
		Attachments:    attachments,
		RelatedSkillID: params.RelatedSkillID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var populated *model.PopulatedMessage
	err = s.repository.WithTx(ctx, func(ctx context.Context) error {
		receiver, err := s.repository.GetUser(ctx, params.ReceiverID)
		if err != nil {
			return fmt.Errorf("failed to get receiver: %w", err)
		}

		sender, err := s.participant(ctx, senderID)
		if err != nil {
			return fmt.Errorf("failed to get sender: %w", err)
		}

		if err := s.repository.SaveMessage(ctx, &message); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}

		populated = &model.PopulatedMessage{
			Message:  message,
			Sender:   sender,
			Receiver: receiver.Participant(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, model.MessageEvent{
		Type:           model.MessageEventSent,
		MessageID:      message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		ReceiverID:     message.ReceiverID,
		OccurredAt:     now,
	})

	return populated, nil
}

// ListConversation returns every message between userA and userB, oldest first.
func (s *Store) ListConversation(ctx context.Context, userA, userB string) (model.MessageList, error) {
	userA, err := s.validator.ValidateUserID(userA)
	if err != nil {
		return nil, err
	}
	userB, err = s.validator.ValidateUserID(userB)
	if err != nil {
		return nil, err
	}

	messages, err := s.repository.GetConversationMessages(ctx, conversation.Key(userA, userB))
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation messages: %w", err)
	}

	return messages, nil
}

// OpenConversation marks every unread message from otherID to userID as read and returns the history.
func (s *Store) OpenConversation(ctx context.Context, userID, otherID string) (*model.ConversationHistory, error) {
	userID, err := s.validator.ValidateUserID(userID)
	if err != nil {
		return nil, err
	}
	otherID, err = s.validator.ValidateUserID(otherID)
	if err != nil {
		return nil, err
	}

	key := conversation.Key(userID, otherID)
	now := s.now()

	history := &model.ConversationHistory{ConversationID: key, ReadAt: now}
	err = s.repository.WithTx(ctx, func(ctx context.Context) error {
		other, err := s.repository.GetUser(ctx, otherID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		history.OtherUser = other.Participant()

		history.MarkedRead, err = s.repository.MarkConversationRead(ctx, key, userID, now)
		if err != nil {
			return fmt.Errorf("failed to mark messages as read: %w", err)
		}

		history.Messages, err = s.ListConversation(ctx, userID, otherID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if history.MarkedRead > 0 {
		s.publish(ctx, model.MessageEvent{
			Type:           model.MessageEventRead,
			ConversationID: key,
			SenderID:       otherID,
			ReceiverID:     userID,
			Count:          history.MarkedRead,
			OccurredAt:     now,
		})
	}

	return history, nil
}

// ListUserConversations groups the user's messages by conversation, most recent conversation first.
func (s *Store) ListUserConversations(ctx context.Context, userID string) (model.ConversationSummaryList, error) {
	userID, err := s.validator.ValidateUserID(userID)
	if err != nil {
		return nil, err
	}

	messages, err := s.repository.GetUserMessages(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user messages: %w", err)
	}

	summaries := make(model.ConversationSummaryList, 0)
	index := make(map[string]int)
	for _, m := range messages {
		i, ok := index[m.ConversationID]
		if !ok {
			other := m.ReceiverID
			if m.SenderID != userID {
				other = m.SenderID
			}

			summaries = append(summaries, model.ConversationSummary{
				ConversationID: m.ConversationID,
				OtherUser:      model.Participant{ID: other},
				LastMessage:    lastMessage(m),
			})
			i = len(summaries) - 1
			index[m.ConversationID] = i
		} else if m.CreatedAt.After(summaries[i].LastMessage.CreatedAt) {
			summaries[i].LastMessage = lastMessage(m)
		}

		if m.ReceiverID == userID && !m.IsRead {
			summaries[i].UnreadCount++
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastMessage.CreatedAt.After(summaries[j].LastMessage.CreatedAt)
	})

	if len(summaries) == 0 {
		return summaries, nil
	}

	ids := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		ids = append(ids, summary.OtherUser.ID)
	}

	users, err := s.repository.GetUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range summaries {
		if u, ok := byID[summaries[i].OtherUser.ID]; ok {
			summaries[i].OtherUser = u.Participant()
		}
	}

	return summaries, nil
}

// MarkRead flips the read flag of one message addressed to actingUser.
// It reports whether this call changed the message; a message already read keeps its readAt.
func (s *Store) MarkRead(ctx context.Context, messageID, actingUser string) (*model.Message, bool, error) {
	messageID, err := s.validator.ValidateMessageID(messageID)
	if err != nil {
		return nil, false, err
	}
	actingUser, err = s.validator.ValidateUserID(actingUser)
	if err != nil {
		return nil, false, err
	}

	message, err := s.repository.GetMessage(ctx, messageID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get message: %w", err)
	}

	if message.ReceiverID != actingUser {
		return nil, false, fmt.Errorf("%w: not authorized to mark this message as read", model.ErrForbidden)
	}

	if message.IsRead {
		return message, false, nil
	}

	now := s.now()
	affected, err := s.repository.MarkMessageRead(ctx, messageID, now)
	if err != nil {
		return nil, false, fmt.Errorf("failed to mark message as read: %w", err)
	}

	if affected == 0 {
		// lost a race with another reader of the same message
		message, err = s.repository.GetMessage(ctx, messageID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to get message: %w", err)
		}
		return message, false, nil
	}

	message.IsRead = true
	message.ReadAt = &now
	message.UpdatedAt = now

	s.publish(ctx, model.MessageEvent{
		Type:           model.MessageEventRead,
		MessageID:      message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		ReceiverID:     message.ReceiverID,
		Count:          1,
		OccurredAt:     now,
	})

	return message, true, nil
}

// MarkSeenBulk marks every unseen message of the conversation addressed to actingUser as seen.
// The receipt carries the canonical conversation key and the participant to notify.
func (s *Store) MarkSeenBulk(ctx context.Context, conversationID, actingUser string) (*model.SeenReceipt, error) {
	conversationID, err := s.validator.ValidateConversationID(conversationID)
	if err != nil {
		return nil, err
	}
	actingUser, err = s.validator.ValidateUserID(actingUser)
	if err != nil {
		return nil, err
	}

	other, ok := conversation.Other(conversationID, actingUser)
	if !ok {
		return nil, fmt.Errorf("%w: not a participant of this conversation", model.ErrForbidden)
	}

	now := s.now()
	count, err := s.repository.MarkConversationSeen(ctx, conversationID, actingUser, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark messages as seen: %w", err)
	}

	if count > 0 {
		s.publish(ctx, model.MessageEvent{
			Type:           model.MessageEventSeen,
			ConversationID: conversationID,
			SenderID:       other,
			ReceiverID:     actingUser,
			Count:          count,
			OccurredAt:     now,
		})
	}

	return &model.SeenReceipt{
		ConversationID: conversationID,
		OtherUserID:    other,
		Count:          count,
		SeenAt:         now,
	}, nil
}

// Delete removes a message on behalf of its sender or receiver and returns the removed record.
func (s *Store) Delete(ctx context.Context, messageID, actingUser string) (*model.Message, error) {
	messageID, err := s.validator.ValidateMessageID(messageID)
	if err != nil {
		return nil, err
	}
	actingUser, err = s.validator.ValidateUserID(actingUser)
	if err != nil {
		return nil, err
	}

	message, err := s.repository.GetMessage(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	if message.SenderID != actingUser && message.ReceiverID != actingUser {
		return nil, fmt.Errorf("%w: not authorized to delete this message", model.ErrForbidden)
	}

	if err := s.repository.DeleteMessage(ctx, messageID); err != nil {
		return nil, fmt.Errorf("failed to delete message: %w", err)
	}

	s.publish(ctx, model.MessageEvent{
		Type:           model.MessageEventDeleted,
		MessageID:      message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		ReceiverID:     message.ReceiverID,
		OccurredAt:     s.now(),
	})

	return message, nil
}

func (s *Store) UnreadCount(ctx context.Context, userID string) (int64, error) {
	userID, err := s.validator.ValidateUserID(userID)
	if err != nil {
		return 0, err
	}

	count, err := s.repository.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func (s *Store) participant(ctx context.Context, userID string) (model.Participant, error) {
	user, err := s.repository.GetUser(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		// the directory may lag behind the identity provider
		return model.Participant{ID: userID}, nil
	}
	if err != nil {
		return model.Participant{}, err
	}
	return user.Participant(), nil
}

func (s *Store) publish(ctx context.Context, event model.MessageEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger := logger_lib.FromContext(ctx, config.KeyLogger)
		logger.Warn(fmt.Sprintf("failed to publish %s event: %v", event.Type, err))
	}
}

func lastMessage(m model.Message) model.LastMessage {
	return model.LastMessage{
		ID:        m.ID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		IsRead:    m.IsRead,
		IsSeen:    m.IsSeen,
	}
}
