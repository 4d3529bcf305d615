package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/skills-messenger/internal/config"
	"github.com/s21platform/skills-messenger/internal/model"
	"github.com/s21platform/skills-messenger/internal/pkg/validator"
)

func (g *Gateway) handleAuthenticate(ctx context.Context, c *Client, data json.RawMessage) error {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("Authenticate")

	var payload model.AuthenticatePayload
	if err := decode(data, &payload); err != nil {
		return err
	}

	claims, err := g.tokens.ValidateConnectToken(payload.Token)
	if err != nil {
		return fmt.Errorf("%w: invalid token", model.ErrNotAuthenticated)
	}
	userID := validator.Canonical(claims.Subject)

	if current := c.UserID(); current != "" && current != userID {
		return fmt.Errorf("%w: connection is already bound to another user", model.ErrNotAuthenticated)
	}
	c.setUserID(userID)

	previous, cameOnline := g.registry.Connect(userID, c)
	if previous != nil && previous.ID() != c.ID() {
		logger.Info(fmt.Sprintf("connection %s of user %s superseded by %s", previous.ID(), userID, c.ID()))
	}

	if cameOnline {
		if err := g.mirror.SetOnline(ctx, userID); err != nil {
			logger.Warn(fmt.Sprintf("failed to mirror online presence of %s: %v", userID, err))
		}

		g.broadcast(userID, model.Event{
			Type: model.EventUserOnline,
			Data: model.PresenceData{UserID: userID},
		})
	}

	c.Send(model.Event{
		Type: model.EventOnlineUsers,
		Data: model.OnlineUsersData{UserIDs: g.registry.ListOnline(userID)},
	})

	return nil
}

func (g *Gateway) handlePrivateMessage(ctx context.Context, c *Client, data json.RawMessage) error {
	userID, err := authenticated(c)
	if err != nil {
		return err
	}

	var payload model.PrivateMessagePayload
	if err := decode(data, &payload); err != nil {
		return err
	}

	message, err := g.store.Append(ctx, userID, model.SendMessageParams{
		ReceiverID:     payload.ReceiverID,
		Content:        payload.Content,
		RelatedSkillID: payload.RelatedSkill,
		MessageType:    payload.MessageType,
		Attachments:    payload.Attachments,
	})
	if err != nil {
		return err
	}

	g.Notify(message.ReceiverID, model.Event{
		Type: model.EventNewMessage,
		Data: model.NewMessageData{Message: *message, ConversationID: message.ConversationID},
	})

	c.Send(model.Event{
		Type: model.EventMessageSent,
		Data: model.MessageSentData{Message: *message},
	})

	return nil
}

func (g *Gateway) handleMarkAsSeen(ctx context.Context, c *Client, data json.RawMessage) error {
	userID, err := authenticated(c)
	if err != nil {
		return err
	}

	var payload model.MarkAsSeenPayload
	if err := decode(data, &payload); err != nil {
		return err
	}

	receipt, err := g.store.MarkSeenBulk(ctx, payload.ConversationID, userID)
	if err != nil {
		return err
	}

	c.Send(model.Event{
		Type: model.EventMessagesSeenConfirmation,
		Data: model.MessagesSeenConfirmationData{ConversationID: receipt.ConversationID, SeenCount: receipt.Count},
	})

	g.Notify(receipt.OtherUserID, model.Event{
		Type: model.EventMessagesSeen,
		Data: model.MessagesSeenData{ConversationID: receipt.ConversationID, SeenAt: receipt.SeenAt},
	})

	return nil
}

func (g *Gateway) handleMarkAsRead(ctx context.Context, c *Client, data json.RawMessage) error {
	userID, err := authenticated(c)
	if err != nil {
		return err
	}

	var payload model.MarkAsReadPayload
	if err := decode(data, &payload); err != nil {
		return err
	}

	message, changed, err := g.store.MarkRead(ctx, payload.MessageID, userID)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	g.Notify(message.SenderID, model.Event{
		Type: model.EventMessageRead,
		Data: model.MessageReadData{
			MessageID:      message.ID,
			ConversationID: message.ConversationID,
			ReadAt:         message.ReadAt,
		},
	})

	return nil
}

func (g *Gateway) handleTyping(_ context.Context, c *Client, data json.RawMessage) error {
	userID, err := authenticated(c)
	if err != nil {
		return err
	}

	var payload model.TypingPayload
	if err := decode(data, &payload); err != nil {
		return err
	}
	if payload.ReceiverID == "" {
		return fmt.Errorf("%w: receiver is required", model.ErrValidation)
	}
	receiverID, err := uuid.Parse(payload.ReceiverID)
	if err != nil {
		return fmt.Errorf("%w: invalid receiver id '%s'", model.ErrValidation, payload.ReceiverID)
	}

	g.Notify(receiverID.String(), model.Event{
		Type: model.EventUserTyping,
		Data: model.UserTypingData{UserID: userID, IsTyping: payload.IsTyping},
	})

	return nil
}

func authenticated(c *Client) (string, error) {
	userID := c.UserID()
	if userID == "" {
		return "", fmt.Errorf("%w: authenticate first", model.ErrNotAuthenticated)
	}
	return userID, nil
}

func decode(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: event data is required", model.ErrValidation)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: malformed event data", model.ErrValidation)
	}
	return nil
}
