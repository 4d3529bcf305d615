package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/skills-messenger/internal/config"
	api "github.com/s21platform/skills-messenger/internal/generated"
	"github.com/s21platform/skills-messenger/internal/model"
)

type Handler struct {
	store        MessageStore
	relay        Relay
	presence     Presence
	jwtGenerator JWTGenerator
}

func New(store MessageStore, relay Relay, presence Presence, jwtGenerator JWTGenerator) *Handler {
	return &Handler{
		store:        store,
		relay:        relay,
		presence:     presence,
		jwtGenerator: jwtGenerator,
	}
}

func (h *Handler) GetConversations(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetConversations")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	summaries, err := h.store.ListUserConversations(r.Context(), userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to get conversations: %v", err))
		h.writeStoreError(w, "failed to get conversations", err)
		return
	}

	conversations := make([]api.ConversationSummary, len(summaries))
	for i, summary := range summaries {
		conversations[i] = api.ConversationSummary{
			ConversationId: summary.ConversationID,
			OtherUser:      h.participant(summary.OtherUser),
			LastMessage: api.LastMessage{
				Id:        summary.LastMessage.ID,
				SenderId:  summary.LastMessage.SenderID,
				Content:   summary.LastMessage.Content,
				CreatedAt: summary.LastMessage.CreatedAt,
				IsRead:    summary.LastMessage.IsRead,
				IsSeen:    summary.LastMessage.IsSeen,
			},
			UnreadCount: summary.UnreadCount,
		}
	}

	h.writeJSON(w, api.GetConversationsResponse{Conversations: conversations}, http.StatusOK)
}

func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request, otherUserId string) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetConversation")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	history, err := h.store.OpenConversation(r.Context(), userUUID, otherUserId)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to get conversation: %v", err))
		h.writeStoreError(w, "failed to get conversation", err)
		return
	}

	if history.MarkedRead > 0 {
		h.relay.Notify(history.OtherUser.ID, model.Event{
			Type: model.EventMessagesRead,
			Data: model.MessagesReadData{
				ConversationID: history.ConversationID,
				ReadCount:      history.MarkedRead,
				ReadAt:         history.ReadAt,
			},
		})
	}

	messages := make([]api.Message, len(history.Messages))
	for i, msg := range history.Messages {
		messages[i] = toAPIMessage(msg)
	}

	response := api.GetConversationResponse{
		ConversationId: history.ConversationID,
		Messages:       messages,
		OtherUser:      h.participant(history.OtherUser),
	}

	h.writeJSON(w, response, http.StatusOK)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("SendMessage")

	var req api.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error(fmt.Sprintf("failed to decode request: %v", err))
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	senderID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get sender ID")
		h.writeError(w, "failed to get sender ID", http.StatusInternalServerError)
		return
	}

	params := model.SendMessageParams{
		ReceiverID:     req.Receiver,
		Content:        req.Content,
		RelatedSkillID: req.RelatedSkill,
	}
	if req.MessageType != nil {
		params.MessageType = *req.MessageType
	}
	if req.Attachments != nil {
		params.Attachments = make(model.Attachments, len(*req.Attachments))
		for i, a := range *req.Attachments {
			params.Attachments[i] = model.Attachment{Filename: a.Filename, URL: a.Url, Size: a.Size, Type: a.Type}
		}
	}

	message, err := h.store.Append(r.Context(), senderID, params)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to send message: %v", err))
		h.writeStoreError(w, "failed to send message", err)
		return
	}

	h.relay.Notify(message.ReceiverID, model.Event{
		Type: model.EventNewMessage,
		Data: model.NewMessageData{Message: *message, ConversationID: message.ConversationID},
	})

	response := toAPIMessage(message.Message)
	sender := h.participant(message.Sender)
	receiver := h.participant(message.Receiver)
	response.Sender = &sender
	response.Receiver = &receiver

	h.writeJSON(w, response, http.StatusCreated)
}

func (h *Handler) MarkConversationSeen(w http.ResponseWriter, r *http.Request, conversationId string) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("MarkConversationSeen")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	receipt, err := h.store.MarkSeenBulk(r.Context(), conversationId, userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to mark conversation as seen: %v", err))
		h.writeStoreError(w, "failed to mark conversation as seen", err)
		return
	}

	h.relay.Notify(receipt.OtherUserID, model.Event{
		Type: model.EventMessagesSeen,
		Data: model.MessagesSeenData{ConversationID: receipt.ConversationID, SeenAt: receipt.SeenAt},
	})

	h.writeJSON(w, api.MarkSeenResponse{ModifiedCount: receipt.Count}, http.StatusOK)
}

func (h *Handler) MarkMessageRead(w http.ResponseWriter, r *http.Request, id string) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("MarkMessageRead")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	message, changed, err := h.store.MarkRead(r.Context(), id, userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to mark message as read: %v", err))
		h.writeStoreError(w, "failed to mark message as read", err)
		return
	}

	if changed {
		h.relay.Notify(message.SenderID, model.Event{
			Type: model.EventMessageRead,
			Data: model.MessageReadData{
				MessageID:      message.ID,
				ConversationID: message.ConversationID,
				ReadAt:         message.ReadAt,
			},
		})
	}

	response := api.MarkReadResponse{
		Id:      message.ID,
		Message: "message marked as read",
		ReadAt:  message.ReadAt,
	}

	h.writeJSON(w, response, http.StatusOK)
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request, id string) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("DeleteMessage")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	message, err := h.store.Delete(r.Context(), id, userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to delete message: %v", err))
		h.writeStoreError(w, "failed to delete message", err)
		return
	}

	other := message.ReceiverID
	if other == userUUID {
		other = message.SenderID
	}
	h.relay.Notify(other, model.Event{
		Type: model.EventMessageDeleted,
		Data: model.MessageDeletedData{MessageID: message.ID, ConversationID: message.ConversationID},
	})

	logger.Info(fmt.Sprintf("message %s deleted by %s", message.ID, userUUID))

	h.writeJSON(w, api.DeleteMessageResponse{Id: message.ID, Message: "message deleted"}, http.StatusOK)
}

func (h *Handler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetUnreadCount")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	count, err := h.store.UnreadCount(r.Context(), userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to count unread messages: %v", err))
		h.writeStoreError(w, "failed to count unread messages", err)
		return
	}

	h.writeJSON(w, api.UnreadCountResponse{UnreadCount: count}, http.StatusOK)
}

func (h *Handler) GetConnectToken(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetConnectToken")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	token, expiresAt, err := h.jwtGenerator.GenerateConnectToken(userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to generate connect token: %v", err))
		h.writeError(w, fmt.Sprintf("failed to generate connect token: %v", err), http.StatusInternalServerError)
		return
	}

	logger.Info(fmt.Sprintf("generated connect token for user %s", userUUID))

	h.writeJSON(w, api.ConnectTokenResponse{Token: token, ExpiresAt: expiresAt}, http.StatusOK)
}

// Health is served outside the identity middleware.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// ----------------------------- helpers -----------------------------

func (h *Handler) participant(p model.Participant) api.Participant {
	online := h.presence.IsOnline(p.ID)
	return api.Participant{
		Id:       p.ID,
		Name:     p.Name,
		Avatar:   p.Avatar,
		IsOnline: &online,
	}
}

func toAPIMessage(msg model.Message) api.Message {
	attachments := make([]api.Attachment, len(msg.Attachments))
	for i, a := range msg.Attachments {
		attachments[i] = api.Attachment{Filename: a.Filename, Url: a.URL, Size: a.Size, Type: a.Type}
	}

	return api.Message{
		Id:             msg.ID,
		ConversationId: msg.ConversationID,
		SenderId:       msg.SenderID,
		ReceiverId:     msg.ReceiverID,
		Content:        msg.Content,
		MessageType:    msg.MessageType,
		Attachments:    attachments,
		RelatedSkill:   msg.RelatedSkillID,
		IsRead:         msg.IsRead,
		ReadAt:         msg.ReadAt,
		IsSeen:         msg.IsSeen,
		SeenAt:         msg.SeenAt,
		CreatedAt:      msg.CreatedAt,
	}
}

// ErrorHandler renders parameter binding failures in the same shape as handler errors.
func ErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(api.Error{Error: err.Error()})
}

func (h *Handler) writeStoreError(w http.ResponseWriter, prefix string, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		h.writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrNotFound):
		h.writeError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrForbidden):
		h.writeError(w, err.Error(), http.StatusForbidden)
	default:
		h.writeError(w, prefix, http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.Error{Error: message})
}
