//go:generate mockgen -destination=mock_handler_test.go -package=${GOPACKAGE} -source=handler.go
package user

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/skills-messenger/internal/config"
	"github.com/s21platform/skills-messenger/internal/model"
)

type DBRepo interface {
	AddNewUser(ctx context.Context, userID string) error
	UpdateUserNickname(ctx context.Context, userUUID, newNickname string) error
	UpdateUserAvatar(ctx context.Context, userUUID, avatarLink string) error

	WithTx(ctx context.Context, cb func(ctx context.Context) error) error
}

// Handler keeps the local user directory in sync with profile updates.
type Handler struct {
	repository DBRepo
}

func New(repo DBRepo) *Handler {
	return &Handler{repository: repo}
}

func (h *Handler) Handler(ctx context.Context, in []byte) error {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("UserUpdate")

	var msg model.UserUpdate
	if err := json.Unmarshal(in, &msg); err != nil {
		logger.Error(fmt.Sprintf("failed to unmarshal user update: %v", err))
		return fmt.Errorf("failed to unmarshal user update: %v", err)
	}

	userUUID, err := uuid.Parse(msg.UserUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("invalid user uuid %q", msg.UserUUID))
		return fmt.Errorf("invalid user uuid %q: %v", msg.UserUUID, err)
	}
	msg.UserUUID = userUUID.String()

	err = h.repository.WithTx(ctx, func(ctx context.Context) error {
		if err := h.repository.AddNewUser(ctx, msg.UserUUID); err != nil {
			return fmt.Errorf("failed to add user: %v", err)
		}

		if msg.Nickname != nil {
			if err := h.repository.UpdateUserNickname(ctx, msg.UserUUID, *msg.Nickname); err != nil {
				return fmt.Errorf("failed to update nickname: %v", err)
			}
		}

		if msg.AvatarURL != nil {
			if err := h.repository.UpdateUserAvatar(ctx, msg.UserUUID, *msg.AvatarURL); err != nil {
				return fmt.Errorf("failed to update avatar: %v", err)
			}
		}

		return nil
	})
	if err != nil {
		logger.Error(fmt.Sprintf("failed to sync user %s: %v", msg.UserUUID, err))
		return err
	}

	logger.Info(fmt.Sprintf("synced user %s", msg.UserUUID))

	return nil
}
