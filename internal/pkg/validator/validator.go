package validator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/s21platform/skills-messenger/internal/model"
	"github.com/s21platform/skills-messenger/internal/pkg/conversation"
)

const maxAttachments = 10

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateSendMessage checks params in place: the receiver is canonicalized, content is trimmed
// and the message type defaulted.
func (v *Validator) ValidateSendMessage(senderID string, params *model.SendMessageParams) error {
	senderID, err := v.ValidateUserID(senderID)
	if err != nil {
		return fmt.Errorf("sender: %w", err)
	}

	params.ReceiverID = strings.TrimSpace(params.ReceiverID)
	if params.ReceiverID == "" {
		return fmt.Errorf("%w: receiver is required", model.ErrValidation)
	}
	receiverID, err := v.ValidateUserID(params.ReceiverID)
	if err != nil {
		return fmt.Errorf("receiver: %w", err)
	}
	params.ReceiverID = receiverID

	if params.ReceiverID == senderID {
		return fmt.Errorf("%w: cannot send message to yourself", model.ErrValidation)
	}

	params.Content = strings.TrimSpace(params.Content)
	if params.Content == "" {
		return fmt.Errorf("%w: content cannot be empty", model.ErrValidation)
	}

	if len([]rune(params.Content)) > model.MaxContentLength {
		return fmt.Errorf("%w: content exceeds maximum length of %d characters", model.ErrValidation, model.MaxContentLength)
	}

	if params.RelatedSkillID != nil {
		skillID := strings.TrimSpace(*params.RelatedSkillID)
		if skillID == "" {
			params.RelatedSkillID = nil
		} else if _, err := uuid.Parse(skillID); err != nil {
			return fmt.Errorf("%w: invalid skill id", model.ErrValidation)
		} else {
			params.RelatedSkillID = &skillID
		}
	}

	switch params.MessageType {
	case "":
		params.MessageType = model.TextMessageType
	case model.TextMessageType, model.ImageMessageType, model.FileMessageType:
	default:
		return fmt.Errorf("%w: message type '%s' is not supported", model.ErrValidation, params.MessageType)
	}

	if len(params.Attachments) > maxAttachments {
		return fmt.Errorf("%w: at most %d attachments are allowed", model.ErrValidation, maxAttachments)
	}
	for i, a := range params.Attachments {
		if strings.TrimSpace(a.URL) == "" {
			return fmt.Errorf("%w: attachment %d has no url", model.ErrValidation, i)
		}
		if a.Size < 0 {
			return fmt.Errorf("%w: attachment %d has negative size", model.ErrValidation, i)
		}
	}

	return nil
}

// ValidateUserID returns the canonical lowercase hyphenated form of id.
func (v *Validator) ValidateUserID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: invalid user id '%s'", model.ErrValidation, id)
	}
	return parsed.String(), nil
}

func (v *Validator) ValidateMessageID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: invalid message id '%s'", model.ErrValidation, id)
	}
	return parsed.String(), nil
}

// ValidateConversationID returns the key rebuilt from the canonical forms of both participants.
func (v *Validator) ValidateConversationID(id string) (string, error) {
	a, b, ok := conversation.Participants(id)
	if !ok {
		return "", fmt.Errorf("%w: invalid conversation id '%s'", model.ErrValidation, id)
	}
	a, err := v.ValidateUserID(a)
	if err != nil {
		return "", err
	}
	b, err = v.ValidateUserID(b)
	if err != nil {
		return "", err
	}
	return conversation.Key(a, b), nil
}

// Canonical returns the canonical form of id when it is a UUID and id unchanged otherwise.
func Canonical(id string) string {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return parsed.String()
}
