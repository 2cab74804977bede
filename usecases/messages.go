package usecases

import (
	"context"
	"fmt"

	"marketplace-server/entities"
	"marketplace-server/repositories"
)

// MessageUseCase serves stored messages. New messages go through the relay
// so that they are also pushed to connected channels.
type MessageUseCase struct {
	messages repositories.MessageRepository
	users    repositories.UserRepository
}

func NewMessageUseCase(messages repositories.MessageRepository, users repositories.UserRepository) *MessageUseCase {
	return &MessageUseCase{messages: messages, users: users}
}

func (uc *MessageUseCase) GetMessage(ctx context.Context, id string) (*entities.Message, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: message id is required", ErrValidation)
	}
	return uc.messages.GetByID(ctx, id)
}

func (uc *MessageUseCase) GetAllMessages(ctx context.Context) ([]entities.Message, error) {
	return uc.messages.GetAll(ctx)
}

func (uc *MessageUseCase) userExists(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	_, err := uc.users.GetByID(ctx, userID)
	return err
}

// GetUserMessages returns every message the user sent or received.
func (uc *MessageUseCase) GetUserMessages(ctx context.Context, userID string) ([]entities.Message, error) {
	if err := uc.userExists(ctx, userID); err != nil {
		return nil, err
	}
	return uc.messages.GetByUserID(ctx, userID)
}

func (uc *MessageUseCase) GetSentMessages(ctx context.Context, userID string) ([]entities.Message, error) {
	if err := uc.userExists(ctx, userID); err != nil {
		return nil, err
	}
	return uc.messages.GetSentBy(ctx, userID)
}

func (uc *MessageUseCase) GetReceivedMessages(ctx context.Context, userID string) ([]entities.Message, error) {
	if err := uc.userExists(ctx, userID); err != nil {
		return nil, err
	}
	return uc.messages.GetReceivedBy(ctx, userID)
}

func (uc *MessageUseCase) DeleteMessage(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: message id is required", ErrValidation)
	}
	return uc.messages.Delete(ctx, id)
}
