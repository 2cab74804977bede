package repositories

import (
	"context"

	"marketplace-server/db"
	"marketplace-server/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type messagePgRepository struct {
	db db.Database
}

func NewMessagePgRepository(database db.Database) MessageRepository {
	return &messagePgRepository{db: database}
}

func (r *messagePgRepository) withParticipants(ctx context.Context) *gorm.DB {
	return r.db.GetDB().WithContext(ctx).Preload("Sender").Preload("Receiver")
}

// Create inserts the draft and reads the row back with both participants
// loaded. Unknown sender or receiver ids fail with ErrInvalidReference.
func (r *messagePgRepository) Create(ctx context.Context, draft entities.MessageDraft) (*entities.Message, error) {
	msg := draft.ToMessage()
	if err := r.db.GetDB().WithContext(ctx).Omit(clause.Associations).Create(msg).Error; err != nil {
		return nil, translate(err)
	}
	return r.GetByID(ctx, msg.ID)
}

func (r *messagePgRepository) GetByID(ctx context.Context, id string) (*entities.Message, error) {
	var msg entities.Message
	err := r.withParticipants(ctx).Where("id = ?", id).First(&msg).Error
	if err != nil {
		return nil, translate(err)
	}
	return &msg, nil
}

func (r *messagePgRepository) GetAll(ctx context.Context) ([]entities.Message, error) {
	var msgs []entities.Message
	err := r.withParticipants(ctx).Order("date ASC").Find(&msgs).Error
	return msgs, translate(err)
}

func (r *messagePgRepository) GetByUserID(ctx context.Context, userID string) ([]entities.Message, error) {
	var msgs []entities.Message
	err := r.withParticipants(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("date ASC").Find(&msgs).Error
	return msgs, translate(err)
}

func (r *messagePgRepository) GetSentBy(ctx context.Context, userID string) ([]entities.Message, error) {
	var msgs []entities.Message
	err := r.withParticipants(ctx).Where("sender_id = ?", userID).Order("date ASC").Find(&msgs).Error
	return msgs, translate(err)
}

func (r *messagePgRepository) GetReceivedBy(ctx context.Context, userID string) ([]entities.Message, error) {
	var msgs []entities.Message
	err := r.withParticipants(ctx).Where("receiver_id = ?", userID).Order("date ASC").Find(&msgs).Error
	return msgs, translate(err)
}

func (r *messagePgRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.GetDB().WithContext(ctx).Where("id = ?", id).Delete(&entities.Message{}))
}
