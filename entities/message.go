package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a persisted chat message. It is never updated after creation.
type Message struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	SenderID   string    `gorm:"type:varchar(36);index;not null" json:"-"`
	Sender     User      `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender"`
	ReceiverID string    `gorm:"type:varchar(36);index;not null" json:"-"`
	Receiver   User      `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"receiver"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Date       time.Time `gorm:"index;not null" json:"date"`
}

// BeforeCreate assigns the id and the server-side timestamp; any date sent
// by the client is ignored.
func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	m.ID = uuid.New().String()
	m.Date = time.Now().UTC()
	return
}

// MessageDraft is an inbound chat payload before it is persisted.
type MessageDraft struct {
	Sender   string `json:"sender" validate:"required,max=36" binding:"required,max=36"`
	Receiver string `json:"receiver" validate:"required,max=36" binding:"required,max=36"`
	Content  string `json:"content" validate:"required" binding:"required"`
	Date     string `json:"date,omitempty"`
}

// ToMessage builds the row to insert for the draft.
func (d MessageDraft) ToMessage() *Message {
	return &Message{
		SenderID:   d.Sender,
		ReceiverID: d.Receiver,
		Content:    d.Content,
	}
}
