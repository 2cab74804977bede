package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProductStatePending  = "PENDING"
	ProductStateAccepted = "ACCEPTED"
	ProductStateClosed   = "CLOSED"

	ProductTypeComputer = "COMPUTER"
	ProductTypePieces   = "PIECES"
)

type Product struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	State       string         `gorm:"type:varchar(16);default:PENDING" json:"state"`
	Type        string         `gorm:"type:varchar(16);default:COMPUTER" json:"type"`
	SellerID    string         `gorm:"index;type:varchar(36)" json:"seller_id"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = uuid.New().String()
	if p.State == "" {
		p.State = ProductStatePending
	}
	if p.Type == "" {
		p.Type = ProductTypeComputer
	}
	p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	p.UpdatedAt = p.CreatedAt
	return
}
