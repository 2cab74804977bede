package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sell records one product changing hands. A (seller, buyer, product)
// triple can only be recorded once.
type Sell struct {
	ID        string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	SellerID  string  `gorm:"type:varchar(36);uniqueIndex:idx_sell_triple;not null" json:"seller_id"`
	Seller    User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	BuyerID   string  `gorm:"type:varchar(36);uniqueIndex:idx_sell_triple;not null" json:"buyer_id"`
	Buyer     User    `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	ProductID string  `gorm:"type:varchar(36);uniqueIndex:idx_sell_triple;not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func (s *Sell) BeforeCreate(tx *gorm.DB) (err error) {
	s.ID = uuid.New().String()
	s.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return
}
