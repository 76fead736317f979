package model

import (
	"time"

	"gorm.io/gorm"
)

// カタログの商品行。エンジン自身は参照しない（usecaseがスナップショット採取に使うだけ）。
type Product struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Price     int64          `gorm:"not null" json:"price"`
	Stock     int64          `gorm:"not null" json:"stock"`
	SellerID  string         `gorm:"type:varchar(36);not null;index" json:"seller_id"`
	ImageURLs []string       `gorm:"serializer:json" json:"image_urls"`
	Category  string         `gorm:"type:varchar(100);index" json:"category"`
	IsActive  bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Snapshot は操作時点の商品コピーを切り出す。
func (p Product) Snapshot() ProductSnapshot {
	urls := make([]string, len(p.ImageURLs))
	copy(urls, p.ImageURLs)

	return ProductSnapshot{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		SellerID:  p.SellerID,
		ImageURLs: urls,
		Category:  p.Category,
	}
}
