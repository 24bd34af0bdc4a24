package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel tüm tablolara gömülen ortak alanlar.
// DeletedAt GORM soft delete mekanizmasını etkinleştirir: silinen kayıtlar
// normal sorgularda görünmez ama Unscoped ile hâlâ erişilebilir.
type BaseModel struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
