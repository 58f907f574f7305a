package model

import (
	"time"
)

// Model 公共字段；这里不做软删除，报名记录删除即物理删除
type Model struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
