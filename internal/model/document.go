package model

import "time"

// Document 文档表，对应 documents（store.driver=postgres）
type Document struct {
	Key       string    `gorm:"type:varchar(64);primaryKey"         json:"key"`
	Body      string    `gorm:"type:jsonb;not null"                 json:"body"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (Document) TableName() string { return "documents" }
