package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"weekly-summary/internal/model"
)

// Postgres 以 documents 表保存文档，每个键一行 JSONB
type Postgres struct {
	db *gorm.DB
}

// NewPostgres 创建 Postgres 文档存储（表由 pkg/database 迁移创建）
func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Load(ctx context.Context, key string) ([]byte, error) {
	var doc model.Document
	err := p.db.WithContext(ctx).Where("key = ?", key).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Body), nil
}

func (p *Postgres) Save(ctx context.Context, key string, body []byte) error {
	return upsert(p.db.WithContext(ctx), key, body)
}

// Update 在事务内 SELECT ... FOR UPDATE，锁住该文档行直到写回
// 行尚不存在时 FOR UPDATE 锁不到任何东西，先取事务级 advisory lock 串行化首次创建。
func (p *Postgres) Update(ctx context.Context, key string, fn func([]byte) ([]byte, error)) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
			return err
		}

		var doc model.Document
		var body []byte
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("key = ?", key).
			First(&doc).Error
		switch {
		case err == nil:
			body = []byte(doc.Body)
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		next, err := fn(body)
		if err != nil {
			return err
		}
		return upsert(tx, key, next)
	})
}

func (p *Postgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func upsert(db *gorm.DB, key string, body []byte) error {
	doc := model.Document{Key: key, Body: string(body), UpdatedAt: time.Now()}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&doc).Error
}
