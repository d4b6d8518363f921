package store

import (
	"fmt"

	"go.uber.org/zap"

	"weekly-summary/config"
	"weekly-summary/pkg/database"
)

// Open 按 store.driver 创建文档存储
// postgres 驱动会先执行数据库迁移。
func Open(cfg *config.Config, logger *zap.Logger) (DocumentStore, error) {
	switch cfg.Store.Driver {
	case "memory":
		logger.Warn("使用内存存储，进程退出后数据将丢失")
		return NewMemory(), nil
	case "postgres":
		db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		return NewPostgres(db), nil
	default:
		return NewFile(cfg.Store.DataDir, logger)
	}
}
