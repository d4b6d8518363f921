//go:build integration

package store_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"weekly-summary/internal/store"
	"weekly-summary/pkg/database"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=postgres dbname=weekly_summary_test sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "执行迁移失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	testDB.Exec("DELETE FROM documents")
	os.Exit(code)
}

func cleanup(t *testing.T) {
	t.Helper()
	testDB.Exec("DELETE FROM documents")
}

func TestPostgres_LoadMissing(t *testing.T) {
	cleanup(t)
	s := store.NewPostgres(testDB)

	_, err := s.Load(context.Background(), store.SummariesKey)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("期望 ErrNotFound，实际: %v", err)
	}
}

func TestPostgres_SaveOverwrite(t *testing.T) {
	cleanup(t)
	s := store.NewPostgres(testDB)
	ctx := context.Background()

	if err := s.Save(ctx, store.UsersKey, []byte(`{"1":{"name":"张三"}}`)); err != nil {
		t.Fatalf("首次写入失败: %v", err)
	}
	if err := s.Save(ctx, store.UsersKey, []byte(`{"1":{"name":"李四"}}`)); err != nil {
		t.Fatalf("覆盖写入失败: %v", err)
	}

	var out map[string]map[string]string
	ok, err := store.GetJSON(ctx, s, store.UsersKey, &out)
	if err != nil || !ok {
		t.Fatalf("GetJSON 失败: ok=%v err=%v", ok, err)
	}
	if out["1"]["name"] != "李四" {
		t.Errorf("期望覆盖后为 李四，实际: %v", out)
	}
}

func TestPostgres_UpdateConcurrent(t *testing.T) {
	cleanup(t)
	s := store.NewPostgres(testDB)
	ctx := context.Background()
	const n = 10

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.UpdateJSON(ctx, s, store.SummariesKey, func(d *map[string]int) error {
				if *d == nil {
					*d = make(map[string]int)
				}
				(*d)[fmt.Sprint(i)] = i
				return nil
			})
			if err != nil {
				t.Errorf("UpdateJSON 失败: %v", err)
			}
		}(i)
	}
	wg.Wait()

	var out map[string]int
	_, _ = store.GetJSON(ctx, s, store.SummariesKey, &out)
	if len(out) != n {
		t.Errorf("期望 %d 条，实际 %d 条", n, len(out))
	}
}
