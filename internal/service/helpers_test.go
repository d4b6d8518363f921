package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"weekly-summary/config"
	"weekly-summary/internal/model"
	"weekly-summary/internal/repository"
	"weekly-summary/internal/store"
	"weekly-summary/pkg/jwt"
)

// ── 测试辅助 ──

var cst = time.FixedZone("CST", 8*3600)

// 2024-01-03 为周三，本周为 2024-01-01 ~ 2024-01-05
var testNow = time.Date(2024, 1, 3, 10, 0, 0, 0, cst)

type testEnv struct {
	cfg  *config.Config
	repo *repository.Repository
	svc  *Service
	now  time.Time
}

// tick 推进测试时钟
func (e *testEnv) tick(d time.Duration) { e.now = e.now.Add(d) }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-key-for-unit-testing",
			AccessTokenTTL: time.Hour,
			AdminPhone:     "13800138000",
			AdminPassword:  "123456",
			AdminName:      "管理员",
		},
		Report: config.ReportConfig{
			Title:     "开源鸿蒙系统研发能力提升",
			OutputDir: t.TempDir(),
		},
	}
	env := &testEnv{
		cfg:  cfg,
		repo: repository.NewRepository(store.NewMemory()),
		now:  testNow,
	}
	clock := func() time.Time { return env.now }
	env.svc = NewService(cfg, env.repo, jwt.NewManager(&cfg.Auth), nil, clock, zap.NewNop())
	return env
}

// addUser 直接写入用户，返回分配的 id
func (e *testEnv) addUser(t *testing.T, phone, name, password, role string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	u := &model.User{Phone: phone, Name: name, PasswordHash: string(hash), Role: role}
	if err := e.repo.User.Create(context.Background(), u); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return u.ID
}

// putSubmissions 直接写入提交记录
func (e *testEnv) putSubmissions(t *testing.T, recs ...model.Submission) {
	t.Helper()
	err := e.repo.Submission.Update(context.Background(), func(records map[string]model.Submission) error {
		for _, r := range recs {
			records[r.ID] = r
		}
		return nil
	})
	if err != nil {
		t.Fatalf("写入提交记录失败: %v", err)
	}
}

// failingStore 所有操作都返回错误
type failingStore struct{ err error }

func (f failingStore) Load(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingStore) Save(context.Context, string, []byte) error    { return f.err }
func (f failingStore) Update(context.Context, string, func([]byte) ([]byte, error)) error {
	return f.err
}
func (f failingStore) Close() error { return nil }

var errStoreDown = errors.New("store down")
