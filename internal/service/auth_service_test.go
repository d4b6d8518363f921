package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"weekly-summary/internal/dto"
	"weekly-summary/internal/model"
	"weekly-summary/internal/repository"
	"weekly-summary/pkg/jwt"
)

type fakeBlacklist struct {
	tokens map[string]time.Duration
	err    error
}

func (f *fakeBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.tokens[jti] = ttl
	return nil
}

func (f *fakeBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := f.tokens[jti]
	return ok, nil
}

func TestAuthService_Login_AutoRegister(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Auth.Login(context.Background(), &dto.LoginRequest{Phone: "13912345678", Password: "secret1"})
	if err != nil {
		t.Fatalf("首次登录应自动注册: %v", err)
	}
	if !resp.Created {
		t.Error("期望 Created=true")
	}
	if resp.User.Name != "用户1" || resp.User.Role != model.RoleUser {
		t.Errorf("自动注册用户信息不符: %+v", resp.User)
	}

	claims, err := jwt.NewManager(&env.cfg.Auth).ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("Token 应可解析: %v", err)
	}
	if claims.UserID != resp.User.ID || claims.Role != model.RoleUser {
		t.Errorf("Token 声明不符: %+v", claims)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("期望 ExpiresIn=3600，实际 %d", resp.ExpiresIn)
	}
}

func TestAuthService_Login_ExistingUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, _ = env.svc.Auth.Login(ctx, &dto.LoginRequest{Phone: "13912345678", Password: "secret1"})

	resp, err := env.svc.Auth.Login(ctx, &dto.LoginRequest{Phone: "13912345678", Password: "secret1"})
	if err != nil {
		t.Fatalf("再次登录应成功: %v", err)
	}
	if resp.Created {
		t.Error("已存在用户不应再次注册")
	}

	_, err = env.svc.Auth.Login(ctx, &dto.LoginRequest{Phone: "13912345678", Password: "wrong-pw"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_EnsureDefaultAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.svc.Auth.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("EnsureDefaultAdmin 失败: %v", err)
	}
	if err := env.svc.Auth.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("重复调用不应失败: %v", err)
	}

	resp, err := env.svc.Auth.Login(ctx, &dto.LoginRequest{Phone: "13800138000", Password: "123456"})
	if err != nil {
		t.Fatalf("管理员登录失败: %v", err)
	}
	if resp.User.Role != model.RoleAdmin || resp.User.Name != "管理员" {
		t.Errorf("管理员信息不符: %+v", resp.User)
	}

	// 后续自动注册的用户 id 顺延
	next, _ := env.svc.Auth.Login(ctx, &dto.LoginRequest{Phone: "13912345678", Password: "secret1"})
	if next.User.ID != "2" || next.User.Name != "用户2" {
		t.Errorf("期望 id=2 name=用户2，实际 %+v", next.User)
	}
}

func TestAuthService_Logout(t *testing.T) {
	env := newTestEnv(t)
	bl := &fakeBlacklist{tokens: make(map[string]time.Duration)}
	authSvc := NewAuthService(env.cfg, env.repo, jwt.NewManager(&env.cfg.Auth), bl, zap.NewNop())

	if err := authSvc.Logout(context.Background(), "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Logout 失败: %v", err)
	}
	if ttl, ok := bl.tokens["jti-1"]; !ok || ttl <= 0 {
		t.Errorf("jti 应以正 TTL 加入黑名单，实际 ok=%v ttl=%v", ok, ttl)
	}

	// 未配置黑名单时登出直接成功
	if err := env.svc.Auth.Logout(context.Background(), "jti-2", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("无黑名单时 Logout 不应失败: %v", err)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	env := newTestEnv(t)
	id := env.addUser(t, "13900000001", "张三", "secret1", model.RoleUser)

	u, err := env.svc.Auth.CurrentUser(context.Background(), id)
	if err != nil || u.Name != "张三" {
		t.Errorf("CurrentUser 结果不符: %+v, %v", u, err)
	}

	_, err = env.svc.Auth.CurrentUser(context.Background(), "999")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	env := newTestEnv(t)
	repo := repository.NewRepository(failingStore{err: errStoreDown})
	authSvc := NewAuthService(env.cfg, repo, jwt.NewManager(&env.cfg.Auth), nil, zap.NewNop())

	_, err := authSvc.Login(context.Background(), &dto.LoginRequest{Phone: "13912345678", Password: "secret1"})
	if !errors.Is(err, errStoreDown) {
		t.Errorf("期望存储错误透传，实际: %v", err)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.addUser(t, "13900000001", "用户1", "secret1", model.RoleUser)

	_, err := env.svc.User.UpdateProfile(ctx, id, &dto.UpdateProfileRequest{Name: "张三", Password: "wrong-pw"})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("期望 ErrPasswordMismatch，实际: %v", err)
	}

	resp, err := env.svc.User.UpdateProfile(ctx, id, &dto.UpdateProfileRequest{
		Name:        " 张三 ",
		Password:    "secret1",
		NewPassword: "secret2",
	})
	if err != nil {
		t.Fatalf("UpdateProfile 失败: %v", err)
	}
	if resp.Name != "张三" {
		t.Errorf("期望姓名 张三，实际 %s", resp.Name)
	}

	if _, err := env.svc.Auth.Login(ctx, &dto.LoginRequest{Phone: "13900000001", Password: "secret2"}); err != nil {
		t.Errorf("新密码应可登录: %v", err)
	}
}

func TestUserService_UpdateProfile_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.User.UpdateProfile(context.Background(), "404", &dto.UpdateProfileRequest{Name: "x", Password: "secret1"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
