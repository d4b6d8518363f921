package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"weekly-summary/config"
	"weekly-summary/internal/dto"
	"weekly-summary/internal/model"
	"weekly-summary/internal/repository"
	"weekly-summary/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
)

// TokenBlacklist 登出 Token 黑名单（pkg/redis.Client 实现）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
type AuthService interface {
	// Login 手机号已存在则校验密码；不存在则自动注册为普通用户
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	// EnsureDefaultAdmin 按配置初始化默认管理员账号
	EnsureDefaultAdmin(ctx context.Context) error
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByPhone(ctx, req.Phone)
	created := false
	switch {
	case err == nil:
		// 2. 验证密码 (bcrypt)
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			return nil, ErrInvalidCredentials
		}
	case errors.Is(err, repository.ErrNotFound):
		// 2'. 自动注册
		user, err = s.register(ctx, req.Phone, req.Password)
		if err != nil {
			return nil, err
		}
		created = true
	default:
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 3. 生成 Token
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwtMgr.TTL().Seconds()),
		Created:     created,
		User:        toUserResponse(user),
	}, nil
}

func (s *authService) register(ctx context.Context, phone, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}
	user := &model.User{
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		CreatedAt:    time.Now().Format(time.RFC3339),
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}
	s.logger.Info("新用户自动注册", zap.String("user_id", user.ID))
	return user, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil || jti == "" {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Warn("Token 加入黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) EnsureDefaultAdmin(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Phone:        s.cfg.Auth.AdminPhone,
		Name:         s.cfg.Auth.AdminName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().Format(time.RFC3339),
	}
	created, err := s.repo.User.EnsureDefaultAdmin(ctx, admin)
	if err != nil {
		s.logger.Error("初始化管理员失败", zap.Error(err))
		return err
	}
	if created {
		s.logger.Info("已创建默认管理员", zap.String("phone", admin.Phone), zap.String("user_id", admin.ID))
	}
	return nil
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.ID,
		Phone: u.Phone,
		Name:  u.Name,
		Role:  u.Role,
	}
}
