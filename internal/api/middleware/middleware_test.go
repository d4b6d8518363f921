package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"weekly-summary/config"
	"weekly-summary/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockBlacklist struct {
	revoked map[string]bool
	err     error
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return m.revoked[jti], m.err
}

type mockLimiter struct {
	calls int
	limit int
	err   error
}

func (m *mockLimiter) CheckRateLimit(_ context.Context, _ string, limit int, _ time.Duration) (bool, error) {
	m.calls++
	m.limit = limit
	return m.calls <= limit, m.err
}

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 15 * time.Minute,
	})
}

// protected 构造 JWTAuth + RoleAuth 保护的路由
func protected(jwtMgr *jwt.Manager, bl Blacklist, roles ...string) *gin.Engine {
	r := gin.New()
	g := r.Group("/", JWTAuth(jwtMgr, bl))
	if len(roles) > 0 {
		g.Use(RoleAuth(roles...))
	}
	g.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserID))
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	jwtMgr := newTestJWT()
	token, err := jwtMgr.GenerateAccessToken("7", "user")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}
	r := protected(jwtMgr, nil)

	w := get(r, token)
	if w.Code != http.StatusOK || w.Body.String() != "7" {
		t.Errorf("合法 Token 期望 200 且注入 user_id=7，实际 %d %s", w.Code, w.Body.String())
	}

	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("缺少认证头期望 401，实际 %d", w.Code)
	}
	if w := get(r, "not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("非法 Token 期望 401，实际 %d", w.Code)
	}

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Token "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("非 Bearer 认证头期望 401，实际 %d", w.Code)
	}
}

func TestJWTAuth_Blacklist(t *testing.T) {
	jwtMgr := newTestJWT()
	token, _ := jwtMgr.GenerateAccessToken("7", "user")
	claims, _ := jwtMgr.ParseToken(token)

	r := protected(jwtMgr, &mockBlacklist{revoked: map[string]bool{claims.ID: true}})
	if w := get(r, token); w.Code != http.StatusUnauthorized {
		t.Errorf("已注销 Token 期望 401，实际 %d", w.Code)
	}

	// 黑名单不可用时降级放行
	r = protected(jwtMgr, &mockBlacklist{err: errors.New("redis down")})
	if w := get(r, token); w.Code != http.StatusOK {
		t.Errorf("黑名单出错应放行，实际 %d", w.Code)
	}
}

func TestRoleAuth(t *testing.T) {
	jwtMgr := newTestJWT()
	userToken, _ := jwtMgr.GenerateAccessToken("2", "user")
	adminToken, _ := jwtMgr.GenerateAccessToken("1", "admin")
	r := protected(jwtMgr, nil, "admin")

	w := get(r, userToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("普通用户期望 403，实际 %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"code":10003`) || strings.Contains(w.Body.String(), `"data"`) {
		t.Errorf("403 响应不应携带数据: %s", w.Body.String())
	}

	if w := get(r, adminToken); w.Code != http.StatusOK {
		t.Errorf("管理员期望 200，实际 %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	limiter := &mockLimiter{}
	r := gin.New()
	r.POST("/login", RateLimit(limiter, 2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("期望 [200 200 429]，实际 %v", codes)
	}

	// 未配置限流器时不限流
	r = gin.New()
	r.POST("/login", RateLimit(nil, 2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("无限流器时期望 200，实际 %d", w.Code)
		}
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/upload", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/upload", strings.NewReader("0123456789")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("超限请求期望 413，实际 %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/upload", strings.NewReader("small")))
	if w.Code != http.StatusOK {
		t.Errorf("正常请求期望 200，实际 %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "gw-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "gw-123" || w.Header().Get("X-Request-ID") != "gw-123" {
		t.Errorf("应沿用网关传入的 ID，实际 body=%s header=%s", w.Body.String(), w.Header().Get("X-Request-ID"))
	}

	for _, bad := range []string{"", "含中文", "a b", strings.Repeat("x", 65)} {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-Request-ID", bad)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Body.String(); got == bad || len(got) != 36 {
			t.Errorf("非法 ID %q 应重新生成 UUID，实际 %q", bad, got)
		}
	}
}

func TestCORS_OnlyAllowedOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("白名单来源应被允许: %v", w.Header())
	}
	if !strings.Contains(w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition") {
		t.Error("应暴露 Content-Disposition 以便前端读取下载文件名")
	}

	req = httptest.NewRequest("OPTIONS", "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("非白名单预检不应回写允许头: %d %v", w.Code, w.Header())
	}
}
