package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"weekly-summary/config"
	"weekly-summary/internal/report"
	"weekly-summary/internal/repository"
	"weekly-summary/internal/service"
	"weekly-summary/internal/store"
	"weekly-summary/pkg/jwt"
	applogger "weekly-summary/pkg/logger"
)

// app 命令执行期间共享的依赖
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	docs   store.DocumentStore
	svc    *service.Service
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "weeklyctl",
		Short:         "周报汇总离线工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径")

	root.AddCommand(newReportCmd(&configPath), newExportCmd(&configPath))
	return root
}

func setup(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	docs, err := store.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("打开文档存储失败: %w", err)
	}

	loc, _ := cfg.Report.Location()
	repo := repository.NewRepository(docs)
	svc := service.NewService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, report.SystemClock(loc), logger)
	return &app{cfg: cfg, logger: logger, docs: docs, svc: svc}, nil
}

func (a *app) close() {
	_ = a.docs.Close()
	_ = a.logger.Sync()
}

// copyToUpload 把源文件复制到上传目录，汇报生成后只删除副本
func copyToUpload(src, uploadDir string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(uploadDir, uuid.New().String()+"_"+filepath.Base(src))
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return "", err
	}
	return dst, out.Close()
}
