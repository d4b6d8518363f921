package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrArtifactNotFound    = errors.New("文件不存在")
	ErrInvalidArtifactName = errors.New("文件名无效")
)

// Artifacts 生成文件（汇报 .md、导出 .xlsx/.csv）的落盘目录
type Artifacts struct {
	dir string
}

// NewArtifacts 创建产物目录管理器，目录在首次写入时创建
func NewArtifacts(dir string) *Artifacts {
	return &Artifacts{dir: dir}
}

// Save 写入文件并返回完整路径
func (a *Artifacts) Save(name string, data []byte) (string, error) {
	if err := validArtifactName(name); err != nil {
		return "", err
	}
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}
	path := filepath.Join(a.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("写入文件失败: %w", err)
	}
	return path, nil
}

// Path 返回已生成文件的路径；拒绝任何带目录成分的文件名
func (a *Artifacts) Path(name string) (string, error) {
	if err := validArtifactName(name); err != nil {
		return "", err
	}
	path := filepath.Join(a.dir, name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", ErrArtifactNotFound
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func validArtifactName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return ErrInvalidArtifactName
	}
	return nil
}
