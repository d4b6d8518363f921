package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// File 基于 JSON 文件的文档存储：data_dir/<key>.json
type File struct {
	dir    string
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFile 创建文件存储，目录不存在时自动创建
func NewFile(dir string, logger *zap.Logger) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}
	return &File{dir: dir, logger: logger, locks: make(map[string]*sync.Mutex)}, nil
}

func (f *File) lock(key string) *sync.Mutex {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.locks[key]
	if !ok {
		l = &sync.Mutex{}
		f.locks[key] = l
	}
	return l
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, filepath.Base(key)+".json")
}

func (f *File) Load(_ context.Context, key string) ([]byte, error) {
	l := f.lock(key)
	l.Lock()
	defer l.Unlock()
	return f.read(key)
}

func (f *File) Save(_ context.Context, key string, body []byte) error {
	l := f.lock(key)
	l.Lock()
	defer l.Unlock()
	return f.write(key, body)
}

func (f *File) Update(_ context.Context, key string, fn func([]byte) ([]byte, error)) error {
	l := f.lock(key)
	l.Lock()
	defer l.Unlock()

	body, err := f.read(key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	next, err := fn(body)
	if err != nil {
		return err
	}
	return f.write(key, next)
}

func (f *File) Close() error { return nil }

func (f *File) read(key string) ([]byte, error) {
	body, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("读取文档 %s 失败: %w", key, err)
	}
	return body, nil
}

// write 先写临时文件再 rename，避免半截文件
func (f *File) write(key string, body []byte) error {
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("写入文档 %s 失败: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("写入文档 %s 失败: %w", key, err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		return fmt.Errorf("替换文档 %s 失败: %w", key, err)
	}
	f.logger.Debug("文档已写入", zap.String("key", key), zap.Int("bytes", len(body)))
	return nil
}
