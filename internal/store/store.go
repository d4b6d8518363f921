// Package store 整文档读写的存储抽象。
//
// 每个文档（如 summaries、users）整体读出、整体写回；Update 在同一文档上串行化
// 读-改-写，以消除并发提交互相覆盖的问题，对单写者的可见行为不变。
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
)

// 文档键
const (
	SummariesKey = "summaries"
	UsersKey     = "users"
)

// ErrNotFound 文档不存在
var ErrNotFound = errors.New("文档不存在")

// DocumentStore 文档存储接口
type DocumentStore interface {
	// Load 读取整个文档；不存在时返回 ErrNotFound
	Load(ctx context.Context, key string) ([]byte, error)
	// Save 覆盖写入整个文档
	Save(ctx context.Context, key string, body []byte) error
	// Update 在文档写锁内执行读-改-写；文档不存在时 fn 收到 nil
	Update(ctx context.Context, key string, fn func(body []byte) ([]byte, error)) error
	Close() error
}

// Encode 以缩进格式编码，保留非 ASCII 与 HTML 字符原样
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GetJSON 读取并解码文档；文档不存在时保持 v 不变并返回 false
func GetJSON(ctx context.Context, s DocumentStore, key string, v any) (bool, error) {
	body, err := s.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return false, err
	}
	return true, nil
}

// PutJSON 编码并覆盖写入文档
func PutJSON(ctx context.Context, s DocumentStore, key string, v any) error {
	body, err := Encode(v)
	if err != nil {
		return err
	}
	return s.Save(ctx, key, body)
}

// UpdateJSON 在写锁内解码到 *T、执行 fn、再写回
// fn 返回错误时不写入。
func UpdateJSON[T any](ctx context.Context, s DocumentStore, key string, fn func(doc *T) error) error {
	return s.Update(ctx, key, func(body []byte) ([]byte, error) {
		var doc T
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &doc); err != nil {
				return nil, err
			}
		}
		if err := fn(&doc); err != nil {
			return nil, err
		}
		return Encode(doc)
	})
}
