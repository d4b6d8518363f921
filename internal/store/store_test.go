package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
)

type doc struct {
	Items map[string]string `json:"items"`
}

func backends(t *testing.T) map[string]DocumentStore {
	t.Helper()
	fileStore, err := NewFile(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFile 失败: %v", err)
	}
	return map[string]DocumentStore{
		"memory": NewMemory(),
		"file":   fileStore,
	}
}

func TestStore_LoadMissing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Load(context.Background(), SummariesKey)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("期望 ErrNotFound，实际: %v", err)
			}

			var d doc
			ok, err := GetJSON(context.Background(), s, SummariesKey, &d)
			if err != nil || ok {
				t.Errorf("缺失文档应返回 ok=false err=nil，实际 ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestStore_PutAndGetJSON(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			in := doc{Items: map[string]string{"1": "张三 <完成>"}}
			if err := PutJSON(ctx, s, UsersKey, in); err != nil {
				t.Fatalf("PutJSON 失败: %v", err)
			}

			raw, err := s.Load(ctx, UsersKey)
			if err != nil {
				t.Fatalf("Load 失败: %v", err)
			}
			if !strings.Contains(string(raw), "张三 <完成>") {
				t.Errorf("非 ASCII 与 HTML 字符应原样保存，实际: %s", raw)
			}
			if !strings.Contains(string(raw), "\n  ") {
				t.Errorf("文档应缩进输出，实际: %s", raw)
			}

			var out doc
			ok, err := GetJSON(ctx, s, UsersKey, &out)
			if err != nil || !ok {
				t.Fatalf("GetJSON 失败: ok=%v err=%v", ok, err)
			}
			if out.Items["1"] != "张三 <完成>" {
				t.Errorf("读回内容不符: %+v", out)
			}
		})
	}
}

func TestStore_UpdateJSON_AbortOnError(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_ = PutJSON(ctx, s, SummariesKey, doc{Items: map[string]string{"a": "1"}})

			boom := errors.New("boom")
			err := UpdateJSON(ctx, s, SummariesKey, func(d *doc) error {
				d.Items["a"] = "2"
				return boom
			})
			if !errors.Is(err, boom) {
				t.Fatalf("期望 fn 的错误透传，实际: %v", err)
			}

			var out doc
			_, _ = GetJSON(ctx, s, SummariesKey, &out)
			if out.Items["a"] != "1" {
				t.Errorf("fn 出错时不应写入，实际: %+v", out)
			}
		})
	}
}

func TestStore_UpdateJSON_Concurrent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			const n = 20

			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					err := UpdateJSON(ctx, s, SummariesKey, func(d *doc) error {
						if d.Items == nil {
							d.Items = make(map[string]string)
						}
						d.Items[fmt.Sprint(i)] = "ok"
						return nil
					})
					if err != nil {
						t.Errorf("UpdateJSON 失败: %v", err)
					}
				}(i)
			}
			wg.Wait()

			var out doc
			_, _ = GetJSON(ctx, s, SummariesKey, &out)
			if len(out.Items) != n {
				t.Errorf("并发更新丢失写入: 期望 %d 条，实际 %d 条", n, len(out.Items))
			}
		})
	}
}
