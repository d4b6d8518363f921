package service

import (
	"errors"
	"testing"
)

func TestArtifacts_SaveAndPath(t *testing.T) {
	a := NewArtifacts(t.TempDir() + "/out")

	if _, err := a.Save("report_1.md", []byte("# x")); err != nil {
		t.Fatalf("Save 失败: %v", err)
	}
	if _, err := a.Path("report_1.md"); err != nil {
		t.Errorf("Path 应找到已保存文件: %v", err)
	}
	if _, err := a.Path("report_2.md"); !errors.Is(err, ErrArtifactNotFound) {
		t.Errorf("期望 ErrArtifactNotFound，实际: %v", err)
	}
}

func TestArtifacts_RejectsTraversal(t *testing.T) {
	a := NewArtifacts(t.TempDir())

	for _, name := range []string{"", ".", "..", "../secret", "a/b.md", `..\x`} {
		if _, err := a.Path(name); !errors.Is(err, ErrInvalidArtifactName) {
			t.Errorf("%q: 期望 ErrInvalidArtifactName，实际: %v", name, err)
		}
		if _, err := a.Save(name, nil); !errors.Is(err, ErrInvalidArtifactName) {
			t.Errorf("%q: Save 应拒绝，实际: %v", name, err)
		}
	}
}
