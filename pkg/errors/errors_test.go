package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestMissingField_Wrapped(t *testing.T) {
	err := fmt.Errorf("生成汇报: %w", &MissingFieldError{Field: "完成情况"})
	mf, ok := AsMissingField(err)
	if !ok {
		t.Fatal("应能从包装错误中提取 MissingFieldError")
	}
	if mf.Field != "完成情况" {
		t.Errorf("期望字段=完成情况，实际=%s", mf.Field)
	}
	if err.Error() != "生成汇报: 数据缺少必需字段：完成情况" {
		t.Errorf("错误信息不符: %s", err.Error())
	}
}

func TestIngestion_Unwrap(t *testing.T) {
	inner := errors.New("zip: not a valid zip file")
	err := &IngestionError{Filename: "a.xlsx", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("IngestionError 应能 Unwrap 到底层错误")
	}
	if _, ok := AsIngestion(fmt.Errorf("x: %w", err)); !ok {
		t.Error("应能提取 IngestionError")
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(&ValidationError{Field: "name", Message: "不能为空"}) {
		t.Error("应识别为 ValidationError")
	}
	if IsValidation(errors.New("other")) {
		t.Error("普通错误不应识别为 ValidationError")
	}
}
