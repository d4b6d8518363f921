// Package errors 定义跨层共享的错误分类。
//
// 解析类异常（日期、周期）在 report 包内部降级处理，不在此处出现；
// 这里只放会中止整个操作、需要反馈给调用方的错误。
package errors

import (
	"errors"
	"fmt"
)

// ErrForbidden 非管理员调用管理员操作
var ErrForbidden = errors.New("您没有权限使用此功能")

// ValidationError 提交内容缺失或格式错误，不会发生任何写入
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MissingFieldError 汇总数据缺少必需字段，整个汇报生成中止
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "数据缺少必需字段：" + e.Field
}

// IngestionError 上传文件无法读取或格式不支持
type IngestionError struct {
	Filename string
	Err      error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("文件读取失败（%s）：%v", e.Filename, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// IsValidation 判断错误链中是否包含 ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsMissingField 从错误链中提取 MissingFieldError
func AsMissingField(err error) (*MissingFieldError, bool) {
	var mf *MissingFieldError
	ok := errors.As(err, &mf)
	return mf, ok
}

// AsIngestion 从错误链中提取 IngestionError
func AsIngestion(err error) (*IngestionError, bool) {
	var ie *IngestionError
	ok := errors.As(err, &ie)
	return ie, ok
}
