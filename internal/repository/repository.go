package repository

import (
	"errors"

	"weekly-summary/internal/store"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Submission SubmissionRepository
	User       UserRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(s store.DocumentStore) *Repository {
	return &Repository{
		Submission: NewSubmissionRepo(s),
		User:       NewUserRepo(s),
	}
}
