package repository

import (
	"context"
	"sort"

	"weekly-summary/internal/model"
	"weekly-summary/internal/store"
)

// SubmissionRepository 周报记录数据访问接口
type SubmissionRepository interface {
	// List 返回全部记录，按 id 排序保证输出稳定
	List(ctx context.Context) ([]model.Submission, error)
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	// Update 在文档写锁内对整个记录集执行读-改-写，fn 出错则不写入
	Update(ctx context.Context, fn func(records map[string]model.Submission) error) error
}

type submissionRepo struct {
	store store.DocumentStore
}

// NewSubmissionRepo 创建 SubmissionRepository 实例
func NewSubmissionRepo(s store.DocumentStore) SubmissionRepository {
	return &submissionRepo{store: s}
}

func (r *submissionRepo) load(ctx context.Context) (map[string]model.Submission, error) {
	records := make(map[string]model.Submission)
	if _, err := store.GetJSON(ctx, r.store, store.SummariesKey, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *submissionRepo) List(ctx context.Context) ([]model.Submission, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]model.Submission, 0, len(records))
	for id, rec := range records {
		if rec.ID == "" {
			rec.ID = id
		}
		list = append(list, rec)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := records[id]
	if !ok {
		return nil, ErrNotFound
	}
	if rec.ID == "" {
		rec.ID = id
	}
	return &rec, nil
}

func (r *submissionRepo) Update(ctx context.Context, fn func(map[string]model.Submission) error) error {
	return store.UpdateJSON(ctx, r.store, store.SummariesKey, func(records *map[string]model.Submission) error {
		if *records == nil {
			*records = make(map[string]model.Submission)
		}
		return fn(*records)
	})
}
