package repository

import (
	"context"
	"sort"
	"strconv"

	"weekly-summary/internal/model"
	"weekly-summary/internal/store"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	// Create 分配 id（现有用户数 + 1）并写入；user.ID 被回填
	// Name 为空时默认为 "用户{id}"
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]model.User, error)
	// EnsureDefaultAdmin 手机号不存在时创建管理员，返回是否新建
	EnsureDefaultAdmin(ctx context.Context, admin *model.User) (bool, error)
}

type userRepo struct {
	store store.DocumentStore
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(s store.DocumentStore) UserRepository {
	return &userRepo{store: s}
}

type userDoc = map[string]model.User

func (r *userRepo) load(ctx context.Context) (userDoc, error) {
	users := make(userDoc)
	if _, err := store.GetJSON(ctx, r.store, store.UsersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) update(ctx context.Context, fn func(users userDoc) error) error {
	return store.UpdateJSON(ctx, r.store, store.UsersKey, func(users *userDoc) error {
		if *users == nil {
			*users = make(userDoc)
		}
		return fn(*users)
	})
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.update(ctx, func(users userDoc) error {
		insert(users, user)
		return nil
	})
}

// insert 使用 len+1 作为 id，遇到已占用的 id 顺延
func insert(users userDoc, user *model.User) {
	n := len(users) + 1
	for {
		id := strconv.Itoa(n)
		if _, taken := users[id]; !taken {
			user.ID = id
			break
		}
		n++
	}
	if user.Name == "" {
		user.Name = "用户" + user.ID
	}
	users[user.ID] = *user
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	u, ok := users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if u := findByPhone(users, phone); u != nil {
		return u, nil
	}
	return nil, ErrNotFound
}

func findByPhone(users userDoc, phone string) *model.User {
	for _, u := range users {
		if u.Phone == phone {
			u := u
			return &u
		}
	}
	return nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.update(ctx, func(users userDoc) error {
		if _, ok := users[user.ID]; !ok {
			return ErrNotFound
		}
		users[user.ID] = *user
		return nil
	})
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]model.User, 0, len(users))
	for _, u := range users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool {
		a, errA := strconv.Atoi(list[i].ID)
		b, errB := strconv.Atoi(list[j].ID)
		if errA == nil && errB == nil {
			return a < b
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *userRepo) EnsureDefaultAdmin(ctx context.Context, admin *model.User) (bool, error) {
	created := false
	err := r.update(ctx, func(users userDoc) error {
		if findByPhone(users, admin.Phone) != nil {
			return nil
		}
		admin.Role = model.RoleAdmin
		insert(users, admin)
		created = true
		return nil
	})
	return created, err
}
