package author

import (
	"context"
	"time"
)

// Service 作者领域服务接口
type Service interface {
	// RegisterAuthor 登记作者
	// 业务规则:姓名非空,出生日期晚于1900-01-01
	RegisterAuthor(ctx context.Context, name string, birthDate time.Time) (*Author, error)

	// GetAuthorByID 根据ID获取作者
	GetAuthorByID(ctx context.Context, id uint) (*Author, error)

	// GetAuthorByName 根据姓名获取作者
	GetAuthorByName(ctx context.Context, name string) (*Author, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建作者领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// RegisterAuthor 登记作者
func (s *service) RegisterAuthor(ctx context.Context, name string, birthDate time.Time) (*Author, error) {
	a, err := NewAuthor(name, birthDate)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// GetAuthorByID 根据ID获取作者
func (s *service) GetAuthorByID(ctx context.Context, id uint) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

// GetAuthorByName 根据姓名获取作者
func (s *service) GetAuthorByName(ctx context.Context, name string) (*Author, error) {
	return s.repo.FindByName(ctx, name)
}
