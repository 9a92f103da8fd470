package author

import (
	"context"

	"github.com/xiebiao/bookdepot/internal/domain/author"
)

// GetAuthorUseCase 作者查询用例
type GetAuthorUseCase struct {
	authorService author.Service
}

// NewGetAuthorUseCase 创建作者查询用例
func NewGetAuthorUseCase(authorService author.Service) *GetAuthorUseCase {
	return &GetAuthorUseCase{
		authorService: authorService,
	}
}

// AuthorResponse 作者响应DTO
type AuthorResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
}

// Execute 根据ID查询作者
func (uc *GetAuthorUseCase) Execute(ctx context.Context, id uint) (*AuthorResponse, error) {
	a, err := uc.authorService.GetAuthorByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		BirthDate: a.BirthDate.Format("2006-01-02"),
	}, nil
}
