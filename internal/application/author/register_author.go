package author

import (
	"context"
	"time"

	"github.com/xiebiao/bookdepot/internal/domain/author"
	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
)

// RegisterAuthorUseCase 作者登记用例
// 设计说明:
// 1. 应用层负责用例编排,输入输出使用DTO与HTTP层解耦
// 2. 出生日期的格式解析在这里完成,领域服务只接收time.Time
type RegisterAuthorUseCase struct {
	authorService author.Service
}

// NewRegisterAuthorUseCase 创建作者登记用例
func NewRegisterAuthorUseCase(authorService author.Service) *RegisterAuthorUseCase {
	return &RegisterAuthorUseCase{
		authorService: authorService,
	}
}

// RegisterAuthorRequest 作者登记请求DTO
type RegisterAuthorRequest struct {
	Name      string // 姓名
	BirthDate string // 出生日期(YYYY-MM-DD)
}

// RegisterAuthorResponse 作者登记响应DTO
type RegisterAuthorResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
}

// Execute 执行作者登记
func (uc *RegisterAuthorUseCase) Execute(ctx context.Context, req RegisterAuthorRequest) (*RegisterAuthorResponse, error) {
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "出生日期格式必须为YYYY-MM-DD")
	}

	a, err := uc.authorService.RegisterAuthor(ctx, req.Name, birthDate)
	if err != nil {
		return nil, err
	}

	return &RegisterAuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		BirthDate: a.BirthDate.Format("2006-01-02"),
	}, nil
}
