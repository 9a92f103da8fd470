package dto

// AddAuthorRequest HTTP作者登记请求
type AddAuthorRequest struct {
	Name      string `json:"name" binding:"required,max=100" example:"刘慈欣"`
	BirthDate string `json:"birth_date" binding:"required" example:"1963-06-23"`
}

// AddAuthorResponse HTTP作者登记响应
// 字段名沿用老接口的author_Id写法,保持客户端兼容
type AddAuthorResponse struct {
	AuthorID uint `json:"author_Id" example:"1"`
}

// AuthorResponse HTTP作者详情响应
type AuthorResponse struct {
	AuthorID uint   `json:"author_Id" example:"1"`
	Name     string `json:"name" example:"刘慈欣"`
}
