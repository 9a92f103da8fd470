package dto

// AddBookRequest HTTP图书登记请求
// author字段传作者姓名,服务端解析为作者ID
type AddBookRequest struct {
	Barcode     string `json:"barcode" binding:"required,max=50" example:"9780000010001"`
	Title       string `json:"title" binding:"required,max=200" example:"三体"`
	PublishYear int    `json:"publish_year" binding:"omitempty,min=0" example:"2008"`
	Author      string `json:"author" binding:"required,max=100" example:"刘慈欣"`
}

// AddBookResponse HTTP图书登记响应
type AddBookResponse struct {
	BookID   uint   `json:"book_id" example:"1"`
	BookName string `json:"book_name" example:"三体"`
	Author   string `json:"author" example:"刘慈欣"`
}

// BookAuthorBrief 图书详情里的作者信息
type BookAuthorBrief struct {
	Name      string `json:"name" example:"刘慈欣"`
	BirthDate string `json:"birth_date" example:"1963-06-23"`
}

// BookDetailResponse HTTP图书详情响应
type BookDetailResponse struct {
	Key         uint            `json:"key" example:"1"`
	Barcode     string          `json:"barcode" example:"9780000010001"`
	Title       string          `json:"title" example:"三体"`
	PublishYear int             `json:"publish_year" example:"2008"`
	Author      BookAuthorBrief `json:"author"`
	Quantity    int             `json:"quantity" example:"7"`
}

// SearchBooksResponse HTTP条码检索响应
type SearchBooksResponse struct {
	Found int                  `json:"found" example:"1"`
	Items []BookDetailResponse `json:"items"`
}
