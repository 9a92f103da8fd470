package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：集成测试辅助工具
// 这些测试需要一个真实运行的服务（go run ./cmd/api）和配套的MySQL，
// 服务未启动时通过/ping探活自动跳过，不会让单元测试流水线失败。
//
// 与单元测试不同，这里走完整HTTP栈验证接口契约：
// 成功响应直接是业务数据，失败响应统一为 {"error": "<message>"}。

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response HTTP响应（状态码+原始body）
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// ErrorMessage 解析错误响应中的error字段，非错误响应返回空串
func (r *Response) ErrorMessage() string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return ""
	}
	return body.Error
}

// Decode 将响应body解析到目标结构
func (r *Response) Decode(t *testing.T, v interface{}) {
	t.Helper()
	err := json.Unmarshal(r.Body, v)
	require.NoError(t, err, "解析响应body失败: %s", string(r.Body))
}

// RequireServer 探活,服务未启动时跳过当前测试
func RequireServer(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(BaseURL + "/ping")
	if err != nil {
		t.Skipf("服务未启动(%v),跳过集成测试", err)
	}
	resp.Body.Close()
}

// PostJSON 发送POST请求并返回响应
func PostJSON(t *testing.T, url string, data interface{}) *Response {
	t.Helper()
	jsonData, err := json.Marshal(data)
	require.NoError(t, err, "JSON序列化失败")

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	require.NoError(t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", "application/json")

	return do(t, req)
}

// GetJSON 发送GET请求并返回响应
func GetJSON(t *testing.T, url string) *Response {
	t.Helper()
	req, err := http.NewRequest("GET", url, nil)
	require.NoError(t, err, "创建HTTP请求失败")

	return do(t, req)
}

// PostFile 以multipart形式上传文件(批量导入接口)
func PostFile(t *testing.T, url string, filename string, content []byte) *Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err, "创建multipart字段失败")
	_, err = part.Write(content)
	require.NoError(t, err, "写入文件内容失败")
	require.NoError(t, writer.Close(), "关闭multipart writer失败")

	req, err := http.NewRequest("POST", url, &buf)
	require.NoError(t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return do(t, req)
}

func do(t *testing.T, req *http.Request) *Response {
	t.Helper()
	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	return &Response{StatusCode: resp.StatusCode, Body: body}
}

// GenerateTestBarcode 生成唯一的测试条码
// 用时间戳保证重复运行测试时条码不冲突
func GenerateTestBarcode() string {
	timestamp := time.Now().UnixNano()
	return fmt.Sprintf("T%012d", timestamp%1000000000000)
}

// RegisterTestAuthor 登记测试作者并返回作者ID
func RegisterTestAuthor(t *testing.T, name string) uint {
	t.Helper()
	resp := PostJSON(t, BaseURL+"/author", map[string]string{
		"name":       name,
		"birth_date": "1970-01-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "登记作者失败: %s", resp.ErrorMessage())

	var data struct {
		AuthorID uint `json:"author_Id"`
	}
	resp.Decode(t, &data)
	require.NotZero(t, data.AuthorID, "作者ID应该大于0")
	return data.AuthorID
}

// RegisterTestBook 登记测试图书并返回图书ID和条码
func RegisterTestBook(t *testing.T, title string, authorName string) (uint, string) {
	t.Helper()
	RegisterTestAuthor(t, authorName)

	barcode := GenerateTestBarcode()
	resp := PostJSON(t, BaseURL+"/book", map[string]interface{}{
		"barcode":      barcode,
		"title":        title,
		"publish_year": 2020,
		"author":       authorName,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "登记图书失败: %s", resp.ErrorMessage())

	var data struct {
		BookID uint `json:"book_id"`
	}
	resp.Decode(t, &data)
	require.NotZero(t, data.BookID, "图书ID应该大于0")
	return data.BookID, barcode
}
