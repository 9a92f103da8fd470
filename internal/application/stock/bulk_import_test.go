package stock

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookdepot/internal/domain/book"
	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
)

func newBulkImportUseCase(books *memBookService) (*BulkImportUseCase, *memStockService) {
	stockSvc := newMemStockService(books)
	uc := NewBulkImportUseCase(stockSvc, books, NopLeftoverCache{}, NopEventPublisher{})
	return uc, stockSvc
}

// TestBulkImport_Success 测试整批成功导入
func TestBulkImport_Success(t *testing.T) {
	books := newMemBookService(
		&book.Book{ID: 1, Barcode: "10001", Title: "Go程序设计"},
		&book.Book{ID: 2, Barcode: "10002", Title: "数据库系统"},
	)
	uc, stockSvc := newBulkImportUseCase(books)

	input := "BRC10001\nQNT5\nBRC10002\nQNT3\nBRC10001\nQNT-2\n"
	result, err := uc.Execute(context.Background(), "leftover.txt", strings.NewReader(input))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.RowsApplied)
	assert.Equal(t, 3, stockSvc.quantities[1])
	assert.Equal(t, 3, stockSvc.quantities[2])
	assert.Len(t, stockSvc.history, 3)
}

// TestBulkImport_UnknownBarcodeAborts 测试条码不存在时中止且保留已提交的行
func TestBulkImport_UnknownBarcodeAborts(t *testing.T) {
	books := newMemBookService(
		&book.Book{ID: 1, Barcode: "10001", Title: "Go程序设计"},
	)
	uc, stockSvc := newBulkImportUseCase(books)

	// 第3、4行条码未登记,前两行(第1、2行)已提交
	input := "BRC10001\nQNT5\nBRC99999\nQNT3\nBRC10001\nQNT1\n"
	_, err := uc.Execute(context.Background(), "leftover.txt", strings.NewReader(input))
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeBookNotFound, appErr.Code)
	// 错误消息带出错行号(QNT行)
	assert.Contains(t, appErr.Message, "第4行")

	// 失败行之前已提交的变更保持提交,之后的行不再处理
	assert.Equal(t, 5, stockSvc.quantities[1])
	assert.Len(t, stockSvc.history, 1)
}

// TestBulkImport_InvalidQuantityAborts 测试数量格式非法时中止
func TestBulkImport_InvalidQuantityAborts(t *testing.T) {
	books := newMemBookService(
		&book.Book{ID: 1, Barcode: "10001", Title: "Go程序设计"},
	)
	uc, stockSvc := newBulkImportUseCase(books)

	input := "BRC10001\nQNT5\nBRC10001\nQNTabc\n"
	_, err := uc.Execute(context.Background(), "leftover.txt", strings.NewReader(input))
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeInvalidQuantity, appErr.Code)
	assert.Contains(t, appErr.Message, "第4行")
	assert.Equal(t, 5, stockSvc.quantities[1])
}

// TestBulkImport_InsufficientQuantityAborts 测试扣减越界时中止
func TestBulkImport_InsufficientQuantityAborts(t *testing.T) {
	books := newMemBookService(
		&book.Book{ID: 1, Barcode: "10001", Title: "Go程序设计"},
	)
	uc, stockSvc := newBulkImportUseCase(books)

	input := "BRC10001\nQNT5\nBRC10001\nQNT-9\n"
	_, err := uc.Execute(context.Background(), "leftover.txt", strings.NewReader(input))
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeInsufficientQuantity, appErr.Code)
	assert.Contains(t, appErr.Message, "第4行")

	// 失败的扣减不留痕迹
	assert.Equal(t, 5, stockSvc.quantities[1])
	assert.Len(t, stockSvc.history, 1)
}

// TestBulkImport_XLSX 测试表格文件整批导入
func TestBulkImport_XLSX(t *testing.T) {
	books := newMemBookService(
		&book.Book{ID: 1, Barcode: "10001", Title: "Go程序设计"},
	)
	uc, stockSvc := newBulkImportUseCase(books)

	buf := buildXLSX(t, [][]string{
		{"10001", "5"},
		{"", ""},
		{"10001", "-2"},
	})

	result, err := uc.Execute(context.Background(), "leftover.xlsx", buf)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.RowsApplied)
	assert.Equal(t, 3, stockSvc.quantities[1])
}
