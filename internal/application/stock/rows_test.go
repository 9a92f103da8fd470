package stock

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
)

// TestDecodeTxtRows 测试行式文件解码
func TestDecodeTxtRows(t *testing.T) {
	t.Run("BRC与QNT配对", func(t *testing.T) {
		input := "BRC10001\nQNT5\nBRC10002\nQNT-3\n"
		rows, err := DecodeRows("leftover.txt", strings.NewReader(input))
		require.NoError(t, err)

		require.Len(t, rows, 2)
		assert.Equal(t, "10001", rows[0].Barcode)
		assert.Equal(t, "5", rows[0].Quantity)
		assert.Equal(t, 2, rows[0].Line)
		assert.Equal(t, "10002", rows[1].Barcode)
		assert.Equal(t, "-3", rows[1].Quantity)
		assert.Equal(t, 4, rows[1].Line)
	})

	t.Run("没有前置BRC的QNT行静默丢弃", func(t *testing.T) {
		input := "QNT5\nBRC10001\nQNT2\n"
		rows, err := DecodeRows("a.txt", strings.NewReader(input))
		require.NoError(t, err)

		require.Len(t, rows, 1)
		assert.Equal(t, "10001", rows[0].Barcode)
		assert.Equal(t, "2", rows[0].Quantity)
	})

	t.Run("连续BRC后者覆盖前者", func(t *testing.T) {
		input := "BRC10001\nBRC10002\nQNT7\n"
		rows, err := DecodeRows("a.txt", strings.NewReader(input))
		require.NoError(t, err)

		require.Len(t, rows, 1)
		assert.Equal(t, "10002", rows[0].Barcode)
	})

	t.Run("无关行被忽略", func(t *testing.T) {
		input := "# 注释\n\nBRC10001\n某些说明\nQNT1\n"
		rows, err := DecodeRows("a.txt", strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 5, rows[0].Line)
	})
}

// buildXLSX 构造内存中的xlsx文件
func buildXLSX(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, cell))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

// TestDecodeXLSXRows 测试表格文件解码
func TestDecodeXLSXRows(t *testing.T) {
	t.Run("按行读取条码与数量", func(t *testing.T) {
		buf := buildXLSX(t, [][]string{
			{"10001", "5"},
			{"10002", "-2"},
		})

		rows, err := DecodeRows("leftover.xlsx", buf)
		require.NoError(t, err)

		require.Len(t, rows, 2)
		assert.Equal(t, "10001", rows[0].Barcode)
		assert.Equal(t, "5", rows[0].Quantity)
		assert.Equal(t, 1, rows[0].Line)
		assert.Equal(t, "10002", rows[1].Barcode)
		assert.Equal(t, 2, rows[1].Line)
	})

	t.Run("条码为空的行静默跳过且行号不变", func(t *testing.T) {
		buf := buildXLSX(t, [][]string{
			{"", "忽略"},
			{"10001", "3"},
		})

		rows, err := DecodeRows("leftover.xlsx", buf)
		require.NoError(t, err)

		require.Len(t, rows, 1)
		assert.Equal(t, "10001", rows[0].Barcode)
		// 行号按工作表实际行号计
		assert.Equal(t, 2, rows[0].Line)
	})

	t.Run("损坏的文件报文件无法解析", func(t *testing.T) {
		_, err := DecodeRows("broken.xlsx", strings.NewReader("不是xlsx内容"))
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeMalformedFile, apperrors.GetAppError(err).Code)
	})
}

// TestDecodeRows_UnsupportedExtension 测试不支持的文件类型
func TestDecodeRows_UnsupportedExtension(t *testing.T) {
	_, err := DecodeRows("leftover.csv", strings.NewReader(""))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnsupportedFile, apperrors.GetAppError(err).Code)
}
