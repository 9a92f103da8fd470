package integration

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// 教学说明：批量导入集成测试
//
// 测试场景覆盖：
// 1. txt格式(BRC/QNT标记行)导入
// 2. xlsx格式导入
// 3. 某行失败时中止,之前已提交的行保持提交(无整批回滚)

// TestBulkImportTxt 测试txt格式批量导入
func TestBulkImportTxt(t *testing.T) {
	RequireServer(t)

	bookID, barcode := RegisterTestBook(t, "《批量导入txt测试》", "批量txt作者")

	t.Run("正常导入", func(t *testing.T) {
		content := fmt.Sprintf("BRC%s\nQNT12\nBRC%s\nQNT-2\n", barcode, barcode)

		resp := PostFile(t, BaseURL+"/leftover/bulk", "import.txt", []byte(content))
		assert.Equal(t, http.StatusCreated, resp.StatusCode, "导入失败: %s", resp.ErrorMessage())

		check := GetJSON(t, fmt.Sprintf("%s/leftover/%d", BaseURL, bookID))
		var data struct {
			Quantity int `json:"quantity"`
		}
		check.Decode(t, &data)
		assert.Equal(t, 10, data.Quantity, "+12-2应该剩10")

		t.Logf("✓ txt导入成功，库存: %d", data.Quantity)
	})

	t.Run("未登记条码行中止导入但保留已提交行", func(t *testing.T) {
		// 第1对生效,第2对的条码未登记,导入在该行中止
		content := fmt.Sprintf("BRC%s\nQNT5\nBRCNO-SUCH-BARCODE\nQNT1\n", barcode)

		resp := PostFile(t, BaseURL+"/leftover/bulk", "import.txt", []byte(content))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "未登记条码应该返回404")
		assert.Contains(t, resp.ErrorMessage(), "第4行", "错误信息应该带行号")

		check := GetJSON(t, fmt.Sprintf("%s/leftover/%d", BaseURL, bookID))
		var data struct {
			Quantity int `json:"quantity"`
		}
		check.Decode(t, &data)
		assert.Equal(t, 15, data.Quantity, "失败行之前的+5应该保持提交")

		t.Logf("✓ 部分提交语义正确: %s", resp.ErrorMessage())
	})

	t.Run("不支持的文件类型", func(t *testing.T) {
		resp := PostFile(t, BaseURL+"/leftover/bulk", "import.csv", []byte("a,b\n"))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "csv应该被拒绝")
	})
}

// TestBulkImportXLSX 测试xlsx格式批量导入
func TestBulkImportXLSX(t *testing.T) {
	RequireServer(t)

	bookID, barcode := RegisterTestBook(t, "《批量导入xlsx测试》", "批量xlsx作者")

	content := buildXLSX(t, [][2]string{
		{barcode, "6"},
		{"", ""}, // 空条码行,静默跳过
		{barcode, "-1"},
	})

	resp := PostFile(t, BaseURL+"/leftover/bulk", "import.xlsx", content)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "导入失败: %s", resp.ErrorMessage())

	check := GetJSON(t, fmt.Sprintf("%s/leftover/%d", BaseURL, bookID))
	var data struct {
		Quantity int `json:"quantity"`
	}
	check.Decode(t, &data)
	assert.Equal(t, 5, data.Quantity, "+6-1应该剩5")

	t.Logf("✓ xlsx导入成功，库存: %d", data.Quantity)
}

// buildXLSX 构造测试用xlsx文件(A列条码,B列数量)
func buildXLSX(t *testing.T, rows [][2]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		cellA, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		cellB, err := excelize.CoordinatesToCellName(2, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cellA, row[0]))
		require.NoError(t, f.SetCellValue(sheet, cellB, row[1]))
	}

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err, "生成xlsx失败")
	return buf.Bytes()
}
