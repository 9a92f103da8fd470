package stock

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
	"github.com/xiebiao/bookdepot/pkg/metrics"
)

// RawRow 归一化后的导入行
// 两种文件格式都先解码成这个形状再统一处理
type RawRow struct {
	Barcode  string // 图书条码
	Quantity string // 数量原始文本(带符号整数,校验延后到逐行处理)
	Line     int    // 文件中的行号(1开始),用于错误定位
}

// txt文件的行标记
const (
	txtBarcodeMarker  = "BRC" // 条码行:BRC<条码>
	txtQuantityMarker = "QNT" // 数量行:QNT<带符号整数>
)

// DecodeRows 按文件扩展名解码导入文件
//
// 支持的格式:
// - .xlsx 表格:第一个工作表,A列条码、B列数量
// - .txt  行式:BRC行设置条码,随后的QNT行消费它产生一行数据
func DecodeRows(filename string, r io.Reader) ([]RawRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return decodeXLSXRows(r)
	case ".txt":
		return decodeTxtRows(r)
	default:
		return nil, apperrors.New(apperrors.ErrCodeUnsupportedFile, "不支持的文件类型,仅支持.xlsx和.txt")
	}
}

// decodeXLSXRows 解码表格文件
// 业务规则:条码为空的行静默跳过(不算错误),行号按工作表实际行号计
func decodeXLSXRows(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeMalformedFile, "无法解析xlsx文件")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeMalformedFile, "xlsx文件没有工作表")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeMalformedFile, "无法读取xlsx工作表")
	}

	rows := make([]RawRow, 0, len(cells))
	for i, row := range cells {
		barcode := ""
		quantity := ""
		if len(row) > 0 {
			barcode = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			quantity = strings.TrimSpace(row[1])
		}

		// 条码为空的行(含表头、空行)静默跳过
		if barcode == "" {
			metrics.IncCounterVec(metrics.BulkImportRowsTotal, map[string]string{"result": "skipped"})
			continue
		}

		rows = append(rows, RawRow{
			Barcode:  barcode,
			Quantity: quantity,
			Line:     i + 1,
		})
	}
	return rows, nil
}

// decodeTxtRows 解码行式文件
//
// 状态机:
// - BRC行记下待配对的条码
// - QNT行消费待配对条码,产生一行数据并清空状态
// - 没有前置BRC的QNT行静默丢弃;连续BRC行后者覆盖前者
// - 其他行一律忽略
func decodeTxtRows(r io.Reader) ([]RawRow, error) {
	var rows []RawRow
	pendingBarcode := ""

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, txtBarcodeMarker):
			pendingBarcode = strings.TrimSpace(strings.TrimPrefix(line, txtBarcodeMarker))

		case strings.HasPrefix(line, txtQuantityMarker):
			// 没有前置条码的数量行静默丢弃
			if pendingBarcode == "" {
				metrics.IncCounterVec(metrics.BulkImportRowsTotal, map[string]string{"result": "skipped"})
				continue
			}
			rows = append(rows, RawRow{
				Barcode:  pendingBarcode,
				Quantity: strings.TrimSpace(strings.TrimPrefix(line, txtQuantityMarker)),
				Line:     lineNo,
			})
			pendingBarcode = ""
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeMalformedFile, "无法读取txt文件")
	}
	return rows, nil
}
