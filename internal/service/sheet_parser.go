package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"weekly-summary/internal/report"
	apperrors "weekly-summary/pkg/errors"
)

var (
	ErrUnsupportedFormat = errors.New("不支持的文件格式，请上传 .xlsx 或 .csv 文件")
	ErrEmptySheet        = errors.New("文件中没有表头")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseSheet 按原始文件名的扩展名读取上传文件，第一行为表头
// 任何读取失败都包装为 IngestionError。
func ParseSheet(path, filename string) (report.Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	case ".csv":
		rows, err = readCSV(path)
	default:
		err = ErrUnsupportedFormat
	}
	if err == nil && len(rows) == 0 {
		err = ErrEmptySheet
	}
	if err != nil {
		return report.Table{}, &apperrors.IngestionError{Filename: filename, Err: err}
	}
	return report.Table{Columns: rows[0], Records: rows[1:]}, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法解析 Excel 文件: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("无法解析 CSV 文件: %w", err)
	}
	return rows, nil
}
