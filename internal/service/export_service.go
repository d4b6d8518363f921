package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"weekly-summary/internal/model"
	"weekly-summary/internal/report"
	"weekly-summary/internal/repository"
	"weekly-summary/pkg/metrics"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("没有数据可以导出")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// 导出格式
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// ExportColumns 导出列即记录自身字段，不做中文列名映射
var ExportColumns = []string{
	"id", "name", "department", "start_date", "end_date",
	"core_work", "completion", "problems", "next_week_plan",
	"submission_time", "user_id",
}

// ExportFile 已落盘的导出文件
type ExportFile struct {
	Filename    string
	Path        string
	ContentType string
	Data        []byte
}

// ExportService 原始数据导出业务接口
type ExportService interface {
	// Export 按格式导出全部提交记录（xlsx | csv）
	Export(ctx context.Context, format string) (*ExportFile, error)
	ExportExcel(ctx context.Context) (*ExportFile, error)
	// ExportCSV 导出为带 UTF-8 BOM 的 CSV，便于 Excel 直接打开
	ExportCSV(ctx context.Context) (*ExportFile, error)
}

type exportService struct {
	repo      *repository.Repository
	artifacts *Artifacts
	clock     report.Clock
	logger    *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, artifacts *Artifacts, clock report.Clock, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, artifacts: artifacts, clock: clock, logger: logger}
}

func (s *exportService) Export(ctx context.Context, format string) (*ExportFile, error) {
	switch format {
	case FormatXLSX:
		return s.ExportExcel(ctx)
	case FormatCSV:
		return s.ExportCSV(ctx)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func (s *exportService) ExportExcel(ctx context.Context) (*ExportFile, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			s.logger.Error("写入 Excel 行失败", zap.Int("row", i+1), zap.Error(err))
			return nil, ErrExportGenerateFail
		}
	}
	last, _ := excelize.ColumnNumberToName(len(ExportColumns))
	f.SetCellStyle(sheet, "A1", last+"1", headerStyle)
	f.SetColWidth(sheet, "A", last, 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写入 Excel buffer 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return s.save(FormatXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (s *exportService) ExportCSV(ctx context.Context) (*ExportFile, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		s.logger.Error("写入 CSV 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return s.save(FormatCSV, "text/csv; charset=utf-8", buf.Bytes())
}

// rows 表头 + 按提交时间升序的记录
func (s *exportService) rows(ctx context.Context) ([][]string, error) {
	records, err := s.repo.Submission.List(ctx)
	if err != nil {
		s.logger.Error("读取提交记录失败", zap.Error(err))
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrExportNoData
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SubmissionTime < records[j].SubmissionTime
	})

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, ExportColumns)
	for i := range records {
		rows = append(rows, exportRow(&records[i]))
	}
	return rows, nil
}

func exportRow(r *model.Submission) []string {
	return []string{
		r.ID, r.Name, r.Department, r.StartDate, r.EndDate,
		r.CoreWork, r.Completion, r.Problems, r.NextWeekPlan,
		r.SubmissionTime, r.UserID,
	}
}

func (s *exportService) save(format, contentType string, data []byte) (*ExportFile, error) {
	filename := "work_summaries_" + s.clock().Format("20060102_150405") + "." + format
	path, err := s.artifacts.Save(filename, data)
	if err != nil {
		s.logger.Error("保存导出文件失败", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}

	metrics.ExportsTotal.WithLabelValues(format).Inc()
	s.logger.Info("数据已导出", zap.String("filename", filename), zap.Int("bytes", len(data)))
	return &ExportFile{
		Filename:    filename,
		Path:        path,
		ContentType: contentType,
		Data:        data,
	}, nil
}
