package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"weekly-summary/internal/dto"
)

func newReportCmd(configPath *string) *cobra.Command {
	var (
		file       string
		start, end string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "生成周报汇报（默认读取已提交记录）",
		Example: `  weeklyctl report
  weeklyctl report --start 2024-01-01 --end 2024-01-05
  weeklyctl report --file 周报汇总.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			var result *dto.ReportResponse
			if file != "" {
				tmp, err := copyToUpload(file, a.cfg.Report.UploadDir)
				if err != nil {
					return fmt.Errorf("读取文件失败: %w", err)
				}
				result, err = a.svc.Report.GenerateFromFile(ctx, tmp, filepath.Base(file))
				if err != nil {
					return err
				}
			} else {
				result, err = a.svc.Report.GenerateFromStore(ctx, start, end)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Content)
			fmt.Fprintf(out, "\n已保存: %s\n", filepath.Join(a.cfg.Report.OutputDir, result.Filename))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "汇总表格路径（.xlsx / .csv）")
	cmd.Flags().StringVar(&start, "start", "", "周期开始日期 YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "周期结束日期 YYYY-MM-DD")
	cmd.MarkFlagsRequiredTogether("start", "end")
	cmd.MarkFlagsMutuallyExclusive("file", "start")
	return cmd
}
