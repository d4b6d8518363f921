package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"weekly-summary/internal/service"
)

func newExportCmd(configPath *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "导出全部提交记录",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != service.FormatXLSX && format != service.FormatCSV {
				return fmt.Errorf("不支持的导出格式 %q（可选 xlsx / csv）", format)
			}

			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			file, err := a.svc.Export.Export(cmd.Context(), format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), file.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", service.FormatXLSX, "导出格式 xlsx | csv")
	return cmd
}
