package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"dinerboard/internal/parser"
	"dinerboard/internal/service/calculator"
	"dinerboard/internal/service/sheet"
)

var errMonthMismatch = errors.New("workbook year/month does not match")

// importWorkbook 解析工作簿并合并到会话；不保存
func importWorkbook(s *sheet.Session, f *excelize.File, sheetName string, out io.Writer) (int, error) {
	result, err := parser.NewSheetParser(f, sheetName).ParseSheet(s.Layout)
	if err != nil {
		return 0, err
	}
	if result.Year != 0 && (result.Year != s.Year || result.Month != s.Month) {
		return 0, fmt.Errorf("%w: file %d-%02d, sheet %d-%02d", errMonthMismatch, result.Year, result.Month, s.Year, s.Month)
	}
	for _, issue := range result.Issues {
		if issue.Key != "" {
			fmt.Fprintf(out, "  %d행 %s: %s\n", issue.RowNo, issue.Key, issue.Message)
		} else {
			fmt.Fprintf(out, "  %d행: %s\n", issue.RowNo, issue.Message)
		}
	}
	return s.Merge(result.Records), nil
}

func importCmd() *cobra.Command {
	var (
		target    monthFlags
		file      string
		sheetName string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "把导出过的식수表 Excel 导回数据库",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			id, year, month, err := target.resolve(st.GetCurrentYearMonth)
			if err != nil {
				return err
			}

			f, err := excelize.OpenFile(file)
			if err != nil {
				return fmt.Errorf("open %s: %w", file, err)
			}
			defer f.Close()

			s := sheet.Load(st, calculator.NewEngine(cfg.Classifier()), id, year, month)
			applied, err := importWorkbook(s, f, sheetName, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			changes := s.Changes()
			if len(changes) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d행 읽음, 변경 없음\n", applied)
				return nil
			}
			if err := st.SaveDinerRows(id, year, month, changes, s.WorkingDays); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			s.MarkPersisted()
			log.Printf("imported %s: %d rows read, %d saved", file, applied, len(changes))
			fmt.Fprintf(cmd.OutOrStdout(), "%d행 읽음, %d행 저장 완료\n", applied, len(changes))
			return nil
		},
	}

	target.register(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "Excel 文件")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "工作表名 (默认 식수)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
