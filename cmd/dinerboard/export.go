package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"dinerboard/internal/model"
	"dinerboard/internal/service/calculator"
	"dinerboard/internal/service/excel"
	"dinerboard/internal/service/grid"
	"dinerboard/internal/service/sheet"
)

// monthFlags 账户 + 年月（年月缺省时使用当前操作年月）
type monthFlags struct {
	account int
	year    int
	month   int
}

func (f *monthFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.account, "account", 0, "账户 ID")
	cmd.Flags().IntVar(&f.year, "year", 0, "年份")
	cmd.Flags().IntVar(&f.month, "month", 0, "月份")
	_ = cmd.MarkFlagRequired("account")
}

// resolve 补全年月并校验
func (f *monthFlags) resolve(current func() (int, int, error)) (model.AccountID, int, int, error) {
	if f.account <= 0 {
		return 0, 0, 0, fmt.Errorf("invalid account: %d", f.account)
	}
	year, month := f.year, f.month
	if year == 0 && month == 0 {
		y, m, err := current()
		if err != nil {
			return 0, 0, 0, fmt.Errorf("no year/month given and none selected: %w", err)
		}
		year, month = y, m
	}
	if month < 1 || month > 12 || year <= 0 {
		return 0, 0, 0, fmt.Errorf("invalid year/month: %d-%d", year, month)
	}
	return model.AccountID(f.account), year, month, nil
}

func exportCmd() *cobra.Command {
	var (
		target monthFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "导出某账户某月的식수表为 Excel",
		RunE: func(_ *cobra.Command, _ []string) error {
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

			s := sheet.Load(st, calculator.NewEngine(cfg.Classifier()), id, year, month)
			exporter := excel.NewExporter(cfg.Excel.SheetName, cfg.Excel.ColumnWidth)
			f, err := exporter.Export(excel.SheetExport{
				Profile:     s.Profile,
				Year:        s.Year,
				Month:       s.Month,
				WorkingDays: s.WorkingDays,
				Layout:      s.Layout,
				Rows:        grid.Clone(s.Rows),
				Summary:     s.Summary(),
			})
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			defer f.Close()

			if output == "" {
				output = excel.FileName(id, year, month)
			}
			if err := f.SaveAs(output); err != nil {
				return fmt.Errorf("save %s: %w", output, err)
			}
			log.Printf("已导出: %s", output)
			return nil
		},
	}

	target.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "输出文件 (默认 diner-<账户>-<年>-<月>.xlsx)")
	return cmd
}
