package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"dinerboard/internal/model"
	"dinerboard/internal/service/calculator"
	"dinerboard/internal/service/rangefill"
	"dinerboard/internal/service/sheet"
)

// fillRange 终端批量填充的选区：日期（1 起始）与列键
type fillRange struct {
	fromDay int
	toDay   int
	fromCol string
	toCol   string
}

func columnIndex(visible []string, key string) (int, bool) {
	for i, k := range visible {
		if k == key {
			return i + 1, true
		}
	}
	return 0, false
}

// selectRange 按与界面相同的状态机建立选区，结束后应处于等待输入
func selectRange(s *sheet.Session, r fillRange) error {
	toDay, toCol := r.toDay, r.toCol
	if toDay == 0 {
		toDay = r.fromDay
	}
	if toCol == "" {
		toCol = r.fromCol
	}

	from, ok := columnIndex(s.Layout.VisibleColumns, r.fromCol)
	if !ok {
		return fmt.Errorf("column %q is not part of this sheet", r.fromCol)
	}
	to, ok := columnIndex(s.Layout.VisibleColumns, toCol)
	if !ok {
		return fmt.Errorf("column %q is not part of this sheet", toCol)
	}

	s.PointerDown(rangefill.Cell{Row: r.fromDay - 1, Col: from}, true)
	s.PointerEnter(rangefill.Cell{Row: toDay - 1, Col: to})
	s.PointerUp()
	if s.Selector.Phase() != rangefill.PhasePrompting {
		return fmt.Errorf("selection must start and end on fillable cells (day %d %s .. day %d %s)", r.fromDay, r.fromCol, toDay, toCol)
	}
	return nil
}

// runFill 建立选区、阻塞索取数值并填充；返回是否有修改
func runFill(cmd *cobra.Command, s *sheet.Session, r fillRange, in io.Reader, out io.Writer) (bool, error) {
	if err := selectRange(s, r); err != nil {
		return false, err
	}
	sel, _ := s.Selector.Range()
	fmt.Fprintf(out, "%s %d-%02d: %d개 셀 선택\n", s.Profile.Name, s.Year, s.Month, sel.Cells())

	value, ok, err := rangefill.Prompt(cmd.Context(), rangefill.NewLinePrompter(in, out))
	if err != nil {
		s.CancelFill()
		return false, err
	}
	if !ok {
		s.CancelFill()
		fmt.Fprintln(out, "취소되었습니다")
		return false, nil
	}
	if err := s.ConfirmFill(strconv.Itoa(value)); err != nil {
		return false, err
	}
	return true, nil
}

func fillCmd() *cobra.Command {
	var (
		target monthFlags
		r      fillRange
	)

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "在终端批量填充一段日期/列并保存",
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

			s := sheet.Load(st, calculator.NewEngine(cfg.Classifier()), id, year, month)
			changed, err := runFill(cmd, s, r, os.Stdin, cmd.OutOrStdout())
			if err != nil || !changed {
				return err
			}

			changes := s.Changes()
			if err := st.SaveDinerRows(id, year, month, changes, s.WorkingDays); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			s.MarkPersisted()

			summary := s.Summary()
			fmt.Fprintf(cmd.OutOrStdout(), "%d행 저장 완료\n", len(changes))
			for _, key := range s.Layout.VisibleColumns {
				if total, ok := summary.Totals[key]; ok && model.IsEditableNumericKey(key) {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s 합계 %d / 평균 %d\n", key, total, summary.Averages[key])
				}
			}
			return nil
		},
	}

	target.register(cmd)
	cmd.Flags().IntVar(&r.fromDay, "from", 1, "起始日")
	cmd.Flags().IntVar(&r.toDay, "to", 0, "结束日 (默认同起始日)")
	cmd.Flags().StringVar(&r.fromCol, "col", model.KeyLunch, "起始列键 (如 breakfast / lunch / price1)")
	cmd.Flags().StringVar(&r.toCol, "to-col", "", "结束列键 (默认同起始列)")
	return cmd
}
