package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"dinerboard/internal/model"
	"dinerboard/internal/service/account"
)

// accountRepo 账户命令用到的存储能力
type accountRepo interface {
	ListAccounts() ([]model.Account, error)
	UpsertAccount(a model.Account) error
	ListExtraColumns(id model.AccountID) ([]model.ExtraDietColumn, error)
}

func setAccount(repo accountRepo, id int, name, typ string, out io.Writer) error {
	a, err := model.NewAccount(model.AccountID(id), name, typ)
	if err != nil {
		return err
	}
	if err := repo.UpsertAccount(a); err != nil {
		return err
	}
	p := account.NewResolver([]model.Account{a}).Profile(a.ID)
	fmt.Fprintf(out, "%d %s (%s) 저장 완료\n", p.ID, p.Name, p.Type)
	return nil
}

func listAccounts(repo accountRepo, out io.Writer) error {
	accounts, err := repo.ListAccounts()
	if err != nil {
		return err
	}
	resolver := account.NewResolver(accounts)
	for _, a := range accounts {
		p := resolver.Profile(a.ID)
		cols, err := repo.ListExtraColumns(a.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d\t%s\t%s\t추가식단 %d\n", p.ID, p.Name, p.Type, len(cols))
	}
	return nil
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "管理账户主数据",
	}

	var (
		id   int
		name string
		typ  string
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "新增或更新账户（名称 + 类型）",
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
			return setAccount(st, id, name, typ, cmd.OutOrStdout())
		},
	}
	set.Flags().IntVar(&id, "id", 0, "账户 ID")
	set.Flags().StringVar(&name, "name", "", "账户名称")
	set.Flags().StringVar(&typ, "type", "", "类型: school/industrial/nursing_home/hospital/welfare/other")
	_ = set.MarkFlagRequired("id")
	_ = set.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "列出账户",
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
			return listAccounts(st, cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(set, list)
	return cmd
}
