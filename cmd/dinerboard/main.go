package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dinerboard/internal/config"
	"dinerboard/internal/store"
)

var (
	cfgFile string
	dataDir string

	rootCmd = &cobra.Command{
		Use:           "dinerboard",
		Short:         "식수 집계 / 월간 식수표 관리",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件 (默认: 可执行文件同目录的 config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "数据目录 (覆盖配置文件)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(fillCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(accountCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig 加载配置：config.toml < 环境变量 < 命令行参数
func loadConfig() (*config.AppConfig, config.LoadConfigInfo, error) {
	var (
		cfg  *config.AppConfig
		info config.LoadConfigInfo
		err  error
	)
	if cfgFile != "" {
		cfg, info, err = config.LoadConfigFrom(cfgFile)
	} else {
		cfg, info, err = config.LoadConfigWithInfo()
	}
	if err != nil {
		return nil, info, fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.Data.DataDir = dataDir
	}
	return cfg, info, nil
}

// openStore 打开数据库；调用方负责 Close
func openStore(cfg *config.AppConfig) (*store.Store, error) {
	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	st, err := store.New(config.DBPath(cfg))
	if err != nil {
		return nil, err
	}
	log.Printf("数据目录: %s", dir)
	return st, nil
}
