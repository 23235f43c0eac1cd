package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"dinerboard/internal/server"
	"dinerboard/internal/util"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		devMode bool
		open    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP API 服务",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, info, err := loadConfig()
			if err != nil {
				return err
			}
			// config.toml / 环境变量显式配置的端口优先
			if port > 0 && !info.PortSpecified {
				cfg.Server.Port = port
			}
			if devMode {
				cfg.Server.DevMode = true
			}

			srv, err := server.NewServer(cfg)
			if err != nil {
				return err
			}

			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			url := fmt.Sprintf("http://localhost:%d/api/status", cfg.Server.Port)

			errCh := make(chan error, 1)
			go func() {
				log.Printf("服务启动中，监听端口 %d ...", cfg.Server.Port)
				errCh <- srv.Run(addr)
			}()

			if open {
				if err := util.OpenBrowser(url); err != nil {
					log.Printf("无法自动打开浏览器，请手动访问: %s", url)
				}
			}

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			log.Printf("正在关闭服务...")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "服务端口 (仅当 config.toml 未显式配置 port 时生效)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "开发模式")
	cmd.Flags().BoolVar(&open, "open", false, "启动后打开浏览器")
	return cmd
}
