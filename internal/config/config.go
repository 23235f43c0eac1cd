package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"dinerboard/internal/service/calculator"
)

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Rules  RulesConfig  `toml:"rules"`
	Excel  ExcelConfig  `toml:"excel"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port              int  `toml:"port"`
	DevMode           bool `toml:"dev_mode"`
	SessionTTLMinutes int  `toml:"session_ttl_minutes"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
	DBFile  string `toml:"db_file"`
}

// RulesConfig 额外饮食列名称归类口径
type RulesConfig struct {
	LunchPrefixes  []string `toml:"lunch_prefixes"`
	DinnerPrefixes []string `toml:"dinner_prefixes"`
	SnackNames     []string `toml:"snack_names"`
	DinnerNames    []string `toml:"dinner_names"`
}

// ExcelConfig Excel 导出相关配置
type ExcelConfig struct {
	SheetName   string  `toml:"sheet_name"`
	ColumnWidth float64 `toml:"column_width"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	def := calculator.DefaultClassifier()
	return &AppConfig{
		Server: ServerConfig{
			Port:              20262,
			DevMode:           false,
			SessionTTLMinutes: 120,
		},
		Data: DataConfig{
			DataDir: "data",
			DBFile:  "dinerboard.db",
		},
		Rules: RulesConfig{
			LunchPrefixes:  def.LunchPrefixes,
			DinnerPrefixes: def.DinnerPrefixes,
			SnackNames:     def.SnackNames,
			DinnerNames:    def.DinnerNames,
		},
		Excel: ExcelConfig{
			SheetName:   "식수",
			ColumnWidth: 10,
		},
	}
}

// Classifier 根据配置构建分类器；未配置的项沿用默认值
func (c *AppConfig) Classifier() calculator.Classifier {
	out := calculator.DefaultClassifier()
	if len(c.Rules.LunchPrefixes) > 0 {
		out.LunchPrefixes = c.Rules.LunchPrefixes
	}
	if len(c.Rules.DinnerPrefixes) > 0 {
		out.DinnerPrefixes = c.Rules.DinnerPrefixes
	}
	if len(c.Rules.SnackNames) > 0 {
		out.SnackNames = c.Rules.SnackNames
	}
	if len(c.Rules.DinnerNames) > 0 {
		out.DinnerNames = c.Rules.DinnerNames
	}
	return out
}

// SessionTTL 编辑会话空闲过期时间
func (c *AppConfig) SessionTTL() time.Duration {
	if c.Server.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(c.Server.SessionTTLMinutes) * time.Minute
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return LoadConfigFrom(filepath.Join(exeDir, "config.toml"))
}

// LoadConfigFrom 从指定路径加载；文件不存在时使用默认配置
func LoadConfigFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", configPath, err)
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	// 环境变量覆盖（用于 E2E / 本地运行）
	if v := os.Getenv("DINERBOARD_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("DINERBOARD_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return nil, info, fmt.Errorf("invalid DINERBOARD_PORT: %q", v)
		}
		config.Server.Port = port
		info.PortSpecified = true
	}

	return config, info, nil
}

// ResolveDataDir 数据目录：绝对路径原样使用，相对路径相对于可执行文件目录
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// EnsureDataDir 确保数据目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDataDir(config)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	if err := os.MkdirAll(ExportDir(config), 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// ExportDir 流式导出的临时文件目录
func ExportDir(config *AppConfig) string {
	return filepath.Join(ResolveDataDir(config), "exports")
}

// DBPath 数据库文件路径
func DBPath(config *AppConfig) string {
	name := config.Data.DBFile
	if name == "" {
		name = "dinerboard.db"
	}
	return filepath.Join(ResolveDataDir(config), name)
}
