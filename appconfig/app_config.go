package appconfig

import (
	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	McpBaseURL      string `env:"MCP-BASE-URL" ini:"mcp_base_url"`
	PlannerModel    string `env:"PLANNER-MODEL" ini:"planner_model"`
	TranslatorModel string `env:"TRANSLATOR-MODEL" ini:"translator_model"`
	RedisAddr       string `env:"REDIS-ADDR" ini:"redis_addr"`

	MaxRounds          int `ini:"max_rounds"`
	CallTimeoutSeconds int `ini:"call_timeout_seconds"`
	SessionTTLMinutes  int `ini:"session_ttl_minutes"`
	MaxHistoryTurns    int `ini:"max_history_turns"`
}
