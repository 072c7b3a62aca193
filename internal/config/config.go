package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/doudizhu/internal/game"
	"github.com/palemoky/doudizhu/internal/game/bidding"
	"github.com/palemoky/doudizhu/internal/game/card"
)

// Config 单机版配置
type Config struct {
	Game  GameConfig  `yaml:"game"`
	Redis RedisConfig `yaml:"redis"`
	Log   LogConfig   `yaml:"log"`
}

// GameConfig 游戏配置
type GameConfig struct {
	Mode        string `yaml:"mode"`          // standard | random-landlord | fast-auto-bid | no-bid
	NoBidPolicy string `yaml:"no_bid_policy"` // redeal | random
	HumanSeat   int    `yaml:"human_seat"`
	Seed        uint64 `yaml:"seed"`        // 0 表示按时间生成
	AIDelayMs   int    `yaml:"ai_delay_ms"` // 电脑思考延迟（毫秒），只影响显示节奏
	MaxRedeals  int    `yaml:"max_redeals"` // 连续重新发牌上限，超过后随机指定地主
}

// RedisConfig Redis 配置，用于保存累计得分和理牌偏好
type RedisConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// LogConfig 日志配置
type LogConfig struct {
	Enabled bool `yaml:"enabled"`
}

// AIDelay 返回电脑思考延迟
func (c *GameConfig) AIDelay() time.Duration {
	return time.Duration(c.AIDelayMs) * time.Millisecond
}

// Options 转换为引擎参数
func (c *GameConfig) Options() (game.Options, error) {
	mode, err := game.ParseMode(c.Mode)
	if err != nil {
		return game.Options{}, err
	}
	policy, err := bidding.ParsePolicy(c.NoBidPolicy)
	if err != nil {
		return game.Options{}, err
	}
	return game.Options{
		Mode:       mode,
		Policy:     policy,
		HumanSeat:  c.HumanSeat,
		Seed:       c.Seed,
		MaxRedeals: c.MaxRedeals,
	}, nil
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// 设置默认值
	if cfg.Game.Mode == "" {
		cfg.Game.Mode = game.ModeStandard.String()
	}
	if cfg.Game.NoBidPolicy == "" {
		cfg.Game.NoBidPolicy = bidding.PolicyRedeal.String()
	}
	if cfg.Game.MaxRedeals <= 0 {
		cfg.Game.MaxRedeals = 10
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "ddz:"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置取值
func (c *Config) Validate() error {
	if _, err := c.Game.Options(); err != nil {
		return err
	}
	if c.Game.HumanSeat < 0 || c.Game.HumanSeat >= card.NumPlayers {
		return fmt.Errorf("human_seat must be in [0,%d), got %d", card.NumPlayers, c.Game.HumanSeat)
	}
	if c.Game.AIDelayMs < 0 {
		return fmt.Errorf("ai_delay_ms must not be negative, got %d", c.Game.AIDelayMs)
	}
	return nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Game: GameConfig{
			Mode:        game.ModeStandard.String(),
			NoBidPolicy: bidding.PolicyRedeal.String(),
			AIDelayMs:   800,
			MaxRedeals:  10,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "ddz:",
		},
		Log: LogConfig{
			Enabled: true,
		},
	}
}
