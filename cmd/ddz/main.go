package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/doudizhu/internal/client"
	"github.com/palemoky/doudizhu/internal/config"
	"github.com/palemoky/doudizhu/internal/game"
	"github.com/palemoky/doudizhu/internal/logger"
	"github.com/palemoky/doudizhu/internal/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	mode := flag.String("mode", "", "对局模式，覆盖配置文件: standard | random-landlord | fast-auto-bid | no-bid")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}
	if *mode != "" {
		cfg.Game.Mode = *mode
	}

	if cfg.Log.Enabled {
		if err := logger.Init(); err != nil {
			log.Printf("初始化日志失败: %v", err)
			logger.Disable()
		}
	} else {
		logger.Disable()
	}
	defer logger.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			panic(r)
		}
	}()

	opts, err := cfg.Game.Options()
	if err != nil {
		log.Fatalf("配置错误: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 读取标准输入会阻塞，收到信号后直接退出
	go func() {
		<-ctx.Done()
		fmt.Println("\n再见")
		logger.Close()
		os.Exit(0)
	}()

	store := openStore(ctx, cfg.Redis)
	engine := game.New(opts)
	session := client.NewSession(engine, store, os.Stdin, os.Stdout, client.Options{
		Mode:    opts.Mode,
		AIDelay: cfg.Game.AIDelay(),
	})

	if err := session.Run(ctx); err != nil && ctx.Err() == nil {
		logger.LogError("session ended: %v", err)
		fmt.Fprintf(os.Stderr, "出错了: %v\n", err)
		os.Exit(1)
	}
}

// openStore Redis 可用时使用 Redis，否则退回内存存储
func openStore(ctx context.Context, cfg config.RedisConfig) storage.Store {
	if !cfg.Enabled {
		return storage.NewMemoryStore()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 测试 Redis 连接
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.LogError("redis 连接失败，使用内存存储: %v", err)
		_ = rdb.Close()
		return storage.NewMemoryStore()
	}
	return storage.NewRedisStore(rdb, cfg.KeyPrefix)
}
