package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/database"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/cron"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/pubsub"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/queue"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/repository"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/service"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/worker"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 Queue 和 Pub/Sub
	notifyQueue := queue.NewQueue(rdb, cfg.Queue.NotificationQueue)
	publisher := pubsub.NewPublisher(rdb)

	// 初始化 Repository 和 Service
	notificationRepo := repository.NewNotificationRepository(db)
	notificationService := service.NewNotificationService(notificationRepo)

	// 创建任务处理器
	processor := worker.NewProcessor(notificationService, publisher)

	// 启动已读通知清理任务
	cronService := cron.NewService(notificationRepo, 30)
	cronService.Start()
	defer cronService.Stop()

	// 创建 context 用于优雅关闭
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	maxWorkers := cfg.Queue.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 2
	}
	log.Printf("Notifier started, max workers: %d", maxWorkers)

	// 启动 worker 循环
	for i := 0; i < maxWorkers; i++ {
		go func(workerID int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("Worker %d shutting down", workerID)
					return
				default:
					// 从队列获取任务
					msg, err := notifyQueue.Pop(ctx, 5*time.Second)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Printf("Worker %d: failed to pop message: %v", workerID, err)
						continue
					}

					if msg == nil {
						continue // 超时，继续等待
					}

					if err := processor.Process(ctx, msg); err != nil {
						log.Printf("Worker %d: notification for user %d failed: %v", workerID, msg.UserID, err)
					}
				}
			}
		}(i)
	}

	// 等待 context 取消
	<-ctx.Done()
	log.Println("Notifier shutdown complete")
}
