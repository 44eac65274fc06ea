package main

import (
	"context"
	"fmt"
	"log"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/api"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/api/handler"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/database"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/email"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/oauth"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/oss"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/pubsub"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/queue"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/ws"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/repository"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/service"
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

	// 初始化 OSS（可选）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			log.Println("OSS client initialized")
		}
	}

	// 初始化队列与 Pub/Sub
	notifyQueue := queue.NewQueue(rdb, cfg.Queue.NotificationQueue)
	publisher := pubsub.NewPublisher(rdb)
	subscriber := pubsub.NewSubscriber(rdb)

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// 订阅私信与通知事件，推送给在线用户
	go func() {
		err := subscriber.SubscribeChat(context.Background(), func(msg *pubsub.ChatMessage) {
			wsHub.SendToUser(msg.RecipientID, &ws.Message{
				Type: ws.TypeChatMessage,
				Data: msg,
			})
		})
		if err != nil && err != context.Canceled {
			log.Printf("Chat subscription stopped: %v", err)
		}
	}()
	go func() {
		err := subscriber.SubscribeNotifications(context.Background(), func(event *pubsub.NotificationEvent) {
			wsHub.SendToUser(event.UserID, &ws.Message{
				Type: ws.TypeNotification,
				Data: event,
			})
		})
		if err != nil && err != context.Canceled {
			log.Printf("Notification subscription stopped: %v", err)
		}
	}()

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// 初始化 Service
	emailSvc := email.NewService(&cfg.Email)
	authService := service.NewAuthService(userRepo, emailSvc, cfg)
	userService := service.NewUserService(userRepo, ossClient, cfg)
	postService := service.NewPostService(postRepo, communityRepo, voteRepo, cfg)
	commentService := service.NewCommentService(commentRepo, postRepo, voteRepo, userRepo, notifyQueue, cfg)
	voteService := service.NewVoteService(voteRepo, postRepo, commentRepo, userRepo, cfg)
	communityService := service.NewCommunityService(communityRepo, cfg)
	chatService := service.NewChatService(messageRepo, userRepo, publisher, cfg)
	notificationService := service.NewNotificationService(notificationRepo)
	uploadService := service.NewUploadService(ossClient, cfg)

	// 初始化 Handler
	stateStore := oauth.NewStateStore(rdb)
	authHandler := handler.NewAuthHandler(authService, stateStore)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService, voteService)
	commentHandler := handler.NewCommentHandler(commentService, voteService)
	communityHandler := handler.NewCommunityHandler(communityService)
	chatHandler := handler.NewChatHandler(chatService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		userHandler,
		postHandler,
		commentHandler,
		communityHandler,
		chatHandler,
		notificationHandler,
		uploadHandler,
		websocketHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
