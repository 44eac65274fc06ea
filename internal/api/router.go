package api

import (
	"github.com/gin-gonic/gin"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/api/handler"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/api/middleware"
)

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	postHandler         *handler.PostHandler
	commentHandler      *handler.CommentHandler
	communityHandler    *handler.CommunityHandler
	chatHandler         *handler.ChatHandler
	notificationHandler *handler.NotificationHandler
	uploadHandler       *handler.UploadHandler
	websocketHandler    *handler.WebSocketHandler
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	communityHandler *handler.CommunityHandler,
	chatHandler *handler.ChatHandler,
	notificationHandler *handler.NotificationHandler,
	uploadHandler *handler.UploadHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		postHandler:         postHandler,
		commentHandler:      commentHandler,
		communityHandler:    communityHandler,
		chatHandler:         chatHandler,
		notificationHandler: notificationHandler,
		uploadHandler:       uploadHandler,
		websocketHandler:    websocketHandler,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/verify-email", r.authHandler.VerifyEmail)
			auth.GET("/github", r.authHandler.GithubAuth)
			auth.GET("/github/callback", r.authHandler.GithubCallback)
		}

		// 公开读取（可选认证，带上 token 时返回 user_vote）
		public := api.Group("")
		public.Use(middleware.OptionalAuth(r.cfg.JWT.Secret))
		{
			public.GET("/posts", r.postHandler.List)
			public.GET("/posts/:id", r.postHandler.Get)
			public.GET("/comments/post/:postId", r.commentHandler.List)
			public.GET("/communities", r.communityHandler.List)
			public.GET("/communities/:name", r.communityHandler.Get)
			public.GET("/users/:id", r.userHandler.GetPublicProfile)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.POST("/avatar", r.userHandler.UploadAvatar)
			}

			// 帖子
			authenticated.POST("/posts", r.postHandler.Create)
			authenticated.PUT("/posts/:id", r.postHandler.Update)
			authenticated.DELETE("/posts/:id", r.postHandler.Delete)
			authenticated.POST("/posts/:id/vote", r.postHandler.Vote)

			// 评论
			authenticated.POST("/comments", r.commentHandler.Create)
			authenticated.PUT("/comments/:id", r.commentHandler.Update)
			authenticated.DELETE("/comments/:id", r.commentHandler.Delete)
			authenticated.POST("/comments/:id/vote", r.commentHandler.Vote)

			// 社区
			authenticated.POST("/communities", r.communityHandler.Create)
			authenticated.POST("/communities/:id/members", r.communityHandler.Join)
			authenticated.DELETE("/communities/:id/members", r.communityHandler.Leave)

			// 私信
			authenticated.POST("/messages", r.chatHandler.Send)
			authenticated.GET("/messages", r.chatHandler.ListConversations)
			authenticated.GET("/messages/:userId", r.chatHandler.ListConversation)

			// 通知
			authenticated.GET("/notifications", r.notificationHandler.List)
			authenticated.GET("/notifications/unread-count", r.notificationHandler.UnreadCount)
			authenticated.PUT("/notifications/read", r.notificationHandler.MarkAllRead)

			// 上传
			authenticated.POST("/upload/image", r.uploadHandler.Image)
		}
	}

	return engine
}
