package routes

import (
	"net/http"

	"blogapi/controllers"
	"blogapi/handlers"
	"blogapi/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controllers struct {
	Auth     *controllers.AuthController
	Users    *controllers.UserController
	Posts    *controllers.PostController
	Comments *controllers.CommentController
	WS       *handlers.WebSocketHandler
}

func SetupRoutes(r *gin.Engine, auth middleware.Authenticator, ctl Controllers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := middleware.AuthRequired(auth)
	requireAdmin := middleware.AdminRequired()

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", ctl.Auth.Signup)
			authRoutes.POST("/login", ctl.Auth.Login)
			authRoutes.GET("/me", requireAuth, ctl.Auth.Me)
			authRoutes.POST("/logout", requireAuth, ctl.Auth.Logout)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", requireAdmin, ctl.Users.GetUsers)
			users.GET("/:id", ctl.Users.GetUser)
			users.PUT("/:id/role", requireAdmin, ctl.Users.UpdateRole)
		}

		posts := api.Group("/posts")
		{
			posts.GET("/public", ctl.Posts.ListPublic)
			posts.GET("/manage", requireAuth, requireAdmin, ctl.Posts.ListManaged)
			posts.GET("/stats", requireAuth, requireAdmin, ctl.Posts.Stats)
			posts.GET("/id/:id", requireAuth, ctl.Posts.GetByID)
			posts.GET("/:slug", ctl.Posts.GetBySlug)
			posts.POST("", requireAuth, ctl.Posts.Create)
			posts.PUT("/:id", requireAuth, ctl.Posts.Update)
			posts.PUT("/:id/publish", requireAuth, requireAdmin, ctl.Posts.Publish)
			posts.PUT("/:id/unpublish", requireAuth, requireAdmin, ctl.Posts.Unpublish)
			posts.DELETE("/:id", requireAuth, ctl.Posts.Delete)
		}

		comments := api.Group("/comments")
		{
			comments.GET("", middleware.OptionalAuth(auth), ctl.Comments.List)
			comments.GET("/stats", requireAuth, requireAdmin, ctl.Comments.Stats)
			comments.POST("", requireAuth, ctl.Comments.Create)
			comments.PUT("/:id", requireAuth, ctl.Comments.Update)
			comments.DELETE("/:id", requireAuth, ctl.Comments.Delete)
		}

		if ctl.WS != nil {
			api.GET("/ws", requireAuth, ctl.WS.HandleWebSocket)
		}
	}
}
