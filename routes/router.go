package routes

import (
	"blogapi/controllers"
	"blogapi/handlers"
	"blogapi/middleware"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	DB             *gorm.DB
	Tokens         *utils.TokenManager
	Revocations    services.RevocationStore
	Hub            *services.HubService
	AllowedOrigins []string
}

// NewRouter builds the engine with every service wired. A nil Hub disables
// live events and the websocket endpoint.
func NewRouter(d Deps) *gin.Engine {
	utils.RegisterValidator()

	r := gin.New()
	r.Use(middleware.CORS(d.AllowedOrigins))
	r.Use(middleware.Logger())
	r.Use(middleware.ErrorHandler())

	var notifier services.Notifier
	var wsHandler *handlers.WebSocketHandler
	if d.Hub != nil {
		notifier = d.Hub
		wsHandler = handlers.NewWebSocketHandler(d.Hub, d.AllowedOrigins)
	}

	userService := services.NewUserService(d.DB)
	authService := services.NewAuthService(userService, d.Tokens, d.Revocations)

	SetupRoutes(r, authService, Controllers{
		Auth:     controllers.NewAuthController(authService),
		Users:    controllers.NewUserController(userService),
		Posts:    controllers.NewPostController(services.NewPostService(d.DB, notifier)),
		Comments: controllers.NewCommentController(services.NewCommentService(d.DB, notifier)),
		WS:       wsHandler,
	})

	return r
}
