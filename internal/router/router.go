package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/balaio-dev/balaio/internal/handlers"
	"github.com/balaio-dev/balaio/internal/middleware"
	"github.com/balaio-dev/balaio/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())

	// Origins come from the allow-list, never "*": the session cookie
	// rides on these requests.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:lista_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.POST("/verificar-sessao", handlers.VerifySession)
		}

		users := api.Group("/usuarios")
		{
			users.POST("/cadastro", handlers.Register)
			users.GET("/perfil", middleware.AuthMiddleware(), handlers.GetProfile)
			users.PUT("/perfil", middleware.AuthMiddleware(), handlers.UpdateProfile)
			users.PUT("/alterar-senha", middleware.AuthMiddleware(), handlers.ChangePassword)
			users.GET("/buscar", middleware.AuthMiddleware(), handlers.SearchUser)
			users.GET("/listar", middleware.AuthMiddleware(), handlers.ListUsers)
			users.DELETE("/conta", middleware.AuthMiddleware(), handlers.DeleteAccount)
		}

		api.GET("/dashboard", middleware.AuthMiddleware(), handlers.GetDashboard)

		lists := api.Group("/listas", middleware.AuthMiddleware())
		{
			lists.POST("", handlers.CreateList)
			lists.GET("", handlers.ListLists)
			lists.GET("/minhas", handlers.ListOwnedLists)
			lists.GET("/compartilhadas", handlers.ListSharedLists)
			lists.GET("/:lista_id", handlers.GetList)
			lists.PUT("/:lista_id", handlers.UpdateList)
			lists.DELETE("/:lista_id", handlers.DeleteList)
			lists.POST("/:lista_id/compartilhar", handlers.ShareList)
			lists.POST("/:lista_id/descompartilhar", handlers.RemoveCollaboratorByEmail)
			lists.DELETE("/:lista_id/colaboradores/:colaborador_id", handlers.RemoveCollaborator)

			// Item endpoints
			lists.POST("/:lista_id/itens", handlers.CreateItem)
			lists.GET("/:lista_id/itens", handlers.ListItems)
			lists.GET("/:lista_id/itens/pendentes", handlers.ListPendingItems)
			lists.GET("/:lista_id/itens/comprados", handlers.ListPurchasedItems)
			lists.GET("/:lista_id/itens/estatisticas", handlers.GetItemStats)
			lists.GET("/:lista_id/itens/:item_id", handlers.GetItem)
			lists.PUT("/:lista_id/itens/:item_id", handlers.UpdateItem)
			lists.PUT("/:lista_id/itens/:item_id/marcar-comprado", handlers.MarkItemPurchased)
			lists.PUT("/:lista_id/itens/:item_id/marcar-pendente", handlers.MarkItemPending)
			lists.DELETE("/:lista_id/itens/:item_id", handlers.DeleteItem)
		}
	}

	return r
}
