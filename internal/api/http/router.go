package http

import (
	"net/http"

	"github.com/CloSpex/bomberman/internal/api/ws"
	"github.com/CloSpex/bomberman/internal/room"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRouter(rm *room.Manager, hub *ws.Hub, stats *room.Stats) *gin.Engine {
	r := gin.Default()

	// WebSocket for live room updates
	r.GET("/ws", hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	r.GET("/rooms", ListRoomsHandler(rm))
	r.POST("/rooms", CreateRoomHandler(rm))
	r.GET("/rooms/:id", GetRoomHandler(rm))
	r.DELETE("/rooms/:id", DeleteRoomHandler(rm, hub))
	r.POST("/rooms/:id/join", JoinHandler(rm))

	// --- GAME ENDPOINTS ---
	r.POST("/rooms/:id/start", StartHandler(rm))
	r.POST("/rooms/:id/move", MoveHandler(rm))
	r.POST("/rooms/:id/place", PlaceHandler(rm))

	// --- CONFIG ENDPOINTS ---
	ch := NewConfigHandler(rm, stats)
	r.GET("/config", ch.GetConfigHandler)
	r.GET("/stats", ch.GetStatsHandler)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	return r
}
