package http

import (
	"net/http"

	"github.com/CloSpex/bomberman/internal/room"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	rm    *room.Manager
	stats *room.Stats
}

func NewConfigHandler(rm *room.Manager, stats *room.Stats) *ConfigHandler {
	return &ConfigHandler{
		rm:    rm,
		stats: stats,
	}
}

// GetConfigHandler returns the gameplay configuration
// @Summary Get game configuration
// @Description Returns board size, timings, player limits and the role table
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config [get]
func (h *ConfigHandler) GetConfigHandler(c *gin.Context) {
	cfg := h.rm.Config()
	c.JSON(http.StatusOK, gin.H{
		"game":  cfg.Game,
		"debug": cfg.Server.Debug,
	})
}

// GetStatsHandler returns aggregate gameplay counters
// @Summary Get gameplay statistics
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /stats [get]
func (h *ConfigHandler) GetStatsHandler(c *gin.Context) {
	out := gin.H{
		"rooms":         len(h.rm.ListRooms()),
		"droppedEvents": h.rm.DroppedEvents(),
	}
	if h.stats != nil {
		out["stats"] = h.stats.Snapshot()
	}
	c.JSON(http.StatusOK, out)
}
