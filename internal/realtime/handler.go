package realtime

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justicechristophersam-ai/spaflow/internal/schedule"
)

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Stream godoc
// @Summary      Live booking change feed for the dashboard
// @Description  Server-sent events. Changes inside the subscribed date
// @Description  range arrive as "refresh", changes outside as "activity".
// @Tags         admin
// @Security     BearerAuth
// @Produce      text/event-stream
// @Param        range  query  string  false  "Named range (upcoming|today|week|last30|all|custom)"
// @Param        from   query  string  false  "Custom range start (YYYY-MM-DD)"
// @Param        to     query  string  false  "Custom range end (YYYY-MM-DD)"
// @Router       /admin/stream [get]
func (h *Handler) Stream(c *gin.Context) {
	key := schedule.RangeKey(c.DefaultQuery("range", string(schedule.RangeUpcoming)))
	dateRange, err := schedule.ResolveRange(key, time.Now(), c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown date range"})
		return
	}

	client := h.hub.Subscribe(dateRange)
	defer h.hub.Unsubscribe(client)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Periodic heartbeat keeps proxies from closing idle streams.
	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client.Messages():
			if !ok {
				return false
			}
			c.SSEvent(msg.Kind, msg.Event)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
