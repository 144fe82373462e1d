package history

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justicechristophersam-ai/spaflow/internal/schedule"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListEvents godoc
// @Summary      List audit trail entries
// @Description  Returns booking events for a date range, newest first.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        range   query  string  false  "Named range (upcoming|today|week|last30|all|custom)"
// @Param        from    query  string  false  "Custom range start (YYYY-MM-DD)"
// @Param        to      query  string  false  "Custom range end (YYYY-MM-DD)"
// @Param        action  query  string  false  "Action filter"
// @Param        actor   query  string  false  "Admin email filter"
// @Router       /admin/events [get]
func (h *Handler) ListEvents(c *gin.Context) {
	key := schedule.RangeKey(c.DefaultQuery("range", string(schedule.RangeLast30)))
	dr, err := schedule.ResolveRange(key, time.Now(), c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown date range"})
		return
	}

	action := c.Query("action")
	if action != "" && !ValidAction(action) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
		return
	}

	events, err := h.repo.ListForRange(c.Request.Context(), ListFilter{
		From:   dr.From,
		To:     dr.To,
		Action: action,
		Actor:  c.Query("actor"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
