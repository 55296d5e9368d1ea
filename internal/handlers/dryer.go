package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errSetAugerPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /status [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  statusOK,
		"message": "dryer computer running",
	})
}

// @Summary      Processed dryer data for the kiosk
// @Description  Temperatures in °F, moisture percentages, throughput estimate
// @Tags         dryer
// @Produce      json
// @Success      200  {object}  models.DashboardData
// @Router       /data [get]
func (h *Handler) getData(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Dashboard.Snapshot())
}

// @Summary      Raw sensor reading
// @Tags         dryer
// @Produce      json
// @Success      200  {object}  models.Reading
// @Router       /api/sensors [get]
func (h *Handler) getSensors(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Dashboard.RawReading())
}

// Request DTO for setting the auger percentage.
type augerRequest struct {
	Pct *float64 `json:"pct" binding:"required"`
}

// @Summary      Get auger percentage
// @Tags         auger
// @Produce      json
// @Success      200  {object}  map[string]float64
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/auger [get]
// @Security     BearerAuth
func (h *Handler) getAuger(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pct": h.services.Auger.Pct()})
}

// @Summary      Set auger percentage
// @Tags         auger
// @Accept       json
// @Produce      json
// @Param        body  body  augerRequest  true  "Percentage payload"
// @Success      200  {object}  map[string]float64
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/auger [post]
// @Security     BearerAuth
func (h *Handler) setAuger(c *gin.Context) {
	var req augerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errSetAugerPref + err.Error()})
		return
	}
	if err := h.services.Auger.SetPct(*req.Pct); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pct": h.services.Auger.Pct()})
}
