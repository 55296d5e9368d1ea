package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusStarted = "started"
	statusStopped = "stopped"
	statusSampled = "sampled"

	errStartLogger = "failed to start logging"
	errStopLogger  = "failed to stop logging"
	errSampleOnce  = "failed to write sample"
)

// respondWithStatus writes a status plus the current sampler state.
func (h *Handler) respondWithStatus(c *gin.Context, status string, extra gin.H) {
	resp := gin.H{"status": status, "logger": h.services.Sampler.Status()}
	for k, v := range extra {
		resp[k] = v
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Start the CSV logger
// @Description  No-op when already running. Creates a fresh session log file.
// @Tags         logger
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, logger"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/logger/start [post]
// @Security     BearerAuth
func (h *Handler) startLogger(c *gin.Context) {
	if err := h.services.Sampler.Start(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errStartLogger, "logger_start_failed", err)
		return
	}
	h.respondWithStatus(c, statusStarted, gin.H{})
}

// @Summary      Stop the CSV logger
// @Description  No-op when not running. The active file stays queryable.
// @Tags         logger
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/logger/stop [post]
// @Security     BearerAuth
func (h *Handler) stopLogger(c *gin.Context) {
	if err := h.services.Sampler.Stop(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errStopLogger, "logger_stop_failed", err)
		return
	}
	h.respondWithStatus(c, statusStopped, gin.H{})
}

// @Summary      Logger status
// @Tags         logger
// @Produce      json
// @Success      200  {object}  models.SamplerStatus
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/logger/status [get]
// @Security     BearerAuth
func (h *Handler) loggerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Sampler.Status())
}

// @Summary      Write one sample now
// @Description  Appends a single row to the active log, creating one if needed.
// @Tags         logger
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, file"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/logger/sample [post]
// @Security     BearerAuth
func (h *Handler) sampleOnce(c *gin.Context) {
	file, err := h.services.Sampler.SampleOnce(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSampleOnce, "logger_sample_failed", err)
		return
	}
	h.respondWithStatus(c, statusSampled, gin.H{"file": file})
}
