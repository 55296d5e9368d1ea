package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/apfdpotter-ops/dryer-dashboard/internal/service"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// @Summary      List session log files
// @Description  Newest first, ordered by the timestamp embedded in the name.
// @Tags         logger
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, files"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/logger/logs [get]
// @Security     BearerAuth
func (h *Handler) listLogs(c *gin.Context) {
	files, err := h.services.Sampler.ListLogs()
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to list logs", "logs_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(files), "files": files})
}

// @Summary      Latest logged row
// @Description  The last data row of the newest log file, raw CSV text. Null when nothing is logged yet.
// @Tags         logger
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/logger/logs/latest [get]
// @Security     BearerAuth
func (h *Handler) latestRow(c *gin.Context) {
	row, err := h.services.Sampler.LatestRow()
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to read latest row", "logs_latest_failed", err)
		return
	}
	if row == "" {
		c.JSON(http.StatusOK, gin.H{"row": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"row": row})
}

// @Summary      Rows of a named log file
// @Description  Raw CSV data rows, optionally windowed to the last n.
// @Tags         logger
// @Produce      json
// @Param        name  path   string  true   "Log file name"
// @Param        n     query  int     false  "Return only the last n rows"
// @Success      200  {object}  map[string]interface{}  "count, rows"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/logger/logs/{name}/rows [get]
// @Security     BearerAuth
func (h *Handler) logRows(c *gin.Context) {
	n := 0
	if qs := c.Query("n"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'n'; must be a non-negative integer"})
			return
		}
		n = v
	}

	rows, err := h.services.Sampler.TailRows(c.Param("name"), n)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "rows": rows})
}

func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List audit events
// @Description  Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' is treated as end-of-day inclusive.
// @Tags         logs
// @Produce      json
// @Param        from  query   string  false  "Start of range"  example(2026-08-01)
// @Param        to    query   string  false  "End of range"    example(2026-08-31)
// @Param        type  query   string  false  "Event type"  Enums(LOGGER_START,LOGGER_STOP,SAMPLE,ERROR)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
// @Security     BearerAuth
func (h *Handler) getEvents(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		from time.Time
		to   time.Time
		typ  = strings.ToUpper(strings.TrimSpace(c.Query("type")))
		err  error
	)
	if qs := c.Query("from"); qs != "" {
		if from, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if to, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must be <= 'to'"})
		return
	}

	events, err := h.services.EventLog.List(ctx, service.LogFilter{
		From: from,
		To:   to,
		Type: typ,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load events", "events_list_failed", err,
			"from", from, "to", to, "type", typ)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q", s)
}
