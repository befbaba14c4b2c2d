package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bouncer/internal/logging"
)

// LogHandler exposes the bounded diagnostic log buffer.
type LogHandler struct {
	buffer *logging.Buffer
}

// NewLogHandler creates a new log handler.
func NewLogHandler(buffer *logging.Buffer) *LogHandler {
	return &LogHandler{buffer: buffer}
}

// GetLogs godoc
// @Summary List the most recent log entries
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} logging.Entry
// @Router /logs [get]
func (h *LogHandler) GetLogs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.buffer.Entries())
}

// ClearLogs godoc
// @Summary Clear the log buffer
// @Tags logs
// @Security BearerAuth
// @Success 204
// @Router /logs [delete]
func (h *LogHandler) ClearLogs(c echo.Context) error {
	h.buffer.Clear()
	return c.NoContent(http.StatusNoContent)
}
