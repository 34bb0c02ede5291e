package http

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bossygit/vibes-arc-sub000/internal/adapters/export"
	"github.com/bossygit/vibes-arc-sub000/internal/core/services"
	"github.com/bossygit/vibes-arc-sub000/internal/core/workers"
)

// Exporter queues background exports and reports their progress.
type Exporter interface {
	Enqueue(kind, label string, days int) (string, error)
	Status(id string) (workers.JobStatus, bool)
}

type ReportHandler struct {
	reports *services.ReportService
	backups *services.BackupService
	exports Exporter
}

func NewReportHandler(reports *services.ReportService, backups *services.BackupService, exports Exporter) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		backups: backups,
		exports: exports,
	}
}

type exportRequest struct {
	Kind  string `json:"kind" binding:"required"`
	Label string `json:"label"`
	Days  int    `json:"days"`
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.GET("/engagement", h.Engagement)
		reports.GET("/engagement/:table", h.EngagementCSV)
		reports.GET("/weekly", h.Weekly)
		reports.POST("/exports", h.QueueExport)
		reports.GET("/exports/:id", h.ExportStatus)
	}

	router.GET("/gamification", h.Gamification)
	router.GET("/backup", h.Backup)
	router.POST("/import", h.Import)
}

func queryDays(c *gin.Context) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return 0, true
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return 0, false
	}
	return days, true
}

func (h *ReportHandler) Engagement(c *gin.Context) {
	days, ok := queryDays(c)
	if !ok {
		return
	}

	report, err := h.reports.Engagement(c.Request.Context(), c.Query("label"), days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// EngagementCSV serves one report table, e.g. /reports/engagement/habits.csv.
func (h *ReportHandler) EngagementCSV(c *gin.Context) {
	table, found := strings.CutSuffix(c.Param("table"), ".csv")
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown report format"})
		return
	}

	days, ok := queryDays(c)
	if !ok {
		return
	}

	report, err := h.reports.Engagement(c.Request.Context(), c.Query("label"), days)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteReportTable(&buf, report, table); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="engagement_`+table+`.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ReportHandler) Weekly(c *gin.Context) {
	report, err := h.reports.Weekly(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Gamification(c *gin.Context) {
	snapshot, err := h.reports.Gamification(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *ReportHandler) QueueExport(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.exports.Enqueue(req.Kind, req.Label, req.Days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"id": id, "state": workers.JobQueued})
}

func (h *ReportHandler) ExportStatus(c *gin.Context) {
	st, ok := h.exports.Status(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "export job not found"})
		return
	}

	c.JSON(http.StatusOK, st)
}

// Backup streams the current habits and identities in the import format.
func (h *ReportHandler) Backup(c *gin.Context) {
	snap, err := h.reports.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.EncodeBackup(&buf, snap); err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", buf.Bytes())
}

func (h *ReportHandler) Import(c *gin.Context) {
	backup, err := export.DecodeBackup(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   export.ErrInvalidFormat.Error(),
			"details": err.Error(),
		})
		return
	}

	result, err := h.backups.Import(c.Request.Context(), backup)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
