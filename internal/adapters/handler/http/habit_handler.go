package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
	"github.com/bossygit/vibes-arc-sub000/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Name          string  `json:"name" binding:"required"`
	Type          string  `json:"type"`
	TotalDays     int     `json:"totalDays" binding:"required"`
	StartDayIndex int     `json:"startDayIndex"`
	Identities    []int64 `json:"linkedIdentities"`
}

type renameHabitRequest struct {
	Name string `json:"name" binding:"required"`
}

type dayRequest struct {
	Day *int `json:"day" binding:"required"`
}

type linkIdentitiesRequest struct {
	Identities []int64 `json:"linkedIdentities"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Rename)
		habits.GET("/:id/stats", h.Stats)
		habits.POST("/:id/toggle", h.Toggle)
		habits.POST("/:id/skip", h.Skip)
		habits.PUT("/:id/identities", h.LinkIdentities)
		habits.DELETE("/:id", h.Delete)
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		Name:          req.Name,
		Type:          req.Type,
		TotalDays:     req.TotalDays,
		StartDayIndex: req.StartDayIndex,
		Identities:    req.Identities,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	habit, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Stats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *HabitHandler) Rename(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req renameHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Toggle(c *gin.Context) {
	h.dayAction(c, h.svc.Toggle)
}

func (h *HabitHandler) Skip(c *gin.Context) {
	h.dayAction(c, h.svc.Skip)
}

func (h *HabitHandler) dayAction(c *gin.Context, action func(ctx context.Context, id int64, day int) (*domain.Habit, error)) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := action(c.Request.Context(), id, *req.Day)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) LinkIdentities(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req linkIdentitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.LinkIdentities(c.Request.Context(), id, req.Identities)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
