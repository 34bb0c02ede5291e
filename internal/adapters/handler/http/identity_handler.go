package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bossygit/vibes-arc-sub000/internal/core/services"
)

type IdentityHandler struct {
	svc *services.IdentityService
}

func NewIdentityHandler(svc *services.IdentityService) *IdentityHandler {
	return &IdentityHandler{svc: svc}
}

type identityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func (h *IdentityHandler) RegisterRoutes(router *gin.RouterGroup) {
	identities := router.Group("/identities")
	{
		identities.POST("", h.Create)
		identities.GET("", h.List)
		identities.PUT("/:id", h.Update)
		identities.DELETE("/:id", h.Delete)
	}
}

func (h *IdentityHandler) Create(c *gin.Context) {
	var req identityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.svc.Create(c.Request.Context(), services.CreateIdentityInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, identity)
}

// List returns every identity with its score and linked habit count.
func (h *IdentityHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Update merges the non-empty fields of the body into the identity.
func (h *IdentityHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req identityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.svc.Update(c.Request.Context(), services.UpdateIdentityInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, identity)
}

func (h *IdentityHandler) Delete(c *gin.Context) {
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
