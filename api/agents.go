package api

import (
	"net/http"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/Korolev91/estatehub/internal/service/agents"
	"github.com/gin-gonic/gin"
)

type AgentHandler struct {
	service agents.AgentUseCase
}

type agentRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Agency string `json:"agency"`
}

func NewAgentHandler(service agents.AgentUseCase) *AgentHandler {
	return &AgentHandler{service: service}
}

func (h *AgentHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *AgentHandler) list(c *gin.Context) {
	all, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

func (h *AgentHandler) create(c *gin.Context) {
	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent := &domain.Agent{Name: req.Name, Email: req.Email, Phone: req.Phone, Agency: req.Agency}
	if err := h.service.Create(c.Request.Context(), agent); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, agent)
}

func (h *AgentHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	agent, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, agent)
}

func (h *AgentHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent := &domain.Agent{ID: id, Name: req.Name, Email: req.Email, Phone: req.Phone, Agency: req.Agency}
	if err := h.service.Update(c.Request.Context(), agent); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, agent)
}

func (h *AgentHandler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
