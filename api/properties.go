package api

import (
	"net/http"
	"strconv"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/Korolev91/estatehub/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	service catalog.CatalogUseCase
}

type propertyRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	PropertyType string   `json:"property_type"`
	ListingType  string   `json:"listing_type"`
	PriceCents   int64    `json:"price_cents"`
	Beds         int      `json:"beds"`
	Baths        int      `json:"baths"`
	AreaSqm      float64  `json:"area_sqm"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
	Status       string   `json:"status"`
}

func NewPropertyHandler(service catalog.CatalogUseCase) *PropertyHandler {
	return &PropertyHandler{service: service}
}

func (h *PropertyHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *PropertyHandler) list(c *gin.Context) {
	filter, hasFilter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var properties []domain.Property
	if hasFilter {
		properties, err = h.service.List(c.Request.Context(), filter)
	} else {
		properties, err = h.service.ListActive(c.Request.Context())
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

func (h *PropertyHandler) create(c *gin.Context) {
	actor, ok := actorAgentID(c)
	if !ok {
		return
	}

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property := req.toDomain()
	if err := h.service.Create(c.Request.Context(), actor, property); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, property)
}

func (h *PropertyHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	property, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) update(c *gin.Context) {
	actor, ok := actorAgentID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property := req.toDomain()
	property.ID = id
	if err := h.service.Update(c.Request.Context(), actor, property); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) remove(c *gin.Context) {
	actor, ok := actorAgentID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r propertyRequest) toDomain() *domain.Property {
	return &domain.Property{
		Title:        r.Title,
		Description:  r.Description,
		Location:     r.Location,
		PropertyType: r.PropertyType,
		ListingType:  domain.ListingType(r.ListingType),
		PriceCents:   r.PriceCents,
		Beds:         r.Beds,
		Baths:        r.Baths,
		AreaSqm:      r.AreaSqm,
		Amenities:    r.Amenities,
		Images:       r.Images,
		Status:       domain.PropertyStatus(r.Status),
	}
}

func filterFromQuery(c *gin.Context) (domain.PropertyFilter, bool, error) {
	var filter domain.PropertyFilter
	filter.Location = c.Query("location")
	filter.PropertyType = c.Query("property_type")
	filter.ListingType = domain.ListingType(c.Query("listing_type"))
	filter.Status = domain.PropertyStatus(c.Query("status"))

	if v := c.Query("min_price_cents"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, false, err
		}
		filter.MinPriceCents = parsed
	}
	if v := c.Query("max_price_cents"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, false, err
		}
		filter.MaxPriceCents = parsed
	}
	return filter, !filter.Empty(), nil
}
