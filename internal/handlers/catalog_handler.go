package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiobellavita/salon-agenda/internal/httperr"
	"github.com/studiobellavita/salon-agenda/internal/httpresp"
	"github.com/studiobellavita/salon-agenda/internal/models"
)

// ======================================================
// CATÁLOGO (serviços, profissionais, clientes)
// ======================================================

type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	var services []models.Service
	h.db.WithContext(c.Request.Context()).
		Where("active = ?", true).
		Order("name ASC").
		Find(&services)

	httpresp.List(c, services)
}

func (h *CatalogHandler) ListProfessionals(c *gin.Context) {
	var pros []models.Professional
	h.db.WithContext(c.Request.Context()).
		Where("active = ?", true).
		Order("name ASC").
		Find(&pros)

	httpresp.List(c, pros)
}

func (h *CatalogHandler) GetCustomer(c *gin.Context) {
	var cust models.Customer
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		First(&cust).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Cliente não encontrada.")
		return
	}

	httpresp.OK(c, cust)
}

func (h *CatalogHandler) ListCustomerHistory(c *gin.Context) {
	var entries []models.CustomerHistoryEntry
	h.db.WithContext(c.Request.Context()).
		Where("customer_id = ?", c.Param("id")).
		Order("created_at DESC").
		Find(&entries)

	httpresp.List(c, entries)
}
