package handlers

import (
	"errors"
	"net/http"

	catalogRepo "festivo/database/repository/catalog"
	"festivo/models"
	"festivo/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler bundles the vendor listing endpoints.
type CatalogHandler struct {
	CatalogService catalog.CatalogService
	Logger         *zap.Logger
}

// CreateServiceHandler handles POST /api/services. The authenticated user
// becomes the listing's vendor.
func (h *CatalogHandler) CreateServiceHandler(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	svc.VendorID = c.GetString("userID")

	created, err := h.CatalogService.CreateService(svc)
	if err != nil {
		h.Logger.Error("Create service failed", zap.String("vendorId", svc.VendorID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetServiceHandler handles GET /api/services/:id.
func (h *CatalogHandler) GetServiceHandler(c *gin.Context) {
	id := c.Param("id")
	svc, err := h.CatalogService.GetService(id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		h.Logger.Error("Get service failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// ListServicesHandler handles GET /api/services.
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.CatalogService.ListServices()
	if err != nil {
		h.Logger.Error("List services failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// ListVendorServicesHandler handles GET /api/services/mine: the authenticated
// vendor's own listings.
func (h *CatalogHandler) ListVendorServicesHandler(c *gin.Context) {
	vendorID := c.GetString("userID")
	services, err := h.CatalogService.ListVendorServices(vendorID)
	if err != nil {
		h.Logger.Error("List vendor services failed", zap.String("vendorId", vendorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// UpdateServiceHandler handles PUT /api/services/:id.
func (h *CatalogHandler) UpdateServiceHandler(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	svc.ID = c.Param("id")

	updated, err := h.CatalogService.UpdateService(c.GetString("userID"), svc)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		h.Logger.Error("Update service failed", zap.String("id", svc.ID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteServiceHandler handles DELETE /api/services/:id.
func (h *CatalogHandler) DeleteServiceHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.CatalogService.DeleteService(c.GetString("userID"), id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		h.Logger.Error("Delete service failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
