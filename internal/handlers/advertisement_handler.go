package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aiowedding/internal/models"
	"aiowedding/internal/services"
)

type AdvertisementHandler struct {
	adService services.AdvertisementService
}

func NewAdvertisementHandler(adService services.AdvertisementService) *AdvertisementHandler {
	return &AdvertisementHandler{adService: adService}
}

type adRequest struct {
	Title        string `json:"title" binding:"required"`
	ServiceType  string `json:"service_type" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Price        string `json:"price"`
	Location     string `json:"location"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
}

func (r *adRequest) toModel(vendorID int) *models.Advertisement {
	return &models.Advertisement{
		VendorID:     vendorID,
		Title:        r.Title,
		ServiceType:  r.ServiceType,
		Description:  r.Description,
		Price:        r.Price,
		Location:     r.Location,
		ContactPhone: r.ContactPhone,
		ContactEmail: r.ContactEmail,
	}
}

// @Summary      Create an advertisement
// @Tags         Advertisements
// @Accept       json
// @Produce      json
// @Param        ad  body      adRequest  true  "Advertisement data"
// @Success      201  {object}  models.Advertisement
// @Failure      400  {object}  map[string]string
// @Router       /ads [post]
func (h *AdvertisementHandler) Create(c *gin.Context) {
	vendorID, _ := currentUser(c)
	var req adRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ad := req.toModel(vendorID)
	if err := h.adService.Create(ad); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ad)
}

// @Summary      Update an advertisement
// @Tags         Advertisements
// @Accept       json
// @Produce      json
// @Param        id  path      int        true  "Advertisement ID"
// @Param        ad  body      adRequest  true  "Advertisement data"
// @Success      200  {object}  models.Advertisement
// @Failure      404  {object}  map[string]string
// @Router       /ads/{id} [put]
func (h *AdvertisementHandler) Update(c *gin.Context) {
	vendorID, _ := currentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid advertisement id"})
		return
	}
	var req adRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ad := req.toModel(vendorID)
	ad.ID = id
	if err := h.adService.Update(ad); err != nil {
		if errors.Is(err, services.ErrAdNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Advertisement not found or access denied"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ad)
}

// @Summary      Delete an advertisement
// @Tags         Advertisements
// @Produce      json
// @Param        id  path  int  true  "Advertisement ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /ads/{id} [delete]
func (h *AdvertisementHandler) Delete(c *gin.Context) {
	vendorID, _ := currentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid advertisement id"})
		return
	}
	if err := h.adService.Delete(id, vendorID); err != nil {
		if errors.Is(err, services.ErrAdNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Advertisement not found or access denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete advertisement"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Advertisement deleted"})
}

// @Summary      List own advertisements
// @Tags         Advertisements
// @Produce      json
// @Success      200  {array}  models.Advertisement
// @Router       /ads [get]
func (h *AdvertisementHandler) List(c *gin.Context) {
	vendorID, _ := currentUser(c)
	ads, err := h.adService.ListForVendor(vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load advertisements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ads": ads})
}
