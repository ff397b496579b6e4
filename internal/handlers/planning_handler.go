package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"aiowedding/internal/models"
	"aiowedding/internal/services"
)

type PlanningHandler struct {
	planningService services.PlanningService
	userService     services.UserService
}

func NewPlanningHandler(planningService services.PlanningService, userService services.UserService) *PlanningHandler {
	return &PlanningHandler{planningService: planningService, userService: userService}
}

// @Summary      Couple dashboard summary
// @Tags         Planning
// @Produce      json
// @Success      200  {object}  models.DashboardSummary
// @Router       /planning/summary [get]
func (h *PlanningHandler) Summary(c *gin.Context) {
	coupleID, role := currentUser(c)
	couple, err := h.userService.GetByID(coupleID, role)
	if err != nil || couple == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	sum, err := h.planningService.Summary(couple)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// ---- budget ----

type budgetItemRequest struct {
	Category    string  `json:"category" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
}

// @Summary      Add a budget item
// @Tags         Planning
// @Accept       json
// @Produce      json
// @Param        item  body      budgetItemRequest  true  "Budget item"
// @Success      201  {object}  models.BudgetItem
// @Router       /planning/budget [post]
func (h *PlanningHandler) AddBudgetItem(c *gin.Context) {
	coupleID, _ := currentUser(c)
	var req budgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item := &models.BudgetItem{
		CoupleID:    coupleID,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if err := h.planningService.AddBudgetItem(item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// @Summary      List budget items
// @Tags         Planning
// @Produce      json
// @Success      200  {array}  models.BudgetItem
// @Router       /planning/budget [get]
func (h *PlanningHandler) ListBudgetItems(c *gin.Context) {
	coupleID, _ := currentUser(c)
	items, err := h.planningService.ListBudgetItems(coupleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load budget"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// @Summary      Delete a budget item
// @Tags         Planning
// @Produce      json
// @Param        id  path  int  true  "Item ID"
// @Success      200  {object}  map[string]string
// @Router       /planning/budget/{id} [delete]
func (h *PlanningHandler) DeleteBudgetItem(c *gin.Context) {
	coupleID, _ := currentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	if err := h.planningService.DeleteBudgetItem(id, coupleID); err != nil {
		h.notFoundOrInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Budget item deleted"})
}

// ---- guests ----

type guestRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	PlusOne bool   `json:"plus_one"`
}

// @Summary      Add a guest
// @Tags         Planning
// @Accept       json
// @Produce      json
// @Param        guest  body      guestRequest  true  "Guest"
// @Success      201  {object}  models.Guest
// @Router       /planning/guests [post]
func (h *PlanningHandler) AddGuest(c *gin.Context) {
	coupleID, _ := currentUser(c)
	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g := &models.Guest{
		CoupleID: coupleID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		PlusOne:  req.PlusOne,
	}
	if err := h.planningService.AddGuest(g); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, g)
}

// @Summary      List guests
// @Tags         Planning
// @Produce      json
// @Success      200  {array}  models.Guest
// @Router       /planning/guests [get]
func (h *PlanningHandler) ListGuests(c *gin.Context) {
	coupleID, _ := currentUser(c)
	guests, err := h.planningService.ListGuests(coupleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load guests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"guests": guests})
}

// @Summary      Update guest RSVP status
// @Tags         Planning
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Guest ID"
// @Success      200  {object}  map[string]string
// @Router       /planning/guests/{id}/status [post]
func (h *PlanningHandler) SetGuestStatus(c *gin.Context) {
	coupleID, _ := currentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.planningService.SetGuestStatus(id, coupleID, req.Status); err != nil {
		if errors.Is(err, services.ErrPlanningItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Guest updated"})
}

// @Summary      Delete a guest
// @Tags         Planning
// @Produce      json
// @Param        id  path  int  true  "Guest ID"
// @Success      200  {object}  map[string]string
// @Router       /planning/guests/{id} [delete]
func (h *PlanningHandler) DeleteGuest(c *gin.Context) {
	coupleID, _ := currentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest id"})
		return
	}
	if err := h.planningService.DeleteGuest(id, coupleID); err != nil {
		h.notFoundOrInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Guest deleted"})
}

// ---- checklist ----

type checklistItemRequest struct {
	Task     string `json:"task" binding:"required"`
	Priority int    `json:"priority"`
	DueDate  string `json:"due_date"`
}

// @Summary      Add a checklist item
// @Tags         Planning
// @Accept       json
// @Produce      json
// @Param        item  body      checklistItemRequest  true  "Checklist item"
// @Success      201  {object}  models.ChecklistItem
// @Router       /planning/checklist [post]
func (h *PlanningHandler) AddChecklistItem(c *gin.Context) {
	coupleID, _ := currentUser(c)
	var req checklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item := &models.ChecklistItem{
		CoupleID: coupleID,
		Task:     req.Task,
		Priority: req.Priority,
	}
	if req.DueDate != "" {
		d, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due date"})
			return
		}
		item.DueDate = &d
	}
	if err := h.planningService.AddChecklistItem(item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// @Summary      List checklist items
// @Tags         Planning
// @Produce      json
// @Success      200  {array}  models.ChecklistItem
// @Router       /planning/checklist [get]
func (h *PlanningHandler) ListChecklistItems(c *gin.Context) {
	coupleID, _ := currentUser(c)
	items, err := h.planningService.ListChecklistItems(coupleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load checklist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// @Summary      Complete or reopen a checklist item
// @Tags         Planning
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Item ID"
// @Success      200  {object}  map[string]string
// @Router       /planning/checklist/{id}/completed [post]
func (h *PlanningHandler) SetChecklistCompleted(c *gin.Context) {
	coupleID, _ := currentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	var req struct {
		Completed bool `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.planningService.SetChecklistCompleted(id, coupleID, req.Completed); err != nil {
		h.notFoundOrInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Checklist item updated"})
}

// @Summary      Delete a checklist item
// @Tags         Planning
// @Produce      json
// @Param        id  path  int  true  "Item ID"
// @Success      200  {object}  map[string]string
// @Router       /planning/checklist/{id} [delete]
func (h *PlanningHandler) DeleteChecklistItem(c *gin.Context) {
	coupleID, _ := currentUser(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	if err := h.planningService.DeleteChecklistItem(id, coupleID); err != nil {
		h.notFoundOrInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Checklist item deleted"})
}

func (h *PlanningHandler) notFoundOrInternal(c *gin.Context, err error) {
	if errors.Is(err, services.ErrPlanningItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
}
