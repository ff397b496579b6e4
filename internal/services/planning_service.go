package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"aiowedding/internal/models"
	"aiowedding/internal/repositories"
)

var ErrPlanningItemNotFound = errors.New("item not found or access denied")

// PlanningService covers the couple dashboard: budget items, guest list,
// checklist, and the aggregated summary.
type PlanningService interface {
	AddBudgetItem(item *models.BudgetItem) error
	ListBudgetItems(coupleID int) ([]*models.BudgetItem, error)
	DeleteBudgetItem(id int64, coupleID int) error

	AddGuest(g *models.Guest) error
	ListGuests(coupleID int) ([]*models.Guest, error)
	SetGuestStatus(id int64, coupleID int, status string) error
	DeleteGuest(id int64, coupleID int) error

	AddChecklistItem(item *models.ChecklistItem) error
	ListChecklistItems(coupleID int) ([]*models.ChecklistItem, error)
	SetChecklistCompleted(id int64, coupleID int, completed bool) error
	DeleteChecklistItem(id int64, coupleID int) error

	Summary(couple *models.User) (*models.DashboardSummary, error)
}

type planningService struct {
	repo repositories.PlanningRepository
}

func NewPlanningService(repo repositories.PlanningRepository) PlanningService {
	return &planningService{repo: repo}
}

func (s *planningService) AddBudgetItem(item *models.BudgetItem) error {
	item.Category = strings.TrimSpace(item.Category)
	if item.Category == "" {
		return fmt.Errorf("category is required")
	}
	if item.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	return s.repo.CreateBudgetItem(item)
}

func (s *planningService) ListBudgetItems(coupleID int) ([]*models.BudgetItem, error) {
	return s.repo.ListBudgetItems(coupleID)
}

func (s *planningService) DeleteBudgetItem(id int64, coupleID int) error {
	ok, err := s.repo.DeleteBudgetItem(id, coupleID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPlanningItemNotFound
	}
	return nil
}

func (s *planningService) AddGuest(g *models.Guest) error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return fmt.Errorf("guest name is required")
	}
	g.Status = models.GuestPending
	return s.repo.CreateGuest(g)
}

func (s *planningService) ListGuests(coupleID int) ([]*models.Guest, error) {
	return s.repo.ListGuests(coupleID)
}

func (s *planningService) SetGuestStatus(id int64, coupleID int, status string) error {
	st := models.GuestStatus(status)
	switch st {
	case models.GuestPending, models.GuestConfirmed, models.GuestDeclined:
	default:
		return fmt.Errorf("unknown guest status %q", status)
	}
	ok, err := s.repo.UpdateGuestStatus(id, coupleID, st)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPlanningItemNotFound
	}
	return nil
}

func (s *planningService) DeleteGuest(id int64, coupleID int) error {
	ok, err := s.repo.DeleteGuest(id, coupleID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPlanningItemNotFound
	}
	return nil
}

func (s *planningService) AddChecklistItem(item *models.ChecklistItem) error {
	item.Task = strings.TrimSpace(item.Task)
	if item.Task == "" {
		return fmt.Errorf("task is required")
	}
	return s.repo.CreateChecklistItem(item)
}

func (s *planningService) ListChecklistItems(coupleID int) ([]*models.ChecklistItem, error) {
	return s.repo.ListChecklistItems(coupleID)
}

func (s *planningService) SetChecklistCompleted(id int64, coupleID int, completed bool) error {
	ok, err := s.repo.SetChecklistCompleted(id, coupleID, completed)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPlanningItemNotFound
	}
	return nil
}

func (s *planningService) DeleteChecklistItem(id int64, coupleID int) error {
	ok, err := s.repo.DeleteChecklistItem(id, coupleID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPlanningItemNotFound
	}
	return nil
}

func (s *planningService) Summary(couple *models.User) (*models.DashboardSummary, error) {
	sum := &models.DashboardSummary{ExpectedGuests: couple.GuestCount}

	spent, err := s.repo.TotalSpent(couple.ID)
	if err != nil {
		return nil, err
	}
	sum.TotalSpent = spent

	total, confirmed, pending, declined, err := s.repo.GuestCounts(couple.ID)
	if err != nil {
		return nil, err
	}
	sum.GuestsTotal, sum.GuestsConfirmed, sum.GuestsPending, sum.GuestsDeclined =
		total, confirmed, pending, declined

	tasks, done, err := s.repo.ChecklistCounts(couple.ID)
	if err != nil {
		return nil, err
	}
	sum.TasksTotal, sum.TasksDone = tasks, done

	if couple.WeddingDate != nil {
		days := int(time.Until(*couple.WeddingDate).Hours() / 24)
		if days < 0 {
			days = 0
		}
		sum.DaysToWedding = &days
	}
	return sum, nil
}
