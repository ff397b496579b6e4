package repositories

import (
	"database/sql"
	"fmt"

	"aiowedding/internal/models"
)

// PlanningRepository owns the couple-scoped planning tables: budget
// items, guests and checklist items. Every write is scoped by couple_id.
type PlanningRepository interface {
	CreateBudgetItem(item *models.BudgetItem) error
	ListBudgetItems(coupleID int) ([]*models.BudgetItem, error)
	DeleteBudgetItem(id int64, coupleID int) (bool, error)
	TotalSpent(coupleID int) (float64, error)

	CreateGuest(g *models.Guest) error
	ListGuests(coupleID int) ([]*models.Guest, error)
	UpdateGuestStatus(id int64, coupleID int, status models.GuestStatus) (bool, error)
	DeleteGuest(id int64, coupleID int) (bool, error)
	GuestCounts(coupleID int) (total, confirmed, pending, declined int, err error)

	CreateChecklistItem(item *models.ChecklistItem) error
	ListChecklistItems(coupleID int) ([]*models.ChecklistItem, error)
	SetChecklistCompleted(id int64, coupleID int, completed bool) (bool, error)
	DeleteChecklistItem(id int64, coupleID int) (bool, error)
	ChecklistCounts(coupleID int) (total, done int, err error)
}

type planningRepository struct {
	DB *sql.DB
}

func NewPlanningRepository(db *sql.DB) PlanningRepository {
	return &planningRepository{DB: db}
}

// ---- budget ----

func (r *planningRepository) CreateBudgetItem(item *models.BudgetItem) error {
	const q = `
		INSERT INTO budget_items (couple_id, category, amount, description)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q, item.CoupleID, item.Category, item.Amount, item.Description).
		Scan(&item.ID, &item.CreatedAt); err != nil {
		return fmt.Errorf("create budget item: %w", err)
	}
	return nil
}

func (r *planningRepository) ListBudgetItems(coupleID int) ([]*models.BudgetItem, error) {
	const q = `
		SELECT id, couple_id, category, amount, COALESCE(description,''), created_at
		FROM budget_items
		WHERE couple_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(q, coupleID)
	if err != nil {
		return nil, fmt.Errorf("list budget items: %w", err)
	}
	defer rows.Close()

	var items []*models.BudgetItem
	for rows.Next() {
		it := &models.BudgetItem{}
		if err := rows.Scan(&it.ID, &it.CoupleID, &it.Category, &it.Amount, &it.Description, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan budget item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *planningRepository) DeleteBudgetItem(id int64, coupleID int) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM budget_items WHERE id=$1 AND couple_id=$2`, id, coupleID)
	if err != nil {
		return false, fmt.Errorf("delete budget item: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *planningRepository) TotalSpent(coupleID int) (float64, error) {
	var total float64
	err := r.DB.QueryRow(
		`SELECT COALESCE(SUM(amount),0) FROM budget_items WHERE couple_id=$1`, coupleID,
	).Scan(&total)
	return total, err
}

// ---- guests ----

func (r *planningRepository) CreateGuest(g *models.Guest) error {
	const q = `
		INSERT INTO guests (couple_id, name, email, phone, plus_one, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`
	if g.Status == "" {
		g.Status = models.GuestPending
	}
	if err := r.DB.QueryRow(q, g.CoupleID, g.Name, g.Email, g.Phone, g.PlusOne, g.Status).
		Scan(&g.ID); err != nil {
		return fmt.Errorf("create guest: %w", err)
	}
	return nil
}

func (r *planningRepository) ListGuests(coupleID int) ([]*models.Guest, error) {
	const q = `
		SELECT id, couple_id, name, COALESCE(email,''), COALESCE(phone,''), plus_one, status
		FROM guests
		WHERE couple_id = $1
		ORDER BY name ASC
	`
	rows, err := r.DB.Query(q, coupleID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	defer rows.Close()

	var guests []*models.Guest
	for rows.Next() {
		g := &models.Guest{}
		if err := rows.Scan(&g.ID, &g.CoupleID, &g.Name, &g.Email, &g.Phone, &g.PlusOne, &g.Status); err != nil {
			return nil, fmt.Errorf("scan guest: %w", err)
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *planningRepository) UpdateGuestStatus(id int64, coupleID int, status models.GuestStatus) (bool, error) {
	res, err := r.DB.Exec(
		`UPDATE guests SET status=$1 WHERE id=$2 AND couple_id=$3`, status, id, coupleID,
	)
	if err != nil {
		return false, fmt.Errorf("update guest status: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *planningRepository) DeleteGuest(id int64, coupleID int) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM guests WHERE id=$1 AND couple_id=$2`, id, coupleID)
	if err != nil {
		return false, fmt.Errorf("delete guest: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *planningRepository) GuestCounts(coupleID int) (total, confirmed, pending, declined int, err error) {
	const q = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'confirmed'),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'declined')
		FROM guests
		WHERE couple_id = $1
	`
	err = r.DB.QueryRow(q, coupleID).Scan(&total, &confirmed, &pending, &declined)
	return
}

// ---- checklist ----

func (r *planningRepository) CreateChecklistItem(item *models.ChecklistItem) error {
	const q = `
		INSERT INTO checklist_items (couple_id, task, priority, due_date, completed)
		VALUES ($1,$2,$3,$4,FALSE)
		RETURNING id
	`
	if err := r.DB.QueryRow(q, item.CoupleID, item.Task, item.Priority, item.DueDate).
		Scan(&item.ID); err != nil {
		return fmt.Errorf("create checklist item: %w", err)
	}
	return nil
}

func (r *planningRepository) ListChecklistItems(coupleID int) ([]*models.ChecklistItem, error) {
	const q = `
		SELECT id, couple_id, task, completed, priority, due_date
		FROM checklist_items
		WHERE couple_id = $1
		ORDER BY due_date ASC NULLS LAST, priority DESC
	`
	rows, err := r.DB.Query(q, coupleID)
	if err != nil {
		return nil, fmt.Errorf("list checklist items: %w", err)
	}
	defer rows.Close()

	var items []*models.ChecklistItem
	for rows.Next() {
		it := &models.ChecklistItem{}
		var due sql.NullTime
		if err := rows.Scan(&it.ID, &it.CoupleID, &it.Task, &it.Completed, &it.Priority, &due); err != nil {
			return nil, fmt.Errorf("scan checklist item: %w", err)
		}
		if due.Valid {
			t := due.Time
			it.DueDate = &t
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *planningRepository) SetChecklistCompleted(id int64, coupleID int, completed bool) (bool, error) {
	res, err := r.DB.Exec(
		`UPDATE checklist_items SET completed=$1 WHERE id=$2 AND couple_id=$3`, completed, id, coupleID,
	)
	if err != nil {
		return false, fmt.Errorf("set checklist completed: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *planningRepository) DeleteChecklistItem(id int64, coupleID int) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM checklist_items WHERE id=$1 AND couple_id=$2`, id, coupleID)
	if err != nil {
		return false, fmt.Errorf("delete checklist item: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *planningRepository) ChecklistCounts(coupleID int) (total, done int, err error) {
	const q = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
		FROM checklist_items
		WHERE couple_id = $1
	`
	err = r.DB.QueryRow(q, coupleID).Scan(&total, &done)
	return
}
