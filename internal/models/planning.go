package models

import "time"

// Planning data owned by a couple account. Mirrors the customer
// dashboard: budget items, the guest list and the wedding checklist.

type BudgetItem struct {
	ID          int64     `json:"id"`
	CoupleID    int       `json:"couple_id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type GuestStatus string

const (
	GuestPending   GuestStatus = "pending"
	GuestConfirmed GuestStatus = "confirmed"
	GuestDeclined  GuestStatus = "declined"
)

type Guest struct {
	ID       int64       `json:"id"`
	CoupleID int         `json:"couple_id"`
	Name     string      `json:"name"`
	Email    string      `json:"email,omitempty"`
	Phone    string      `json:"phone,omitempty"`
	PlusOne  bool        `json:"plus_one"`
	Status   GuestStatus `json:"status"`
}

type ChecklistItem struct {
	ID        int64      `json:"id"`
	CoupleID  int        `json:"couple_id"`
	Task      string     `json:"task"`
	Completed bool       `json:"completed"`
	Priority  int        `json:"priority"`
	DueDate   *time.Time `json:"due_date,omitempty"`
}

// DashboardSummary aggregates a couple's planning state for the
// dashboard landing screen.
type DashboardSummary struct {
	TotalSpent      float64 `json:"total_spent"`
	ExpectedGuests  *int    `json:"expected_guests,omitempty"`
	GuestsTotal     int     `json:"guests_total"`
	GuestsConfirmed int     `json:"guests_confirmed"`
	GuestsPending   int     `json:"guests_pending"`
	GuestsDeclined  int     `json:"guests_declined"`
	TasksTotal      int     `json:"tasks_total"`
	TasksDone       int     `json:"tasks_done"`
	DaysToWedding   *int    `json:"days_to_wedding,omitempty"`
}

// PlatformSummary is the admin-side view of the whole platform.
type PlatformSummary struct {
	Couples        int `json:"couples"`
	Vendors        int `json:"vendors"`
	Advertisements int `json:"advertisements"`
	RecentCouples  int `json:"recent_couples"`
	RecentVendors  int `json:"recent_vendors"`
}
