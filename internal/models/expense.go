package models

// Expense represents a single expense inside a budget. An expense has no
// owner of its own: it is always addressed through its parent budget's path
// and inherits that budget's owner.
type Expense struct {
	Base
	BudgetID uint    `gorm:"not null;index" json:"budget_id"`
	Name     string  `gorm:"not null" json:"name"`
	Amount   float64 `gorm:"not null" json:"amount"`
}
