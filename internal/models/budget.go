package models

// Budget represents a spending budget owned by a single user.
// Only the owner may read, modify, or delete it; the ownership check lives
// in the middleware guard, not here.
type Budget struct {
	Base
	UserID   uint      `gorm:"not null;index" json:"user_id"`
	Name     string    `gorm:"not null" json:"name"`
	Amount   float64   `gorm:"not null" json:"amount"`
	Expenses []Expense `gorm:"foreignKey:BudgetID" json:"expenses,omitempty"`
}
