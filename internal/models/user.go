package models

// User represents the user model in the database.
//
// Confirmed starts false and flips true once the user submits the 6-digit
// confirmation code. Token holds the single outstanding one-time code (a
// pending confirmation or a pending password reset, whichever was issued
// last) and is NULL when no code is outstanding.
type User struct {
	Base
	Name      string   `gorm:"not null" json:"name"`
	Email     string   `gorm:"uniqueIndex;not null" json:"email"`
	Password  string   `gorm:"not null" json:"-"`
	Confirmed bool     `gorm:"default:false" json:"confirmed"`
	Token     *string  `gorm:"size:6" json:"-"`
	Budgets   []Budget `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
}
