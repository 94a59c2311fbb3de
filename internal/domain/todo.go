package domain

// Todo is a single task. UserID is nil for todos created through the
// unauthenticated surface and set to the owner's id otherwise.
type Todo struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Completed bool   `gorm:"not null;default:false" json:"completed"`
	UserID    *uint  `gorm:"index" json:"user_id,omitempty"`
}
