package models

type Category struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"size:50;not null"`
	UserID uint   `json:"user_id" gorm:"index"`
}

// OwnerID satisfies the shared ownership guard.
func (c *Category) OwnerID() uint {
	return c.UserID
}
