package models

type Item struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:80;not null"`
	Description string `json:"description" gorm:"size:250"`
	CategoryID  uint   `json:"category_id" gorm:"index"`
	UserID      uint   `json:"user_id" gorm:"index"`
}

// OwnerID satisfies the shared ownership guard.
func (i *Item) OwnerID() uint {
	return i.UserID
}

// ItemUpdate carries a partial edit. Nil fields leave the stored value
// untouched; an empty string submitted on the form is treated as absent.
type ItemUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	CategoryID  *uint   `json:"category_id,omitempty"`
}
