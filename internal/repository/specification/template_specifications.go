package specification

import "gorm.io/gorm"

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

type StartersOnly struct{}

func (s StartersOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_starter = ?", true)
}

// VisibleToUser returns starter templates plus the user's own.
type VisibleToUser struct {
	UserID interface{}
}

func (s VisibleToUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_starter = ? OR user_id = ?", true, s.UserID)
}
