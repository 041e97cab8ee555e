package specification

import "gorm.io/gorm"

type ByItemStatus struct {
	Status string
}

func (s ByItemStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
