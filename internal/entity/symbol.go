package entity

type Symbol struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Symbol string `gorm:"uniqueIndex;not null" json:"symbol"`
	Name   string `gorm:"not null" json:"name"`
}

func (Symbol) TableName() string {
	return "symbols"
}
