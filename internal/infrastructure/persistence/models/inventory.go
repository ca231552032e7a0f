package models

import (
	"github.com/repairdesk/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for the stock Item entity.
type InventoryItemModel struct {
	BaseModel
	Name        string          `gorm:"type:varchar(200);not null;index"`
	Category    string          `gorm:"type:varchar(20);not null;index"`
	Brand       string          `gorm:"type:varchar(100);not null;index"`
	ModelName   string          `gorm:"column:model_name;type:varchar(100);not null"`
	Quantity    int             `gorm:"not null;default:0"`
	Price       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Threshold   int             `gorm:"not null;default:1"`
	Supplier    string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain Item entity
func (m *InventoryItemModel) ToDomain() *inventory.Item {
	return &inventory.Item{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Category:    inventory.Category(m.Category),
		Brand:       m.Brand,
		ModelName:   m.ModelName,
		Quantity:    m.Quantity,
		Price:       m.Price,
		Threshold:   m.Threshold,
		Supplier:    m.Supplier,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Item entity
func (m *InventoryItemModel) FromDomain(i *inventory.Item) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.Name = i.Name
	m.Category = string(i.Category)
	m.Brand = i.Brand
	m.ModelName = i.ModelName
	m.Quantity = i.Quantity
	m.Price = i.Price
	m.Threshold = i.Threshold
	m.Supplier = i.Supplier
	m.Description = i.Description
}

// InventoryItemModelFromDomain creates a new persistence model from a domain Item entity
func InventoryItemModelFromDomain(i *inventory.Item) *InventoryItemModel {
	m := &InventoryItemModel{}
	m.FromDomain(i)
	return m
}
