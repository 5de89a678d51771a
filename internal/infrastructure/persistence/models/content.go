package models

import "github.com/shopizer/backend/internal/domain/content"

// ContentModel is the persistence model for the Content entity
type ContentModel struct {
	StoreOwnedModel
	Code         string             `gorm:"type:varchar(100);not null;index"`
	Type         string             `gorm:"type:varchar(10);not null"`
	Visible      bool               `gorm:"not null;default:true"`
	LinkToMenu   bool               `gorm:"not null;default:false"`
	SortOrder    int                `gorm:"not null;default:0"`
	ProductGroup string             `gorm:"type:varchar(100)"`
	Descriptions []DescriptionModel `gorm:"polymorphicType:OwnerType;polymorphicId:ParentID;polymorphicValue:content"`
}

// TableName returns the table name for GORM
func (ContentModel) TableName() string {
	return "contents"
}

// ToDomain converts the persistence model to a domain Content
func (m *ContentModel) ToDomain() *content.Content {
	return &content.Content{
		StoreEntity:  m.ToStoreEntity(),
		Code:         m.Code,
		Type:         content.Type(m.Type),
		Visible:      m.Visible,
		LinkToMenu:   m.LinkToMenu,
		SortOrder:    m.SortOrder,
		ProductGroup: m.ProductGroup,
		Descriptions: DescriptionsToDomain(m.Descriptions),
	}
}

// FromDomain populates the persistence model from a domain Content
func (m *ContentModel) FromDomain(c *content.Content) {
	m.FromStoreEntity(c.StoreEntity)
	m.Code = c.Code
	m.Type = string(c.Type)
	m.Visible = c.Visible
	m.LinkToMenu = c.LinkToMenu
	m.SortOrder = c.SortOrder
	m.ProductGroup = c.ProductGroup
}
