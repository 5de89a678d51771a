package models

import (
	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/domain/shared"
)

// Owner types of the descriptions table
const (
	OwnerCountry             = "country"
	OwnerZone                = "zone"
	OwnerManufacturer        = "manufacturer"
	OwnerProduct             = "product"
	OwnerTaxRate             = "tax_rate"
	OwnerCustomerOption      = "customer_option"
	OwnerCustomerOptionValue = "customer_option_value"
	OwnerContent             = "content"
)

// DescriptionModel is one localized description of a described entity
type DescriptionModel struct {
	BaseModel
	OwnerType       string         `gorm:"type:varchar(40);not null;uniqueIndex:idx_description_owner_lang,priority:1"`
	ParentID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_description_owner_lang,priority:2"`
	LanguageID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_description_owner_lang,priority:3"`
	Language        *LanguageModel `gorm:"foreignKey:LanguageID"`
	SortOrder       int            `gorm:"not null;default:0"`
	Name            string         `gorm:"type:varchar(255)"`
	Title           string         `gorm:"type:varchar(255)"`
	Description     string         `gorm:"type:text"`
	FriendlyURL     string         `gorm:"column:friendly_url;type:varchar(255)"`
	MetaTitle       string         `gorm:"type:varchar(255)"`
	MetaKeywords    string         `gorm:"type:varchar(255)"`
	MetaDescription string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DescriptionModel) TableName() string {
	return "descriptions"
}

// ToDomain converts the persistence model to a domain Description.
// The language code is only set when Language was preloaded.
func (m *DescriptionModel) ToDomain() shared.Description {
	d := shared.Description{
		ID:              m.ID,
		ParentID:        m.ParentID,
		LanguageID:      m.LanguageID,
		Name:            m.Name,
		Title:           m.Title,
		Description:     m.Description,
		FriendlyURL:     m.FriendlyURL,
		MetaTitle:       m.MetaTitle,
		MetaKeywords:    m.MetaKeywords,
		MetaDescription: m.MetaDescription,
	}
	if m.Language != nil {
		d.LanguageCode = m.Language.Code
	}
	return d
}

// DescriptionsToDomain converts description models to a set, keeping their order
func DescriptionsToDomain(ms []DescriptionModel) shared.DescriptionSet {
	set := make(shared.DescriptionSet, 0, len(ms))
	for i := range ms {
		set = append(set, ms[i].ToDomain())
	}
	return set
}

// DescriptionModelsFromDomain creates persistence models for set, owned by
// (ownerType, parentID). SortOrder records the set order.
func DescriptionModelsFromDomain(ownerType string, parentID uuid.UUID, set shared.DescriptionSet) []DescriptionModel {
	ms := make([]DescriptionModel, 0, len(set))
	for i, d := range set {
		id := d.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		ms = append(ms, DescriptionModel{
			BaseModel:       BaseModel{ID: id},
			OwnerType:       ownerType,
			ParentID:        parentID,
			LanguageID:      d.LanguageID,
			SortOrder:       i,
			Name:            d.Name,
			Title:           d.Title,
			Description:     d.Description,
			FriendlyURL:     d.FriendlyURL,
			MetaTitle:       d.MetaTitle,
			MetaKeywords:    d.MetaKeywords,
			MetaDescription: d.MetaDescription,
		})
	}
	return ms
}
