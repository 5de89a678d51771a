package content

import (
	"github.com/google/uuid"
	"github.com/shopizer/backend/internal/application/mapper"
)

// ReadableContent represents a page, box or section in API responses
type ReadableContent struct {
	ID           uuid.UUID                    `json:"id"`
	Code         string                       `json:"code"`
	Type         string                       `json:"content_type"`
	Visible      bool                         `json:"visible"`
	LinkToMenu   bool                         `json:"link_to_menu"`
	Order        int                          `json:"order"`
	ProductGroup string                       `json:"product_group,omitempty"`
	Description  mapper.ReadableDescription   `json:"description"`
	Descriptions []mapper.ReadableDescription `json:"descriptions,omitempty"`
}

// PersistableContent creates or updates a content item. Omitted fields keep
// their stored value.
type PersistableContent struct {
	Code         string                          `json:"code" binding:"required,max=100,code"`
	Type         string                          `json:"content_type" binding:"omitempty,oneof=BOX PAGE SECTION box page section"`
	Visible      *bool                           `json:"visible"`
	LinkToMenu   *bool                           `json:"link_to_menu"`
	Order        *int                            `json:"order"`
	ProductGroup *string                         `json:"product_group" binding:"omitempty,max=100"`
	Descriptions []mapper.PersistableDescription `json:"descriptions" binding:"dive"`
}

// ReadableFile represents an uploaded content file
type ReadableFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
}
