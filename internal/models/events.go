package models

import "time"

type ProductEventType string

const (
	ProductCreated ProductEventType = "product.created"
	ProductUpdated ProductEventType = "product.updated"
	ProductDeleted ProductEventType = "product.deleted"
)

// ProductEvent is published after every successful write.
type ProductEvent struct {
	Type       ProductEventType `json:"type"`
	ProductID  string           `json:"product_id"`
	Item       Item             `json:"item,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}
