package dto

import "github.com/jhoicas/portaria-api/internal/domain/entity"

// DeliveryRequest registro o actualización de una encomienda.
type DeliveryRequest struct {
	ResidenceID  entity.ID `json:"residence_id" validate:"required"`
	Recipient    string    `json:"recipient" validate:"required,max=200"`
	Carrier      string    `json:"carrier,omitempty" validate:"omitempty,max=100"`
	TrackingCode string    `json:"tracking_code,omitempty" validate:"omitempty,max=60"`
	Status       string    `json:"status,omitempty" validate:"omitempty,oneof=received delivered"`
}
