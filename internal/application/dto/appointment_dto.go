package dto

import "github.com/jhoicas/portaria-api/internal/domain/entity"

// AppointmentRequest agendamiento de uno o más visitantes para una residencia.
type AppointmentRequest struct {
	ResidenceID entity.ID   `json:"residence_id" validate:"required"`
	GuestIDs    []entity.ID `json:"guest_ids" validate:"required,min=1,dive,required"`
	StartDate   string      `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string      `json:"end_date" validate:"required,datetime=2006-01-02,dategte=StartDate"`
	Notes       string      `json:"notes,omitempty" validate:"omitempty,max=500"`
}
