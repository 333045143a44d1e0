package dto

import "github.com/jhoicas/portaria-api/internal/domain/entity"

// ResidenceRequest alta/edición de una residencia.
type ResidenceRequest struct {
	Block  string `json:"block,omitempty" validate:"omitempty,max=20"`
	Number string `json:"number" validate:"required,max=20"`
	Type   string `json:"type,omitempty" validate:"omitempty,oneof=casa apartamento"`
	Owner  string `json:"owner,omitempty" validate:"omitempty,max=200"`
}

// ResidentRequest alta/edición de un morador.
type ResidentRequest struct {
	Name        string    `json:"name" validate:"required,max=200"`
	CPF         string    `json:"cpf" validate:"required,cpf"`
	Email       string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string    `json:"phone,omitempty" validate:"omitempty,max=20"`
	ResidenceID entity.ID `json:"residence_id" validate:"required"`
}
