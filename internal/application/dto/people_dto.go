package dto

import "github.com/jhoicas/portaria-api/internal/domain/entity"

// EmployeeRequest alta/edición de un empleado.
type EmployeeRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	CPF       string `json:"cpf" validate:"required,cpf"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Position  string `json:"position" validate:"required,max=100"`
	StartDate string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// GuestRequest alta/edición de un visitante.
type GuestRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	CPF   string `json:"cpf" validate:"required,cpf"`
	RG    string `json:"rg,omitempty" validate:"omitempty,max=20"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Plate string `json:"plate,omitempty" validate:"omitempty,max=10"`
}

// ProviderRequest alta/edición de un prestador de servicios.
type ProviderRequest struct {
	Name        string    `json:"name" validate:"required,max=200"`
	CPF         string    `json:"cpf,omitempty" validate:"omitempty,cpf"`
	CNPJ        string    `json:"cnpj,omitempty" validate:"omitempty,cnpj"`
	Company     string    `json:"company,omitempty" validate:"omitempty,max=200"`
	Service     string    `json:"service" validate:"required,max=120"`
	Phone       string    `json:"phone,omitempty" validate:"omitempty,max=20"`
	ResidenceID entity.ID `json:"residence_id,omitempty"`
	StartDate   string    `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string    `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02,dategte=StartDate"`
}
