package dto

// CompanyRequest alta/edición de un condominio.
type CompanyRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	CNPJ    string `json:"cnpj" validate:"required,cnpj"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address string `json:"address,omitempty" validate:"omitempty,max=255"`
	City    string `json:"city,omitempty" validate:"omitempty,max=120"`
	State   string `json:"state,omitempty" validate:"omitempty,len=2"`
}
