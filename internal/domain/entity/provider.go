package entity

// ServiceProvider prestador de servicios (plomero, electricista, internet).
type ServiceProvider struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	CPF         string `json:"cpf,omitempty"`
	CNPJ        string `json:"cnpj,omitempty"`
	Company     string `json:"company,omitempty"`
	Service     string `json:"service"`
	Phone       string `json:"phone,omitempty"`
	ResidenceID ID     `json:"residence_id,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}
