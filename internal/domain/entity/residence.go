package entity

// Residence unidad habitacional (casa/apartamento) del condominio.
type Residence struct {
	ID        ID     `json:"id"`
	Block     string `json:"block,omitempty"`
	Number    string `json:"number"`
	Type      string `json:"type,omitempty"` // casa, apartamento
	CompanyID ID     `json:"company_id,omitempty"`
	Owner     string `json:"owner,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Resident morador vinculado a una residencia.
type Resident struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	CPF         string `json:"cpf"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ResidenceID ID     `json:"residence_id"`
	CreatedAt   string `json:"created_at,omitempty"`
}
