package entity

// Company condominio o administradora registrada en la API.
type Company struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	CNPJ      string `json:"cnpj"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
