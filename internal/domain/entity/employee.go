package entity

// Employee empleado del condominio (portero, conserje, limpieza).
type Employee struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	CPF       string `json:"cpf"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Position  string `json:"position,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
