package entity

// Guest visitante registrado.
type Guest struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	CPF       string `json:"cpf"`
	RG        string `json:"rg,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Plate     string `json:"plate,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Appointment agendamiento de visita: uno o más visitantes para una residencia en un período.
type Appointment struct {
	ID          ID     `json:"id"`
	ResidenceID ID     `json:"residence_id"`
	GuestIDs    []ID   `json:"guest_ids"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}
