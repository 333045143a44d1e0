package entity

// Estados de una entrada de agenda en la portaria.
const (
	ScheduleStatusPending = "pending"
	ScheduleStatusInside  = "inside"
	ScheduleStatusDone    = "done"
)

// Responsible morador responsable de autorizar la visita.
type Responsible struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// ScheduleEntry una fila de GET /visitors/schedule: un visitante dentro de un agendamiento.
// El mismo visitante agendado en dos agendamientos produce dos entradas distintas.
type ScheduleEntry struct {
	ID           ID            `json:"id"` // id del agendamiento
	VisitorID    ID            `json:"visitor_id"`
	VisitorName  string        `json:"visitor_name"`
	VisitorCPF   string        `json:"visitor_cpf,omitempty"`
	Residence    string        `json:"residence,omitempty"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	Status       string        `json:"status,omitempty"`
	EnteredAt    string        `json:"entered_at,omitempty"`
	ExitedAt     string        `json:"exited_at,omitempty"`
	Responsibles []Responsible `json:"responsibles"`
}

// Key llave natural para deduplicar en listados: "<id>-<visitorId>".
func (e ScheduleEntry) Key() string {
	return string(e.ID) + "-" + string(e.VisitorID)
}
