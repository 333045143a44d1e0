package entity

// Acciones de portaria sobre una entrada de agenda.
const (
	GateActionEntry = "entry"
	GateActionExit  = "exit"
)

// GateActionResult respuesta de POST /gate/actions.
type GateActionResult struct {
	ScheduleID ID     `json:"schedule_id"`
	VisitorID  ID     `json:"visitor_id"`
	Action     string `json:"action"`
	Status     string `json:"status"`
	At         string `json:"at"`
}

// PlateUpload respuesta de la subida de foto de placa.
type PlateUpload struct {
	Plate    string `json:"plate,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}
