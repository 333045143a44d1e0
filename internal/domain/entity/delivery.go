package entity

// Estados de una encomienda.
const (
	DeliveryStatusReceived  = "received"
	DeliveryStatusDelivered = "delivered"
)

// Delivery encomienda recibida en la portería para una residencia.
type Delivery struct {
	ID           ID     `json:"id"`
	ResidenceID  ID     `json:"residence_id"`
	Recipient    string `json:"recipient"`
	Carrier      string `json:"carrier,omitempty"`
	TrackingCode string `json:"tracking_code,omitempty"`
	Status       string `json:"status,omitempty"`
	ReceivedAt   string `json:"received_at,omitempty"`
	DeliveredAt  string `json:"delivered_at,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}
