package dto

import "github.com/jhoicas/portaria-api/internal/domain/entity"

// GateActionRequest cuerpo de POST /gate/actions.
type GateActionRequest struct {
	ScheduleID entity.ID `json:"schedule_id" validate:"required"`
	VisitorID  entity.ID `json:"visitor_id" validate:"required"`
	Action     string    `json:"action" validate:"required,oneof=entry exit"`
}
