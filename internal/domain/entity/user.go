package entity

// Roles conocidos del usuario de portaria.
const (
	RoleAdmin    = "admin"
	RolePorteiro = "porteiro"
	RoleSindico  = "sindico"
)

// User perfil del usuario autenticado (GET /user/me).
type User struct {
	ID            ID     `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Role          string `json:"role,omitempty"`
	CondominiumID ID     `json:"condominium_id,omitempty"`
}
