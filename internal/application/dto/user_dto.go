package dto

// LoginRequest credenciales de POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PasswordResetRequest cuerpo de POST /send-reset.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdateProfileRequest cuerpo de PUT /user/me. La contraseña es opcional;
// si viene, debe coincidir con la confirmación.
type UpdateProfileRequest struct {
	Name                 string `json:"name" validate:"required,max=200"`
	Email                string `json:"email" validate:"required,email"`
	Phone                string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Password             string `json:"password,omitempty" validate:"omitempty,min=6"`
	PasswordConfirmation string `json:"password_confirmation,omitempty" validate:"eqfield=Password"`
}
