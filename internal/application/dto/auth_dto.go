package dto

// LoginRequest credencial de acceso: PIN de 4 dígitos.
type LoginRequest struct {
	PIN string `json:"pin"`
}

// LoginResponse token de sesión más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// LockoutStatusResponse estado del bloqueo para la pantalla de login
// (alimenta el contador regresivo).
type LockoutStatusResponse struct {
	Locked           bool `json:"locked"`
	RemainingSeconds int  `json:"remaining_seconds"`
	FailedAttempts   int  `json:"failed_attempts"`
}

// OverrideTapResponse resultado de un toque del gesto de rescate.
type OverrideTapResponse struct {
	Cleared bool `json:"cleared"`
}
