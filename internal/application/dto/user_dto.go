package dto

import (
	"time"

	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
)

// CreateUserRequest alta de un miembro del personal (solo admin).
type CreateUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"` // admin | employee
	PIN  string `json:"pin"`  // 4 dígitos
}

// UpdateUserRequest actualización parcial; nil significa "sin cambio".
type UpdateUserRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
	PIN  *string `json:"pin"`
}

// UserResponse usuario sin exponer el PIN.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse mapea la entidad a la respuesta HTTP.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserResponses mapea una lista de usuarios.
func NewUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
