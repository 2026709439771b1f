package usecase

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pasteleria-api/internal/application/auth"
	"github.com/jhoicas/pasteleria-api/internal/application/dto"
	"github.com/jhoicas/pasteleria-api/internal/domain"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/pasteleria-api/internal/domain/repository"
)

var userPINPattern = regexp.MustCompile(`^[0-9]{4}$`)

// UserUseCase gestión del personal (solo admin). Si hashPINs está activo, el
// PIN se guarda como hash bcrypt y el login usa el verificador correspondiente.
type UserUseCase struct {
	repo     repository.UserRepository
	hashPINs bool
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, hashPINs bool) *UserUseCase {
	return &UserUseCase{repo: repo, hashPINs: hashPINs}
}

// List devuelve los usuarios ordenados por created_at ascendente.
func (uc *UserUseCase) List() ([]*entity.User, error) {
	return uc.repo.List()
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (uc *UserUseCase) GetByID(id string) (*entity.User, error) {
	return uc.repo.GetByID(id)
}

// Create da de alta un miembro del personal con PIN de 4 dígitos.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*entity.User, error) {
	if in.Name == "" || !validRole(in.Role) || !userPINPattern.MatchString(in.PIN) {
		return nil, domain.ErrInvalidInput
	}
	pin, err := uc.encodePIN(in.PIN)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Role:      in.Role,
		PIN:       pin,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update aplica una actualización parcial (nombre, rol o PIN).
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*entity.User, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = *in.Name
	}
	if in.Role != nil {
		if !validRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.PIN != nil {
		if !userPINPattern.MatchString(*in.PIN) {
			return nil, domain.ErrInvalidInput
		}
		pin, err := uc.encodePIN(*in.PIN)
		if err != nil {
			return nil, err
		}
		user.PIN = pin
	}

	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete elimina el usuario.
func (uc *UserUseCase) Delete(id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func (uc *UserUseCase) encodePIN(pin string) (string, error) {
	if !uc.hashPINs {
		return pin, nil
	}
	return auth.HashPIN(pin)
}

func validRole(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleEmployee
}
