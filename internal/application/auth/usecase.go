package auth

import (
	"errors"
	"regexp"

	"github.com/jhoicas/pasteleria-api/internal/application/dto"
	"github.com/jhoicas/pasteleria-api/internal/domain"
	"github.com/jhoicas/pasteleria-api/pkg/jwt"
)

// pinPattern validación de formato previa a la máquina de bloqueo: un PIN que
// no sea de 4 dígitos se rechaza localmente y no consume intentos.
var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de login por PIN: valida formato, consulta la
// máquina de bloqueo y solo entonces verifica la credencial.
type AuthUseCase struct {
	checker CredentialChecker
	lockout *LockoutMachine
	jwtCfg  JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(checker CredentialChecker, lockout *LockoutMachine, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{checker: checker, lockout: lockout, jwtCfg: jwtCfg}
}

// Login intenta autenticar con el PIN dado.
//   - domain.ErrInvalidPIN: formato inválido (no toca la máquina de bloqueo).
//   - domain.ErrLockedOut: candado vigente, o este intento lo disparó; el
//     handler consulta LockoutStatus para el tiempo restante.
//   - domain.ErrUserNotFound: PIN incorrecto, queda margen de intentos.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if !pinPattern.MatchString(in.PIN) {
		return nil, domain.ErrInvalidPIN
	}

	// Con el candado vigente no se consulta la credencial.
	if st := uc.lockout.Status(); st.Locked {
		return nil, domain.ErrLockedOut
	}

	user, err := uc.checker.Authenticate(in.PIN)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			st, ferr := uc.lockout.RegisterFailure()
			if ferr != nil && !errors.Is(ferr, domain.ErrLockedOut) {
				return nil, ferr
			}
			if st.Locked {
				return nil, domain.ErrLockedOut
			}
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if err := uc.lockout.RegisterSuccess(); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}

// LockoutStatus expone el estado del bloqueo para la pantalla de login.
func (uc *AuthUseCase) LockoutStatus() Status {
	return uc.lockout.Status()
}

// OverrideTap registra un toque del gesto de rescate y devuelve si el bloqueo
// quedó limpio con este toque.
func (uc *AuthUseCase) OverrideTap() (bool, error) {
	return uc.lockout.Tap()
}
