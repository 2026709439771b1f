package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pasteleria-api/internal/application/auth"
	"github.com/jhoicas/pasteleria-api/internal/application/dto"
	"github.com/jhoicas/pasteleria-api/internal/domain"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
)

// fakeChecker verificador de credenciales con un único PIN válido.
// Cuenta las consultas para comprobar que el candado corta antes de llegar aquí.
type fakeChecker struct {
	validPIN string
	calls    int
}

func (c *fakeChecker) Authenticate(pin string) (*entity.User, error) {
	c.calls++
	if pin == c.validPIN {
		return &entity.User{ID: "u-1", Name: "Kitchen Manager", Role: entity.RoleAdmin, PIN: pin}, nil
	}
	return nil, domain.ErrUserNotFound
}

func newAuthUC() (*auth.AuthUseCase, *fakeChecker, *fakeClock) {
	repo := &fakeLockoutRepo{}
	clock := newClock()
	machine := auth.NewLockoutMachine(repo, clock.Now)
	checker := &fakeChecker{validPIN: "1234"}
	uc := auth.NewAuthUseCase(checker, machine, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "pasteleria-test",
	})
	return uc, checker, clock
}

// PIN correcto: devuelve token y usuario, y deja el contador en cero.
func TestLogin_PINCorrectoDevuelveToken(t *testing.T) {
	uc, _, _ := newAuthUC()

	out, err := uc.Login(dto.LoginRequest{PIN: "1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "Kitchen Manager", out.User.Name)
	assert.Equal(t, 0, uc.LockoutStatus().FailedAttempts)
}

// Formato inválido: se rechaza localmente sin consumir intentos ni consultar credenciales.
func TestLogin_FormatoInvalidoNoConsumeIntentos(t *testing.T) {
	uc, checker, _ := newAuthUC()

	for _, pin := range []string{"", "12", "12345", "abcd", "12a4"} {
		_, err := uc.Login(dto.LoginRequest{PIN: pin})
		assert.ErrorIs(t, err, domain.ErrInvalidPIN, "pin %q", pin)
	}
	assert.Equal(t, 0, checker.calls, "el formato inválido nunca llega al verificador")
	assert.Equal(t, 0, uc.LockoutStatus().FailedAttempts)
}

// PIN incorrecto: los primeros 4 fallos devuelven ErrUserNotFound; el quinto
// dispara ErrLockedOut (la alerta bloqueante) y deja el candado activo.
func TestLogin_QuintoFalloBloquea(t *testing.T) {
	uc, _, _ := newAuthUC()

	for i := 1; i < auth.MaxFailedAttempts; i++ {
		_, err := uc.Login(dto.LoginRequest{PIN: "9999"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound, "intento %d", i)
	}

	_, err := uc.Login(dto.LoginRequest{PIN: "9999"})
	assert.ErrorIs(t, err, domain.ErrLockedOut)

	st := uc.LockoutStatus()
	assert.True(t, st.Locked)
	assert.Equal(t, auth.LockoutDuration, st.Remaining)
}

// Con el candado vigente ni siquiera el PIN correcto consulta al verificador.
func TestLogin_BloqueadoNoConsultaCredenciales(t *testing.T) {
	uc, checker, _ := newAuthUC()
	for i := 0; i < auth.MaxFailedAttempts; i++ {
		_, _ = uc.Login(dto.LoginRequest{PIN: "9999"})
	}
	callsBefore := checker.calls

	_, err := uc.Login(dto.LoginRequest{PIN: "1234"})
	assert.ErrorIs(t, err, domain.ErrLockedOut)
	assert.Equal(t, callsBefore, checker.calls,
		"el intento bloqueado se rechaza antes de verificar la credencial")
}

// Vencido el candado, el siguiente PIN correcto entra con normalidad.
func TestLogin_TrasVencimientoElPINCorrectoEntra(t *testing.T) {
	uc, _, clock := newAuthUC()
	for i := 0; i < auth.MaxFailedAttempts; i++ {
		_, _ = uc.Login(dto.LoginRequest{PIN: "9999"})
	}

	clock.Advance(auth.LockoutDuration + time.Second)

	out, err := uc.Login(dto.LoginRequest{PIN: "1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

// Tras el override, un PIN incorrecto cuenta como intento 1, no como 6.
func TestLogin_OverrideReiniciaElConteo(t *testing.T) {
	uc, _, clock := newAuthUC()
	for i := 0; i < auth.MaxFailedAttempts; i++ {
		_, _ = uc.Login(dto.LoginRequest{PIN: "9999"})
	}
	require.True(t, uc.LockoutStatus().Locked)

	var cleared bool
	for i := 0; i < auth.OverrideTaps; i++ {
		var err error
		cleared, err = uc.OverrideTap()
		require.NoError(t, err)
		clock.Advance(200 * time.Millisecond)
	}
	require.True(t, cleared)

	_, err := uc.Login(dto.LoginRequest{PIN: "9999"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound, "no debe bloquear de nuevo")
	assert.Equal(t, 1, uc.LockoutStatus().FailedAttempts)
}
