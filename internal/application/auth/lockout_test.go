package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pasteleria-api/internal/application/auth"
	"github.com/jhoicas/pasteleria-api/internal/domain"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeLockoutRepo guarda el estado en memoria, emulando la tabla auth_lockout.
type fakeLockoutRepo struct {
	state entity.LockoutState
	saves int
}

func (r *fakeLockoutRepo) Get() (entity.LockoutState, error) { return r.state, nil }
func (r *fakeLockoutRepo) Save(s entity.LockoutState) error {
	r.state = s
	r.saves++
	return nil
}
func (r *fakeLockoutRepo) Clear() error {
	r.state = entity.LockoutState{}
	return nil
}

// fakeClock reloj controlable para los tests.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)}
}

func newMachine() (*auth.LockoutMachine, *fakeLockoutRepo, *fakeClock) {
	repo := &fakeLockoutRepo{}
	clock := newClock()
	m := auth.NewLockoutMachine(repo, clock.Now)
	return m, repo, clock
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones
// ──────────────────────────────────────────────────────────────────────────────

// Exactamente 5 fallos consecutivos desde Unlocked(0) disparan el candado;
// solo el quinto devuelve el estado bloqueado (la alerta bloqueante).
func TestLockout_UmbralDeCincoIntentos(t *testing.T) {
	m, repo, _ := newMachine()

	for i := 1; i < auth.MaxFailedAttempts; i++ {
		st, err := m.RegisterFailure()
		require.NoError(t, err)
		assert.False(t, st.Locked, "el intento %d no debe bloquear", i)
		assert.Equal(t, i, st.FailedAttempts)
	}

	st, err := m.RegisterFailure()
	require.NoError(t, err)
	assert.True(t, st.Locked, "el quinto intento dispara el candado")
	assert.Equal(t, auth.LockoutDuration, st.Remaining)
	assert.NotNil(t, repo.state.LockedUntil, "el candado queda persistido")
	assert.Equal(t, auth.MaxFailedAttempts, repo.state.FailedAttempts)
}

// Con el candado vigente, los intentos se rechazan sin incrementar el contador.
func TestLockout_IntentoConCandadoNoIncrementa(t *testing.T) {
	m, repo, _ := newMachine()
	for i := 0; i < auth.MaxFailedAttempts; i++ {
		_, _ = m.RegisterFailure()
	}

	st, err := m.RegisterFailure()
	assert.ErrorIs(t, err, domain.ErrLockedOut)
	assert.True(t, st.Locked)
	assert.Equal(t, auth.MaxFailedAttempts, repo.state.FailedAttempts,
		"el contador no crece por encima del umbral")
}

// Un login correcto limpia el contador en memoria y en el repositorio.
func TestLockout_ExitoReseteaContador(t *testing.T) {
	m, repo, _ := newMachine()
	_, _ = m.RegisterFailure()
	_, _ = m.RegisterFailure()

	require.NoError(t, m.RegisterSuccess())
	assert.Equal(t, 0, m.Status().FailedAttempts)
	assert.Equal(t, 0, repo.state.FailedAttempts)
}

// Pasadas las 24 horas el candado vence y la máquina vuelve a Unlocked(0).
func TestLockout_VencimientoDesbloquea(t *testing.T) {
	m, repo, clock := newMachine()
	for i := 0; i < auth.MaxFailedAttempts; i++ {
		_, _ = m.RegisterFailure()
	}
	require.True(t, m.Status().Locked)

	clock.Advance(auth.LockoutDuration)

	st := m.Status()
	assert.False(t, st.Locked)
	assert.Equal(t, 0, st.FailedAttempts, "al vencer también se limpia el contador")
	assert.Nil(t, repo.state.LockedUntil, "el estado persistido queda limpio")
}

// El contador regresivo decrece con el reloj.
func TestLockout_RemainingDecrece(t *testing.T) {
	m, _, clock := newMachine()
	for i := 0; i < auth.MaxFailedAttempts; i++ {
		_, _ = m.RegisterFailure()
	}

	clock.Advance(1 * time.Hour)
	st := m.Status()
	require.True(t, st.Locked)
	assert.Equal(t, auth.LockoutDuration-time.Hour, st.Remaining)
}

// ──────────────────────────────────────────────────────────────────────────────
// Persistencia entre reinicios
// ──────────────────────────────────────────────────────────────────────────────

// Un candado vigente sobrevive a un "reinicio" (nueva máquina, mismo repo).
func TestLockout_CandadoSobreviveReinicio(t *testing.T) {
	m, repo, clock := newMachine()
	for i := 0; i < auth.MaxFailedAttempts; i++ {
		_, _ = m.RegisterFailure()
	}

	m2 := auth.NewLockoutMachine(repo, clock.Now)
	require.NoError(t, m2.Load())
	assert.True(t, m2.Status().Locked, "reiniciar el proceso no salta el candado")
}

// Un candado persistido ya vencido se limpia en Load, contador incluido.
func TestLockout_LoadLimpiaCandadoVencido(t *testing.T) {
	repo := &fakeLockoutRepo{}
	clock := newClock()
	until := clock.Now().Add(-time.Minute)
	repo.state = entity.LockoutState{FailedAttempts: auth.MaxFailedAttempts, LockedUntil: &until}

	m := auth.NewLockoutMachine(repo, clock.Now)
	require.NoError(t, m.Load())

	st := m.Status()
	assert.False(t, st.Locked)
	assert.Equal(t, 0, st.FailedAttempts)
	assert.Equal(t, entity.LockoutState{}, repo.state)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gesto de rescate
// ──────────────────────────────────────────────────────────────────────────────

// 5 toques dentro de la ventana de 2s limpian candado e intentos; un fallo
// posterior cuenta como intento 1, no 6.
func TestLockout_OverrideConCincoToques(t *testing.T) {
	m, repo, clock := newMachine()
	for i := 0; i < auth.MaxFailedAttempts; i++ {
		_, _ = m.RegisterFailure()
	}
	require.True(t, m.Status().Locked)

	var cleared bool
	for i := 0; i < auth.OverrideTaps; i++ {
		var err error
		cleared, err = m.Tap()
		require.NoError(t, err)
		clock.Advance(300 * time.Millisecond) // 5 toques en 1.2s, dentro de la ventana
	}
	assert.True(t, cleared, "el quinto toque limpia el bloqueo")
	assert.False(t, m.Status().Locked)
	assert.Equal(t, entity.LockoutState{}, repo.state)

	st, err := m.RegisterFailure()
	require.NoError(t, err)
	assert.Equal(t, 1, st.FailedAttempts, "tras el override se cuenta desde cero")
}

// Toques espaciados fuera de la ventana no disparan el override.
func TestLockout_ToquesLentosNoDisparanOverride(t *testing.T) {
	m, _, clock := newMachine()
	for i := 0; i < auth.MaxFailedAttempts; i++ {
		_, _ = m.RegisterFailure()
	}

	for i := 0; i < auth.OverrideTaps*2; i++ {
		cleared, err := m.Tap()
		require.NoError(t, err)
		assert.False(t, cleared)
		clock.Advance(time.Second) // cada toque expulsa a los anteriores de la ventana
	}
	assert.True(t, m.Status().Locked)
}

// El override también funciona sin candado: deja el contador en cero.
func TestLockout_OverrideSinCandadoLimpiaIntentos(t *testing.T) {
	m, _, clock := newMachine()
	_, _ = m.RegisterFailure()
	_, _ = m.RegisterFailure()

	for i := 0; i < auth.OverrideTaps; i++ {
		_, _ = m.Tap()
		clock.Advance(100 * time.Millisecond)
	}
	assert.Equal(t, 0, m.Status().FailedAttempts)
}

// ──────────────────────────────────────────────────────────────────────────────
// Countdown
// ──────────────────────────────────────────────────────────────────────────────

// El countdown notifica ticks mientras dura el candado y stop es idempotente.
func TestLockout_CountdownNotificaYSeDetiene(t *testing.T) {
	m, _, _ := newMachine()
	for i := 0; i < auth.MaxFailedAttempts; i++ {
		_, _ = m.RegisterFailure()
	}

	ticks := make(chan auth.Status, 4)
	stop := m.StartCountdown(func(st auth.Status) {
		select {
		case ticks <- st:
		default:
		}
	})

	select {
	case st := <-ticks:
		assert.True(t, st.Locked)
	case <-time.After(3 * time.Second):
		t.Fatal("el countdown no emitió ningún tick")
	}

	stop()
	stop() // idempotente
}
