package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/pasteleria-api/internal/domain"
	"github.com/jhoicas/pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/pasteleria-api/internal/domain/repository"
)

// Parámetros del bloqueo de login.
const (
	MaxFailedAttempts = 5
	LockoutDuration   = 24 * time.Hour

	// Gesto manual de rescate: OverrideTaps toques dentro de OverrideTapWindow
	// limpian el bloqueo (en memoria y persistido).
	OverrideTaps      = 5
	OverrideTapWindow = 2 * time.Second
)

// Status estado observable del bloqueo, para la pantalla de login.
type Status struct {
	Locked         bool
	Remaining      time.Duration // > 0 solo si Locked
	FailedAttempts int
}

// LockoutMachine máquina de estados de bloqueo por intentos fallidos de PIN.
// Estados: Unlocked(n) con n < MaxFailedAttempts, y Locked(until). El estado
// se persiste vía LockoutRepository para que reiniciar el proceso no lo salte.
// Un candado vencido (now >= until) vuelve a Unlocked(0) en cuanto se observa.
type LockoutMachine struct {
	mu    sync.Mutex
	repo  repository.LockoutRepository
	now   func() time.Time
	state entity.LockoutState
	taps  []time.Time
}

// NewLockoutMachine construye la máquina. now permite inyectar el reloj en
// tests; nil usa time.Now.
func NewLockoutMachine(repo repository.LockoutRepository, now func() time.Time) *LockoutMachine {
	if now == nil {
		now = time.Now
	}
	return &LockoutMachine{repo: repo, now: now}
}

// Load carga el estado persistido en el arranque. Un candado ya vencido se
// limpia aquí mismo, incluido el contador de intentos.
func (m *LockoutMachine) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.repo.Get()
	if err != nil {
		return fmt.Errorf("cargar estado de bloqueo: %w", err)
	}
	if state.Expired(m.now()) {
		m.state = entity.LockoutState{}
		if err := m.repo.Clear(); err != nil {
			return fmt.Errorf("limpiar bloqueo vencido: %w", err)
		}
		return nil
	}
	m.state = state
	return nil
}

// Status devuelve el estado actual. La expiración se reevalúa en cada llamada,
// por lo que el tick de 1s del countdown puede apoyarse en este método.
func (m *LockoutMachine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expireLocked()
	return m.statusLocked()
}

// RegisterFailure registra un intento fallido de PIN. Si el contador alcanza
// MaxFailedAttempts la máquina pasa a Locked(now + LockoutDuration) y el
// Status devuelto lo refleja (es el intento que dispara la alerta bloqueante).
// Con el candado vigente el intento se rechaza sin incrementar el contador.
func (m *LockoutMachine) RegisterFailure() (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expireLocked()

	if m.state.LockedUntil != nil {
		return m.statusLocked(), domain.ErrLockedOut
	}

	m.state.FailedAttempts++
	if m.state.FailedAttempts >= MaxFailedAttempts {
		until := m.now().Add(LockoutDuration)
		m.state.LockedUntil = &until
	}
	if err := m.repo.Save(m.state); err != nil {
		return m.statusLocked(), fmt.Errorf("persistir estado de bloqueo: %w", err)
	}
	return m.statusLocked(), nil
}

// RegisterSuccess limpia el contador tras un login correcto.
func (m *LockoutMachine) RegisterSuccess() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = entity.LockoutState{}
	if err := m.repo.Clear(); err != nil {
		return fmt.Errorf("limpiar intentos tras login: %w", err)
	}
	return nil
}

// Tap registra un toque del gesto de rescate. Devuelve true si con este toque
// se completaron OverrideTaps dentro de la ventana y el bloqueo quedó limpio.
func (m *LockoutMachine) Tap() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cutoff := now.Add(-OverrideTapWindow)
	kept := m.taps[:0]
	for _, t := range m.taps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	m.taps = append(kept, now)

	if len(m.taps) < OverrideTaps {
		return false, nil
	}

	m.taps = nil
	m.state = entity.LockoutState{}
	if err := m.repo.Clear(); err != nil {
		return true, fmt.Errorf("limpiar bloqueo por override: %w", err)
	}
	return true, nil
}

// StartCountdown arranca el tick de 1 segundo que reevalúa el vencimiento
// mientras dure el candado y notifica el Status en cada tick. Se detiene solo
// al desbloquear; stop lo cancela antes (idempotente, seguro de llamar dos
// veces). El llamador debe invocar stop al desmontar la pantalla para no
// filtrar el timer.
func (m *LockoutMachine) StartCountdown(onTick func(Status)) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				st := m.Status()
				onTick(st)
				if !st.Locked {
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// expireLocked aplica la transición Locked -> Unlocked(0) si el candado venció.
// Requiere m.mu tomado.
func (m *LockoutMachine) expireLocked() {
	if m.state.Expired(m.now()) {
		m.state = entity.LockoutState{}
		// El estado persistido vencido también se limpia; si falla se
		// reintentará en la próxima observación.
		_ = m.repo.Clear()
	}
}

// statusLocked arma el Status actual. Requiere m.mu tomado.
func (m *LockoutMachine) statusLocked() Status {
	st := Status{FailedAttempts: m.state.FailedAttempts}
	if m.state.LockedUntil != nil {
		st.Locked = true
		st.Remaining = m.state.LockedUntil.Sub(m.now())
	}
	return st
}
