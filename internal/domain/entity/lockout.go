package entity

import "time"

// LockoutState estado persistido del bloqueo de login.
// Invariante: LockedUntil está definido solo si FailedAttempts alcanzó el
// umbral en el momento de fijarlo; al vencer, ambos campos vuelven a cero.
type LockoutState struct {
	FailedAttempts int
	LockedUntil    *time.Time
}

// Expired indica si el bloqueo existe y ya venció en el instante now.
func (s LockoutState) Expired(now time.Time) bool {
	return s.LockedUntil != nil && !now.Before(*s.LockedUntil)
}

// Locked indica si el bloqueo está vigente en el instante now.
func (s LockoutState) Locked(now time.Time) bool {
	return s.LockedUntil != nil && now.Before(*s.LockedUntil)
}
