package session

import (
	"context"
	"sync"

	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/auth"
	"med-reminder/internal/ports/notify"
)

// Manager mantiene una sesión por usuario con lifecycle explícito:
// se crea (y carga) al sign-in, se destruye al sign-out. Sin identidad
// entrega una sesión invitada vacía, de solo lectura.
type Manager struct {
	gw       Gateway
	notifier notify.Notifier
	log      logger.Logger

	mu      sync.Mutex
	byOwner map[string]*Session
	guest   *Session
}

func NewManager(gw Gateway, notifier notify.Notifier, log logger.Logger) *Manager {
	return &Manager{
		gw:       gw,
		notifier: notifier,
		log:      log,
		byOwner:  make(map[string]*Session),
		guest:    New(auth.Claims{}, gw, nil),
	}
}

// Session devuelve la sesión del usuario, creándola si no existe.
// No dispara la carga; ver Resolve.
func (m *Manager) Session(owner auth.Claims) *Session {
	if owner.UserID == "" {
		return m.guest
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.byOwner[owner.UserID]
	if !ok {
		s = New(owner, m.gw, m.notifier)
		m.byOwner[owner.UserID] = s
	}
	return s
}

// Resolve entrega la sesión con el espejo ya cargado (carga perezosa
// en el primer uso). La sesión invitada nunca toca la red.
func (m *Manager) Resolve(ctx context.Context, owner auth.Claims) (*Session, error) {
	s := m.Session(owner)

	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return s, nil
	}

	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Teardown descarta la sesión del usuario (sign-out).
func (m *Manager) Teardown(userID string) {
	if userID == "" {
		return
	}
	m.mu.Lock()
	delete(m.byOwner, userID)
	m.mu.Unlock()
}

// Watch engancha el manager a las transiciones del colaborador de auth.
func (m *Manager) Watch(src auth.TransitionSource) {
	if src == nil {
		return
	}
	src.Subscribe(func(t auth.Transition) {
		if !t.SignedIn {
			m.Teardown(t.Claims.UserID)
			return
		}

		s := m.Session(t.Claims)
		if err := s.Load(context.Background()); err != nil && m.log != nil {
			m.log.Warn("session load on sign-in failed", map[string]any{
				"user_id": t.Claims.UserID,
				"err":     err.Error(),
			})
		}
	})
}
