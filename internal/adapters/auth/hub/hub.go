package hub

import (
	"sync"

	"med-reminder/internal/ports/auth"
)

// Hub es un auth.TransitionSource in-process: la capa que maneja el
// sign-in (dev server, tests, o un listener del colaborador de auth)
// publica acá y el session manager reacciona creando/destruyendo
// sesiones.
type Hub struct {
	mu   sync.Mutex
	subs []func(auth.Transition)
}

func New() *Hub {
	return &Hub{}
}

func (h *Hub) Subscribe(fn func(auth.Transition)) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	h.subs = append(h.subs, fn)
	h.mu.Unlock()
}

func (h *Hub) SignIn(claims auth.Claims) {
	h.publish(auth.Transition{Claims: claims, SignedIn: true})
}

func (h *Hub) SignOut(userID string) {
	h.publish(auth.Transition{Claims: auth.Claims{UserID: userID}, SignedIn: false})
}

func (h *Hub) publish(t auth.Transition) {
	h.mu.Lock()
	subs := append([]func(auth.Transition){}, h.subs...)
	h.mu.Unlock()

	for _, fn := range subs {
		fn(t)
	}
}
