package session

import (
	"context"
	"errors"
	"testing"

	"med-reminder/internal/ports/auth"
)

type fakeTransitionSource struct {
	subs []func(auth.Transition)
}

func (f *fakeTransitionSource) Subscribe(fn func(auth.Transition)) {
	f.subs = append(f.subs, fn)
}

func (f *fakeTransitionSource) publish(t auth.Transition) {
	for _, fn := range f.subs {
		fn(t)
	}
}

func TestManager_GuestIsEmptyAndReadOnly(t *testing.T) {
	gw := newFakeGateway()
	mgr := NewManager(gw, nil, nil)

	s, err := mgr.Resolve(context.Background(), auth.Claims{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if len(s.Medications()) != 0 || len(s.Alarms()) != 0 {
		t.Fatalf("expected empty guest mirror")
	}
	if gw.totalCalls() != 0 {
		t.Fatalf("guest session should never touch the gateway, got %d calls", gw.totalCalls())
	}

	if _, err := s.SaveMedication(context.Background(), SaveInput{Name: "X", Dosage: "Y"}, ""); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

func TestManager_ReusesSessionPerOwner(t *testing.T) {
	mgr := NewManager(newFakeGateway(), nil, nil)

	a := mgr.Session(auth.Claims{UserID: "user-1"})
	b := mgr.Session(auth.Claims{UserID: "user-1"})
	c := mgr.Session(auth.Claims{UserID: "user-2"})

	if a != b {
		t.Fatalf("expected same session for same owner")
	}
	if a == c {
		t.Fatalf("expected distinct sessions per owner")
	}
}

func TestManager_Watch_SignInLoadsAndSignOutTearsDown(t *testing.T) {
	gw := newFakeGateway()
	gw.seedMedication("user-1", "Ibuprofen", "200mg")

	mgr := NewManager(gw, nil, nil)
	src := &fakeTransitionSource{}
	mgr.Watch(src)

	src.publish(auth.Transition{Claims: auth.Claims{UserID: "user-1"}, SignedIn: true})

	s := mgr.Session(auth.Claims{UserID: "user-1"})
	if len(s.Medications()) != 1 {
		t.Fatalf("expected mirror loaded on sign-in")
	}

	src.publish(auth.Transition{Claims: auth.Claims{UserID: "user-1"}, SignedIn: false})

	// Tras sign-out la sesión se descarta: la próxima es otra instancia.
	if again := mgr.Session(auth.Claims{UserID: "user-1"}); again == s {
		t.Fatalf("expected session discarded on sign-out")
	}
}
