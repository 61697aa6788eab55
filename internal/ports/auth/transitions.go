package auth

// Transition es un cambio de estado de sesión del colaborador de auth:
// SignedIn=true trae los claims del usuario que entró; SignedIn=false
// indica sign-out (Claims conserva el UserID que salió).
type Transition struct {
	Claims   Claims
	SignedIn bool
}

// TransitionSource permite suscribirse a sign-in/sign-out.
// El session manager lo usa para crear/destruir espejos locales.
type TransitionSource interface {
	Subscribe(fn func(Transition))
}
