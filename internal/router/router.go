package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "med-reminder/internal/adapters/storage/memory"
	pg "med-reminder/internal/adapters/storage/postgres"
	"med-reminder/internal/domain/medications"
	"med-reminder/internal/domain/session"
	"med-reminder/internal/middleware"
	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/auth"
	"med-reminder/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "med-reminder/docs"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: transiciones sign-in/sign-out del colaborador de auth.
	Transitions auth.TransitionSource

	Notifier notify.Notifier
	Logger   logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/docs/*", httpSwagger.WrapHandler)

	var (
		medRepo   medications.Repository
		alarmRepo medications.AlarmRepository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		medRepo = pg.NewMedicationsRepo(db)
		alarmRepo = pg.NewAlarmsRepo(db)
	} else {
		store := mem.NewStore()
		medRepo = store.Medications()
		alarmRepo = store.Alarms()
	}

	gw := medications.NewService(medRepo, alarmRepo)
	sessions := session.NewManager(gw, opts.Notifier, opts.Logger)
	sessions.Watch(opts.Transitions)

	session.RegisterRoutes(r, sessions)

	return r
}
