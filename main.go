package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/mbolis/formbox/app"
	"github.com/mbolis/formbox/config"
	"github.com/mbolis/formbox/database"
	"github.com/mbolis/formbox/log"
	"github.com/mbolis/formbox/routes"
	"github.com/mbolis/formbox/session"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	guard, err := session.NewGuard(cfg.AdminPassword, cfg.TokenSecret, cfg.TokenTTL, session.NewMemoryStore())
	if err != nil {
		log.Fatal("main.guard:", err)
	}

	handler := routes.Wire(app.New(db, guard, cfg))

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
