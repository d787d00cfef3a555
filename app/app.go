package app

import (
	"database/sql"

	"github.com/mbolis/formbox/config"
	"github.com/mbolis/formbox/session"
	"github.com/mbolis/formbox/store"
)

// App bundles the wired services handed to every controller.
type App struct {
	Forms     *store.FormStore
	Responses *store.ResponseStore
	Guard     *session.Guard
	Config    config.Config
}

func New(db *sql.DB, guard *session.Guard, cfg config.Config) App {
	return App{
		Forms:     store.NewFormStore(db),
		Responses: store.NewResponseStore(db),
		Guard:     guard,
		Config:    cfg,
	}
}
