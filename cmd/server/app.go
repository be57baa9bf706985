package main

import (
	"database/sql"
	"log/slog"

	"github.com/phrazzld/memo-api/internal/config"
	"github.com/phrazzld/memo-api/internal/platform/postgres"
	"github.com/phrazzld/memo-api/internal/service"
)

// application holds the assembled dependencies of the running server.
type application struct {
	config *config.Config
	db     *sql.DB
	logger *slog.Logger

	memoService  service.MemoService
	groupService service.GroupService
}

// newApplication wires stores and services around the shared database
// handle.
func newApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) *application {
	memoStore := postgres.NewPostgresMemoStore(db, logger)
	groupStore := postgres.NewPostgresGroupStore(db, logger)

	return &application{
		config:       cfg,
		db:           db,
		logger:       logger,
		memoService:  service.NewMemoService(memoStore, groupStore, logger),
		groupService: service.NewGroupService(db, groupStore, memoStore, logger),
	}
}
