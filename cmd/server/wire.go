// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"kudos_web/internal/app"
	"kudos_web/internal/auth"
	"kudos_web/internal/avatar"
	"kudos_web/internal/config"
	"kudos_web/internal/filestorage"
	"kudos_web/internal/jobs"
	"kudos_web/internal/kudo"
	"kudos_web/internal/platform/logger"
	"kudos_web/internal/user"
	"kudos_web/internal/validation"

	"github.com/google/wire"
)

var storeSet = wire.NewSet(
	app.NewDatabase,
	user.NewGORMRepository,
	user.NewService,
	wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
	kudo.NewGORMRepository,
	kudo.NewService,
	wire.Bind(new(kudo.Service), new(*kudo.ServiceImplementation)),
	wire.Bind(new(kudo.RecipientLookup), new(user.Service)),
	app.NewFileStorage,
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		storeSet,

		// Sessions
		app.NewBlocklist,
		wire.Bind(new(auth.Blocklist), new(*auth.InMemoryBlocklist)),
		app.NewSessionManager,
		wire.Bind(new(user.SessionDestroyer), new(*auth.SessionManager)),

		// Handlers
		validation.New,
		auth.NewHandler,
		user.NewHandler,
		kudo.NewHandler,
		wire.Bind(new(avatar.Storage), new(*filestorage.FileStorageService)),
		wire.Bind(new(avatar.PictureSetter), new(user.Service)),
		avatar.NewHandler,

		// Jobs
		wire.Bind(new(jobs.UploadStore), new(*filestorage.FileStorageService)),
		wire.Bind(new(jobs.PictureLister), new(user.Service)),
		jobs.NewUploadSweepJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

// initializeSweeper builds just enough to run one upload sweep from the CLI.
func initializeSweeper(cfg *config.Config) (*jobs.UploadSweepJob, func(), error) {
	wire.Build(
		logger.New,
		storeSet,
		wire.Bind(new(jobs.UploadStore), new(*filestorage.FileStorageService)),
		wire.Bind(new(jobs.PictureLister), new(user.Service)),
		jobs.NewUploadSweepJob,
	)
	return nil, nil, nil
}
