package cli

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ehtishamsajjad/tm/internal/config"
	"github.com/ehtishamsajjad/tm/internal/repository"
	"github.com/ehtishamsajjad/tm/internal/service"
)

// app holds the storage-backed collaborators shared by every command.
type app struct {
	db      *gorm.DB
	users   *repository.UserRepository
	tasks   *service.TaskService
	reports *service.ReportService
	log     *zap.Logger
}

func newApp(cfg config.Config, log *zap.Logger) (*app, error) {
	db, err := repository.NewDB(cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	tasks := service.NewTaskService(
		repository.NewTransactor(db),
		repository.NewTaskRepository(db),
		repository.NewTagRepository(db, cfg.DefaultTagColor),
		repository.NewLinkRepository(db),
	)

	return &app{
		db:      db,
		users:   repository.NewUserRepository(db),
		tasks:   tasks,
		reports: service.NewReportService(tasks),
		log:     log,
	}, nil
}

func (a *app) Close() {
	sqlDB, err := a.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		a.log.Warn("failed to close database", zap.Error(err))
	}
}
