package services

import (
	"errors"
	"fmt"
	"os"
	"strings"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lac-hong-legacy/ven_shop/model"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

const DATABASE_SVC = "database_svc"

type Database interface {
	Db() *gorm.DB
}

type databaseBackend interface {
	Database
	Configure(ctx *appContext.Context) error
	Start() error
	Shutdown()
}

// DatabaseService registers under DATABASE_SVC and hands the work to the
// backend named by DB_DRIVER: "sqlite", or postgres for anything else.
type DatabaseService struct {
	appContext.DefaultService
	backend databaseBackend
}

func (svc DatabaseService) Id() string {
	return DATABASE_SVC
}

func (svc DatabaseService) Db() *gorm.DB {
	return svc.backend.Db()
}

func (svc *DatabaseService) Configure(ctx *appContext.Context) error {
	switch strings.ToLower(os.Getenv("DB_DRIVER")) {
	case "sqlite":
		svc.backend = &SqliteService{}
	default:
		svc.backend = &PostgresService{}
	}

	if err := svc.backend.Configure(ctx); err != nil {
		return err
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *DatabaseService) Start() error {
	return svc.backend.Start()
}

func (svc *DatabaseService) Shutdown() {
	svc.backend.Shutdown()
}

// Migrate creates or updates every table the storefront owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// HandleDBError maps a gorm error to an AppError the HTTP layer can render.
func HandleDBError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *shared.AppError
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		appErr = shared.NewNotFoundError(err, "Not Found")
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "duplicate key value violates unique constraint"),
		strings.Contains(err.Error(), "UNIQUE constraint failed"):
		appErr = shared.NewConflictError(err, "Already exists")
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		appErr = shared.NewBadRequestError(err, "Invalid reference")
		errorType = "FOREIGN_KEY_VIOLATION"
	default:
		appErr = shared.NewInternalError(err)
		errorType = "INTERNAL_ERROR"
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": appErr.StatusCode,
		"error_type":  errorType,
	}).WithError(err)

	if appErr.StatusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Debug("Database operation failed")
	}

	return appErr
}
