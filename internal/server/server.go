// Package server assembles the record store service: storage, services,
// handlers and routes.
package server

import (
	"context"
	"fmt"

	"github.com/sangkips/mobilehub-pos/internal/application/service"
	"github.com/sangkips/mobilehub-pos/internal/config"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/mobilehub-pos/internal/domain/repository"
	"github.com/sangkips/mobilehub-pos/internal/infrastructure/database"
	"github.com/sangkips/mobilehub-pos/internal/infrastructure/repository"
	"github.com/sangkips/mobilehub-pos/internal/infrastructure/repository/sqlite"
	"github.com/sangkips/mobilehub-pos/internal/ledger"
	"github.com/sangkips/mobilehub-pos/internal/presentation/http/handler"
	"github.com/sangkips/mobilehub-pos/internal/presentation/http/routes"
	"github.com/sangkips/mobilehub-pos/internal/receipt"
	"github.com/sangkips/mobilehub-pos/pkg/printer"
	"github.com/sangkips/mobilehub-pos/pkg/utils"
)

// Stores are the repositories behind the service
type Stores struct {
	Records     domainRepo.RecordRepository
	Users       domainRepo.UserRepository
	Idempotency domainRepo.IdempotencyRepository
	close       func() error
}

// Close releases the database
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStores connects to the configured database and migrates it.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return &Stores{
			Records:     repository.NewRecordRepository(db),
			Users:       repository.NewUserRepository(db),
			Idempotency: repository.NewIdempotencyRepository(db),
			close:       sqlDB.Close,
		}, nil
	case "sqlite", "":
		db, err := database.NewSQLiteDB(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Records:     sqlite.NewRecordRepository(db),
			Users:       sqlite.NewUserRepository(db),
			Idempotency: sqlite.NewIdempotencyRepository(db),
			close:       db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q (use postgres or sqlite)", cfg.Database.Driver)
}

// NewRouter wires services and handlers over stores and the given printer.
func NewRouter(cfg *config.Config, stores *Stores, p printer.Printer) (*routes.Router, error) {
	basis, err := ledger.ParseSalesBasis(cfg.Ledger.SalesBasis)
	if err != nil {
		return nil, err
	}
	opts, err := receipt.NewOptions(entity.ReceiptHeader{
		ShopName: cfg.Shop.Name,
		Address:  cfg.Shop.Address,
		Phone:    cfg.Shop.Phone,
	}, cfg.Ledger.GrandTotal, cfg.Shop.Footer)
	if err != nil {
		return nil, err
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	validator := ledger.Validator{RequirePrice: cfg.Ledger.RequirePrice}

	authService := service.NewAuthService(stores.Users, jwtManager)
	recordService := service.NewRecordService(stores.Records, validator)
	dashboardService := service.NewDashboardService(stores.Records, basis)
	printerService := service.NewPrinterService(p, stores.Records, opts, cfg.Printer.Width)

	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Record:    handler.NewRecordHandler(recordService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	return routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: stores.Idempotency,
	}), nil
}
