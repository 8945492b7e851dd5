package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"salonagenda/internal/config"
	"salonagenda/internal/database"
	"salonagenda/internal/domain"
	"salonagenda/internal/pkg/logging"
	"salonagenda/internal/repository"
)

var starterServices = []domain.Service{
	{Name: "Corte feminino", Description: "Corte, lavagem e finalização", DurationMinutes: 60, Price: decimal.RequireFromString("80.00"), Active: true},
	{Name: "Corte masculino", Description: "Corte na tesoura ou máquina", DurationMinutes: 30, Price: decimal.RequireFromString("45.00"), Active: true},
	{Name: "Escova", Description: "Escova modeladora", DurationMinutes: 45, Price: decimal.RequireFromString("55.00"), Active: true},
	{Name: "Manicure", Description: "Cutilagem e esmaltação", DurationMinutes: 40, Price: decimal.RequireFromString("35.00"), Active: true},
	{Name: "Pedicure", Description: "Cutilagem e esmaltação dos pés", DurationMinutes: 50, Price: decimal.RequireFromString("40.00"), Active: true},
	{Name: "Coloração", Description: "Tintura completa", DurationMinutes: 120, Price: decimal.RequireFromString("180.00"), Active: true},
	{Name: "Hidratação", Description: "Tratamento capilar", DurationMinutes: 45, Price: decimal.RequireFromString("70.00"), Active: false},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	logger.Info("running migrations")
	if err := repository.Migrate(db); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	repo := repository.NewServiceRepository(db)
	ctx := context.Background()
	for i := range starterServices {
		s := starterServices[i]
		if err := repo.Upsert(ctx, &s); err != nil {
			logger.Fatal("seed service failed", zap.String("name", s.Name), zap.Error(err))
		}
		logger.Info("service seeded", zap.String("name", s.Name), zap.Bool("active", s.Active))
	}
	logger.Info("seed completed", zap.Int("services", len(starterServices)))
}
