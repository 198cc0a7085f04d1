package postgres

import (
	"log"

	"github.com/PrecisionBh/melo-escrow-service/internal/config"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.EscrowConfig) *gorm.DB {
	dsn := cfg.EscrowDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.OrderModel{},
		&models.WalletModel{},
		&models.DisputeModel{},
		&models.PayoutModel{},
		&models.ReconciliationEntryModel{},
	)

	return db
}
