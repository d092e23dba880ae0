package infra

import (
	"fmt"

	"stallpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema. Runs on every startup; AutoMigrate is
// additive, so an up-to-date schema is a no-op.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.RawIngredient{},
		&model.SemiProcessedItem{},
		&model.SemiBatch{},
		&model.PurchasedGood{},
		&model.SkuItem{},
		&model.SemiProcessedRecipe{},
		&model.SkuRecipe{},
		&model.RecipeIngredient{},
		&model.BatchCookingLog{},
		&model.TransferLog{},
		&model.IngredientUsage{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.ActivityLog{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the expiry sweep query: only live batches matter.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_semi_batches_expiring') THEN
		    CREATE INDEX idx_semi_batches_expiring
		        ON semi_batches (expires_at)
		        WHERE quantity > 0;
		  END IF;
		END $$`,
		// Non-negative stock guards: the engine validates before deducting, but
		// a CHECK constraint is the last line against concurrent over-deduction.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_raw_stock_nonneg') THEN
		    ALTER TABLE raw_ingredients ADD CONSTRAINT chk_raw_stock_nonneg CHECK (current_stock >= 0);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_sku_stall_stock_nonneg') THEN
		    ALTER TABLE sku_items ADD CONSTRAINT chk_sku_stall_stock_nonneg CHECK (current_stall_stock >= 0);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_purchased_stock_nonneg') THEN
		    ALTER TABLE purchased_goods ADD CONSTRAINT chk_purchased_stock_nonneg
		        CHECK (current_stock >= 0 AND counter_stock >= 0);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_semi_stock_nonneg') THEN
		    ALTER TABLE semi_processed_items ADD CONSTRAINT chk_semi_stock_nonneg CHECK (current_stock >= 0);
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_semi_batch_qty_nonneg') THEN
		    ALTER TABLE semi_batches ADD CONSTRAINT chk_semi_batch_qty_nonneg CHECK (quantity >= 0);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
