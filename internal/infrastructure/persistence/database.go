package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"health-recipe-modifier/internal/core/recipe"
	"health-recipe-modifier/internal/core/rules"
	"health-recipe-modifier/internal/infrastructure/config"
	"health-recipe-modifier/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 依設定連線資料庫並執行 migration
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	inMemory := false
	switch strings.ToLower(cfg.Driver) {
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DSN)
	case "", "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		inMemory = dsn == ":memory:"
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if inMemory {
		// 每條連線各自擁有一個記憶體資料庫
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	common.LogInfo("資料庫已連線", zap.String("driver", dialector.Name()))
	return db, nil
}

// Migrate 建立或更新資料表
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&RuleModel{},
		&FoodEntryModel{},
		&RecipeCacheModel{},
		&ProfileModel{},
		&SampleRecipeModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedDatabase 資料表為空時寫入預設規則與範例食譜
func SeedDatabase(ctx context.Context, db *gorm.DB) error {
	var ruleCount int64
	if err := db.WithContext(ctx).Model(&RuleModel{}).Count(&ruleCount).Error; err != nil {
		return fmt.Errorf("failed to count rules: %w", err)
	}
	if ruleCount == 0 {
		baseline := rules.Baseline()
		models := make([]*RuleModel, 0, len(baseline))
		for _, r := range baseline {
			models = append(models, ruleToModel(r.Normalized()))
		}
		if err := db.WithContext(ctx).Create(&models).Error; err != nil {
			return fmt.Errorf("failed to seed rules: %w", err)
		}
		common.LogInfo("已寫入預設食材規則", zap.Int("count", len(models)))
	}

	var recipeCount int64
	if err := db.WithContext(ctx).Model(&SampleRecipeModel{}).Count(&recipeCount).Error; err != nil {
		return fmt.Errorf("failed to count sample recipes: %w", err)
	}
	if recipeCount == 0 {
		samples := recipe.SampleRecipes()
		models := make([]*SampleRecipeModel, 0, len(samples))
		for _, r := range samples {
			models = append(models, sampleToModel(r))
		}
		if err := db.WithContext(ctx).Create(&models).Error; err != nil {
			return fmt.Errorf("failed to seed sample recipes: %w", err)
		}
		common.LogInfo("已寫入範例食譜", zap.Int("count", len(models)))
	}
	return nil
}

// EnsureCoreRules 確保比對所需的核心規則存在，已存在的規則不會被覆蓋
func EnsureCoreRules(ctx context.Context, store rules.Store) error {
	for _, r := range rules.Baseline() {
		if err := store.UpsertIfAbsent(ctx, r); err != nil {
			return fmt.Errorf("failed to ensure rule %s: %w", r.Ingredient, err)
		}
	}
	return nil
}

// Ping 檢查資料庫連線
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 關閉資料庫連線
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureDir(dsn string) error {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}
