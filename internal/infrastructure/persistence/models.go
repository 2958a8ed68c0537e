// Package persistence 提供以 GORM 實作的規則、紀錄、食譜快取、使用者設定與範例食譜存取
package persistence

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"health-recipe-modifier/internal/core/nutrition"
)

// RuleModel 食材規則
type RuleModel struct {
	ID          uint        `gorm:"primaryKey"`
	Ingredient  string      `gorm:"type:varchar(100);uniqueIndex;not null"`
	HarmfulFor  StringSlice `gorm:"type:json"`
	Alternative string      `gorm:"type:varchar(100)"`
	Category    string      `gorm:"type:varchar(50);index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName 指定資料表名稱
func (RuleModel) TableName() string { return "ingredient_rules" }

// FoodEntryModel 食材檢查紀錄
type FoodEntryModel struct {
	ID               string         `gorm:"type:char(36);primaryKey"`
	UserID           string         `gorm:"type:varchar(64);index:idx_food_entries_owner_created,priority:1;not null"`
	Condition        string         `gorm:"type:varchar(50);index"`
	RecipeName       string         `gorm:"type:varchar(255)"`
	InputIngredients StringSlice    `gorm:"type:json"`
	Harmful          StringSlice    `gorm:"type:json"`
	Safe             StringSlice    `gorm:"type:json"`
	Recipe           string         `gorm:"type:text"`
	Favorite         bool           `gorm:"default:false;index"`
	Category         string         `gorm:"type:varchar(50);index"`
	Nutrition        NutritionField `gorm:"type:json"`
	CreatedAt        time.Time      `gorm:"index:idx_food_entries_owner_created,priority:2"`
	UpdatedAt        time.Time
}

// TableName 指定資料表名稱
func (FoodEntryModel) TableName() string { return "food_entries" }

// RecipeCacheModel 已生成的食譜文字，(condition, ingredients_key) 唯一
type RecipeCacheModel struct {
	ID             uint      `gorm:"primaryKey"`
	Condition      string    `gorm:"type:varchar(50);uniqueIndex:idx_recipe_cache_key,priority:1;not null"`
	IngredientsKey string    `gorm:"type:varchar(2048);uniqueIndex:idx_recipe_cache_key,priority:2;not null"`
	Recipe         string    `gorm:"type:text;not null"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

// TableName 指定資料表名稱
func (RecipeCacheModel) TableName() string { return "generated_recipes" }

// ProfileModel 使用者飲食設定
type ProfileModel struct {
	UserID             string `gorm:"type:varchar(64);primaryKey"`
	MedicalCondition   string `gorm:"type:varchar(50)"`
	DietType           string `gorm:"type:varchar(50)"`
	Allergies          string `gorm:"type:text"`
	FitnessGoal        string `gorm:"type:varchar(50)"`
	DailyCalorieTarget int    `gorm:"default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName 指定資料表名稱
func (ProfileModel) TableName() string { return "user_profiles" }

// SampleRecipeModel 範例食譜
type SampleRecipeModel struct {
	ID          uint        `gorm:"primaryKey"`
	Name        string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Ingredients StringSlice `gorm:"type:json"`
	Tags        StringSlice `gorm:"type:json"`
}

// TableName 指定資料表名稱
func (SampleRecipeModel) TableName() string { return "recipes" }

// StringSlice 以 JSON 儲存的字串陣列
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// NutritionField 以 JSON 儲存的營養摘要，未計算時為 NULL
type NutritionField struct {
	Summary *nutrition.Summary
}

// Scan implements the sql.Scanner interface
func (n *NutritionField) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		n.Summary = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into NutritionField", value)
	}

	if len(data) == 0 || string(data) == "null" {
		n.Summary = nil
		return nil
	}
	var s nutrition.Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Summary = &s
	return nil
}

// Value implements the driver.Valuer interface
func (n NutritionField) Value() (driver.Value, error) {
	if n.Summary == nil {
		return nil, nil
	}
	b, err := json.Marshal(n.Summary)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
