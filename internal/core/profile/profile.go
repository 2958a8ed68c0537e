package profile

import (
	"context"
	"strings"
	"time"

	"health-recipe-modifier/internal/core/condition"
)

// Profile 使用者飲食設定
type Profile struct {
	UserID             string    `json:"user_id"`
	MedicalCondition   string    `json:"medical_condition"`
	DietType           string    `json:"diet_type"`
	Allergies          string    `json:"allergies"`
	FitnessGoal        string    `json:"fitness_goal"`
	DailyCalorieTarget int       `json:"daily_calorie_target"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Empty 沒有任何會產生警示的設定
func (p *Profile) Empty() bool {
	return p == nil ||
		(strings.TrimSpace(p.DietType) == "" &&
			strings.TrimSpace(p.Allergies) == "" &&
			strings.TrimSpace(p.FitnessGoal) == "" &&
			p.DailyCalorieTarget <= 0)
}

// Condition 已儲存的預設狀況
func (p *Profile) Condition() condition.Condition {
	if p == nil {
		return condition.Condition{}
	}
	return condition.Parse(p.MedicalCondition)
}

// Store 使用者設定存取介面。查無資料時 Get 回傳 (nil, nil)。
type Store interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}
