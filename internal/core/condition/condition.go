// Package condition defines the closed vocabularies used across the pipeline:
// medical conditions, diet types and fitness goals.
package condition

import (
	"strings"

	"health-recipe-modifier/internal/pkg/common"
)

// Condition 醫療 / 飲食狀況標籤
type Condition struct {
	tag string
}

// 已知狀況
var (
	Diabetes           = Condition{"diabetes"}
	Obesity            = Condition{"obesity"}
	Hypertension       = Condition{"hypertension"}
	HeartDisease       = Condition{"heart_disease"}
	KidneyDisease      = Condition{"kidney_disease"}
	Celiac             = Condition{"celiac"}
	GlutenIntolerance  = Condition{"gluten_intolerance"}
	Cholesterol        = Condition{"cholesterol"}
	LactoseIntolerance = Condition{"lactose_intolerance"}
	EggAllergy         = Condition{"egg_allergy"}
	PeanutAllergy      = Condition{"peanut_allergy"}
	SoyAllergy         = Condition{"soy_allergy"}
	CornAllergy        = Condition{"corn_allergy"}
)

var known = map[string]Condition{}

func init() {
	for _, c := range []Condition{
		Diabetes, Obesity, Hypertension, HeartDisease, KidneyDisease, Celiac,
		GlutenIntolerance, Cholesterol, LactoseIntolerance, EggAllergy,
		PeanutAllergy, SoyAllergy, CornAllergy,
	} {
		known[c.tag] = c
	}
}

// Parse 正規化狀況字串：小寫、去空白、空格與連字號改為底線。
// 未知標籤保留原值並標記為 Other。
func Parse(raw string) Condition {
	tag := common.NormalizeName(raw)
	tag = strings.NewReplacer(" ", "_", "-", "_").Replace(tag)
	return Condition{tag: tag}
}

// Tag 回傳正規化標籤
func (c Condition) Tag() string { return c.tag }

// String implements fmt.Stringer.
func (c Condition) String() string { return c.tag }

// IsZero 是否為空狀況
func (c Condition) IsZero() bool { return c.tag == "" }

// Known 是否屬於已知狀況集合
func (c Condition) Known() bool {
	_, ok := known[c.tag]
	return ok
}

// Other 非空但不在已知集合中的狀況
func (c Condition) Other() bool {
	return !c.IsZero() && !c.Known()
}

// DisplayName 顯示名稱，例如 "Heart Disease"
func (c Condition) DisplayName() string {
	return common.TitleCase(c.tag)
}

// DietType 飲食類型
type DietType string

const (
	DietNone       DietType = ""
	DietVegetarian DietType = "vegetarian"
	DietVegan      DietType = "vegan"
	DietKeto       DietType = "keto"
	DietOther      DietType = "other"
)

// ParseDietType 將自由輸入對應到已知飲食類型；含多種關鍵字時以最嚴格者為準
func ParseDietType(raw string) DietType {
	s := common.NormalizeName(raw)
	switch {
	case s == "":
		return DietNone
	case strings.Contains(s, "vegan"):
		return DietVegan
	case strings.Contains(s, "keto"):
		return DietKeto
	case strings.Contains(s, "veg"), strings.Contains(s, "lacto"), strings.Contains(s, "ovo"):
		return DietVegetarian
	default:
		return DietOther
	}
}

// FitnessGoal 健身目標
type FitnessGoal string

const (
	GoalNone        FitnessGoal = ""
	GoalWeightLoss  FitnessGoal = "weight_loss"
	GoalMuscleGain  FitnessGoal = "muscle_gain"
	GoalMaintenance FitnessGoal = "maintenance"
	GoalOther       FitnessGoal = "other"
)

// ParseFitnessGoal 將自由輸入對應到已知健身目標
func ParseFitnessGoal(raw string) FitnessGoal {
	s := strings.NewReplacer(" ", "_", "-", "_").Replace(common.NormalizeName(raw))
	switch {
	case s == "":
		return GoalNone
	case strings.Contains(s, "weight_loss"), strings.Contains(s, "lose"), strings.Contains(s, "fat_loss"):
		return GoalWeightLoss
	case strings.Contains(s, "muscle"), strings.Contains(s, "bulk"):
		return GoalMuscleGain
	case strings.Contains(s, "maint"):
		return GoalMaintenance
	default:
		return GoalOther
	}
}
