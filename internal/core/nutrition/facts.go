// Package nutrition resolves per-ingredient nutrition facts and aggregates
// them into per-serving reports with condition-specific warnings.
package nutrition

import "math"

// Nutrient 營養素名稱
type Nutrient string

const (
	Calories      Nutrient = "calories"
	Protein       Nutrient = "protein"
	TotalFat      Nutrient = "total_fat"
	SaturatedFat  Nutrient = "saturated_fat"
	Carbohydrates Nutrient = "carbohydrates"
	Fiber         Nutrient = "fiber"
	Sugar         Nutrient = "sugar"
	Sodium        Nutrient = "sodium"
	Potassium     Nutrient = "potassium"
	Calcium       Nutrient = "calcium"
	Iron          Nutrient = "iron"
	VitaminA      Nutrient = "vitamin_a"
	VitaminC      Nutrient = "vitamin_c"
	VitaminD      Nutrient = "vitamin_d"
	VitaminB12    Nutrient = "vitamin_b12"
	Cholesterol   Nutrient = "cholesterol"
)

// AllNutrients 固定的十六種營養素
var AllNutrients = []Nutrient{
	Calories, Protein, TotalFat, SaturatedFat, Carbohydrates, Fiber, Sugar, Sodium,
	Potassium, Calcium, Iron, VitaminA, VitaminC, VitaminD, VitaminB12, Cholesterol,
}

// DisplayName 例如 "Saturated Fat"
func (n Nutrient) DisplayName() string {
	return titleWords(string(n))
}

// Unit 顯示單位
func (n Nutrient) Unit() string {
	switch n {
	case Calories:
		return "kcal"
	case Sodium, Potassium, Calcium, Iron, VitaminC, Cholesterol:
		return "mg"
	case VitaminA, VitaminD:
		return "IU"
	case VitaminB12:
		return "mcg"
	default:
		return "g"
	}
}

// DailyValues 每日建議攝取參考值
var DailyValues = map[Nutrient]float64{
	Calories:      2000,
	Protein:       50,
	TotalFat:      65,
	SaturatedFat:  20,
	Carbohydrates: 300,
	Fiber:         25,
	Sugar:         50,
	Sodium:        2300,
	Potassium:     4700,
	Calcium:       1000,
	Iron:          18,
	VitaminA:      5000,
	VitaminC:      90,
	VitaminD:      800,
	VitaminB12:    2.4,
	Cholesterol:   300,
}

// Values 營養素數值，永遠包含全部十六個鍵
type Values map[Nutrient]float64

// NewValues 建立全部為零的數值表
func NewValues() Values {
	v := make(Values, len(AllNutrients))
	for _, n := range AllNutrients {
		v[n] = 0
	}
	return v
}

// Fact 單一食材每 100g 的營養資料
type Fact struct {
	Ingredient  string `json:"ingredient"`
	Nutrients   Values `json:"nutrients"`
	Found       bool   `json:"found"`
	Estimated   bool   `json:"estimated"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

func (f Fact) clone() Fact {
	n := NewValues()
	for k, v := range f.Nutrients {
		n[k] = v
	}
	f.Nutrients = n
	return f
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func titleWords(s string) string {
	out := []byte(s)
	upper := true
	for i, c := range out {
		switch {
		case c == '_':
			out[i] = ' '
			upper = true
		case upper && c >= 'a' && c <= 'z':
			out[i] = c - 'a' + 'A'
			upper = false
		default:
			upper = false
		}
	}
	return string(out)
}
