package nutrition

import "health-recipe-modifier/internal/core/condition"

// Severity 警示等級
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// dangerMultiplier 達到門檻此倍數以上為 danger
const dangerMultiplier = 1.5

type threshold struct {
	nutrient Nutrient
	max      float64
	message  string
}

// 每份上限，只有下列狀況有定義
var conditionThresholds = map[condition.Condition][]threshold{
	condition.Diabetes: {
		{Sugar, 25, "High sugar content - consider portion control"},
		{Carbohydrates, 45, "High carb content - monitor blood glucose"},
	},
	condition.Hypertension: {
		{Sodium, 500, "High sodium content - may affect blood pressure"},
		{SaturatedFat, 7, "Limit saturated fat for heart health"},
	},
	condition.HeartDisease: {
		{Cholesterol, 100, "High cholesterol - limit intake"},
		{SaturatedFat, 5, "Reduce saturated fat for heart health"},
		{Sodium, 400, "High sodium may affect heart health"},
	},
	condition.KidneyDisease: {
		{Potassium, 200, "High potassium - consult your dietitian"},
		{Sodium, 300, "Limit sodium for kidney health"},
		{Protein, 20, "Monitor protein intake"},
	},
	condition.Obesity: {
		{Calories, 400, "High calorie content - watch portion size"},
		{TotalFat, 15, "High fat content - choose lean alternatives"},
		{Sugar, 15, "Limit added sugars for weight management"},
	},
}

// ConditionWarning 營養素超過狀況門檻的警示
type ConditionWarning struct {
	Nutrient    Nutrient `json:"nutrient"`
	DisplayName string   `json:"display_name"`
	Value       float64  `json:"value"`
	Threshold   float64  `json:"threshold"`
	Message     string   `json:"message"`
	Severity    Severity `json:"severity"`
}

// ConditionWarnings 依每份數值與狀況門檻產生警示；無門檻的狀況回傳空清單
func ConditionWarnings(s *Summary, c condition.Condition) []ConditionWarning {
	warnings := []ConditionWarning{}
	if s == nil {
		return warnings
	}
	for _, t := range conditionThresholds[c] {
		value := s.PerServing[t.nutrient]
		if value <= t.max {
			continue
		}
		severity := SeverityWarning
		if value >= t.max*dangerMultiplier {
			severity = SeverityDanger
		}
		warnings = append(warnings, ConditionWarning{
			Nutrient:    t.nutrient,
			DisplayName: t.nutrient.DisplayName(),
			Value:       value,
			Threshold:   t.max,
			Message:     t.message,
			Severity:    severity,
		})
	}
	return warnings
}

// HasThresholds 狀況是否定義了營養門檻
func HasThresholds(c condition.Condition) bool {
	_, ok := conditionThresholds[c]
	return ok
}
