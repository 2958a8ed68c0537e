package nutrition

import "strings"

// 分類估算值（每 100g），未列出的營養素為 0
var categoryEstimates = map[string]map[Nutrient]float64{
	"default":   {Calories: 100, Protein: 5, Carbohydrates: 15, TotalFat: 3, Sugar: 5, Fiber: 2, Sodium: 50},
	"meat":      {Calories: 200, Protein: 25, Carbohydrates: 0, TotalFat: 12, Sugar: 0, Fiber: 0, Sodium: 70},
	"vegetable": {Calories: 25, Protein: 2, Carbohydrates: 5, TotalFat: 0.3, Sugar: 2, Fiber: 2, Sodium: 15},
	"fruit":     {Calories: 50, Protein: 0.5, Carbohydrates: 12, TotalFat: 0.2, Sugar: 10, Fiber: 2, Sodium: 2},
	"grain":     {Calories: 350, Protein: 10, Carbohydrates: 75, TotalFat: 2, Sugar: 1, Fiber: 5, Sodium: 5},
	"dairy":     {Calories: 100, Protein: 8, Carbohydrates: 5, TotalFat: 5, Sugar: 5, Fiber: 0, Sodium: 100},
	"oil":       {Calories: 880, Protein: 0, Carbohydrates: 0, TotalFat: 100, Sugar: 0, Fiber: 0, Sodium: 0},
}

// 依序比對，後面的分類優先（例如 "peanut butter oil" 歸為 oil）
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"meat", []string{"chicken", "beef", "pork", "fish", "lamb", "turkey", "meat", "salmon", "tuna", "shrimp"}},
	{"vegetable", []string{"carrot", "broccoli", "spinach", "tomato", "onion", "garlic", "pepper", "lettuce", "cabbage", "cucumber", "celery"}},
	{"fruit", []string{"apple", "banana", "orange", "berry", "grape", "mango", "lemon", "lime", "strawberry", "blueberry"}},
	{"grain", []string{"rice", "wheat", "bread", "pasta", "flour", "oat", "cereal", "noodle", "quinoa"}},
	{"dairy", []string{"milk", "cheese", "yogurt", "cream", "butter", "curd", "paneer"}},
	{"oil", []string{"oil", "ghee", "lard"}},
}

// Categorize 以關鍵字子字串判斷食材分類
func Categorize(ingredient string) string {
	name := strings.ToLower(ingredient)
	category := "default"
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(name, kw) {
				category = group.category
				break
			}
		}
	}
	return category
}

// Estimate 依分類產生估算營養資料
func Estimate(ingredient string) Fact {
	category := Categorize(ingredient)
	values := NewValues()
	for n, v := range categoryEstimates[category] {
		values[n] = v
	}
	return Fact{
		Ingredient: ingredient,
		Nutrients:  values,
		Found:      false,
		Estimated:  true,
		Category:   category,
	}
}
