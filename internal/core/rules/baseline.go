package rules

// Baseline 預設規則，空資料庫時寫入，啟動時逐筆 upsert-if-absent
func Baseline() []Rule {
	return []Rule{
		{Ingredient: "sugar", HarmfulFor: []string{"diabetes", "obesity"}, Alternative: "stevia", Category: "sweetener"},
		{Ingredient: "salt", HarmfulFor: []string{"hypertension", "heart_disease"}, Alternative: "low-sodium salt", Category: "seasoning"},
		{Ingredient: "flour", HarmfulFor: []string{"celiac", "gluten_intolerance", "diabetes"}, Alternative: "almond flour", Category: "baking"},
		{Ingredient: "butter", HarmfulFor: []string{"cholesterol", "heart_disease"}, Alternative: "olive oil", Category: "fat"},
		{Ingredient: "milk", HarmfulFor: []string{"lactose_intolerance"}, Alternative: "almond milk", Category: "dairy"},
		{Ingredient: "eggs", HarmfulFor: []string{"egg_allergy"}, Alternative: "flaxseed meal", Category: "protein"},
		{Ingredient: "peanuts", HarmfulFor: []string{"peanut_allergy"}, Alternative: "sunflower seeds", Category: "nuts"},
		{Ingredient: "soy", HarmfulFor: []string{"soy_allergy"}, Alternative: "coconut aminos", Category: "protein"},
		{Ingredient: "wheat", HarmfulFor: []string{"celiac", "gluten_intolerance"}, Alternative: "quinoa", Category: "grain"},
		{Ingredient: "corn", HarmfulFor: []string{"corn_allergy"}, Alternative: "rice", Category: "grain"},
	}
}
