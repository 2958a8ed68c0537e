package recipe

import (
	"fmt"
	"strings"
)

// buildRecipePrompt 組合食譜生成提示
func buildRecipePrompt(req GenerateRequest) string {
	condition := req.Condition.DisplayName()

	var info strings.Builder
	fmt.Fprintf(&info, "- Medical Condition: %s\n", condition)
	fmt.Fprintf(&info, "- Original Ingredients: %s\n", strings.Join(req.Original, ", "))
	fmt.Fprintf(&info, "- Safe Ingredients: %s", strings.Join(req.Substituted, ", "))
	if len(req.Harmful) > 0 {
		fmt.Fprintf(&info, "\n- Harmful ingredients replaced: %s", strings.Join(req.Harmful, ", "))
	}
	if name := strings.TrimSpace(req.RecipeName); name != "" {
		fmt.Fprintf(&info, "\n- Dish: %s", name)
	}

	return fmt.Sprintf(`You are a professional nutritionist and chef specializing in creating healthy recipes for people with medical conditions.

Patient Information:
%s

Please create a detailed, step-by-step recipe using the safe ingredients. The recipe should:
1. Be easy to follow for home cooking
2. Include specific cooking times and temperatures
3. Provide clear instructions for each step
4. Include helpful tips for the specific medical condition
5. Be written in a friendly, encouraging tone
6. Include serving suggestions and nutritional notes

Format the recipe with clear sections using markdown:

**Health Benefits**
Brief introduction explaining why this recipe is good for %s

**Ingredients**
- List each ingredient with quantities

**Instructions**
1. Step-by-step cooking instructions
2. Include cooking times and temperatures

**Cooking Tips**
- Helpful tips for the specific medical condition

**Serving Suggestions**
- How to serve and enjoy the dish
- Nutritional notes relevant to the condition

Keep the response concise but informative (around 200-300 words).`, info.String(), condition)
}

const extractionExamples = `Example 1
Input: puran poli
Output: wheat flour, chana dal, jaggery, ghee, cardamom, turmeric, salt

Example 2
Input: bread
Output: flour, water, yeast, salt

Example 3
Input: Banana Bread recipe: 2 cups flour, 3 bananas (ripe), 1/2 cup sugar, 1/3 cup butter, 2 eggs.
Output: flour, banana, sugar, butter, eggs`

// buildExtractionPrompt 組合食材擷取提示
func buildExtractionPrompt(text string) string {
	return fmt.Sprintf(`You are an expert at reading recipes and listing only the ingredient names.
- Input may be just a recipe name (e.g., "puran poli") or a block of text with steps.
- Return ONLY a simple, comma-separated list of ingredient names.
- Do NOT include amounts, units, adjectives (like chopped/minced), preparation notes, brands, or extraneous words.
- Use singular nouns when reasonable (e.g., banana, egg) and lowercase all words.
- If the input is a regional dish, infer common core ingredients.

%s

Input:
%s

Output (just the list, no extra words):`, extractionExamples, text)
}
