package recipe

import (
	"fmt"
	"strings"
)

// FallbackRecipe 文字生成不可用時的固定模板，列出所有替換後食材
func FallbackRecipe(substituted []string) string {
	return fmt.Sprintf(`**Health Benefits**
This recipe uses healthy, safe ingredients that are suitable for your dietary needs.

**Ingredients**
- %s

**Instructions**
1. Combine all ingredients in a mixing bowl
2. Mix well until thoroughly combined
3. Cook in a non-stick pan over medium heat
4. Cook until golden brown and fully cooked through

**Cooking Tips**
- Use a non-stick pan to reduce the need for additional oil
- Cook on medium heat to prevent burning
- Stir occasionally for even cooking

**Serving Suggestions**
Serve warm and enjoy! This dish is perfect for a healthy meal that fits your dietary requirements.`,
		strings.Join(substituted, "\n- "))
}
