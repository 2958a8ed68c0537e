package recipe

import (
	"context"
	"strings"

	"health-recipe-modifier/internal/pkg/common"

	"go.uber.org/zap"
)

var descriptorWords = map[string]struct{}{
	"chopped": {}, "minced": {}, "sliced": {}, "diced": {}, "fresh": {}, "ground": {},
	"powder": {}, "optional": {}, "ripe": {}, "large": {}, "small": {}, "medium": {},
}

var unitWords = map[string]struct{}{
	"cup": {}, "cups": {}, "tsp": {}, "tbsp": {}, "teaspoon": {}, "teaspoons": {},
	"tablespoon": {}, "tablespoons": {}, "g": {}, "kg": {}, "ml": {}, "l": {},
	"ounce": {}, "ounces": {}, "oz": {},
}

// Extractor 由食譜名稱或自由文字擷取食材清單
type Extractor struct {
	ai TextGenerator
}

// NewExtractor 創建食材擷取器，ai 可為 nil
func NewExtractor(ai TextGenerator) *Extractor {
	return &Extractor{ai: ai}
}

// Extract 回傳小寫、去重且保留順序的食材名稱。
// 文字生成不可用或失敗時退回逗號切分，永不回傳錯誤。
func (e *Extractor) Extract(ctx context.Context, text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}
	if e.ai == nil || !e.ai.Available() {
		return splitFallback(text)
	}

	content, err := e.ai.Complete(ctx, buildExtractionPrompt(text))
	if err != nil {
		common.LogWarn("食材擷取失敗，改用逗號切分", zap.Error(err))
		return splitFallback(text)
	}

	items := ParseIngredientList(content)
	if len(items) == 0 {
		return splitFallback(text)
	}
	return items
}

// ParseIngredientList 解析模型輸出：支援 JSON 陣列、條列或逗號分隔，
// 去除括號說明、形容詞與開頭的數量單位
func ParseIngredientList(content string) []string {
	content = strings.ToLower(strings.TrimSpace(content))

	var raw []string
	if arr, ok := common.ExtractJSONArray(content); ok && common.ParseJSON(arr, &raw) == nil {
		return cleanItems(raw)
	}

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "-*• ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return cleanItems(common.SplitList(strings.Join(lines, ", ")))
}

func cleanItems(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		name := cleanItem(item)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func cleanItem(item string) string {
	base, _, _ := strings.Cut(strings.ToLower(item), "(")
	base = strings.TrimSuffix(strings.TrimSpace(base), ".")
	base = strings.ReplaceAll(base, "to taste", "")

	words := strings.Fields(base)
	kept := words[:0]
	for _, w := range words {
		if _, ok := descriptorWords[w]; !ok {
			kept = append(kept, w)
		}
	}

	for len(kept) > 0 && (isQuantity(kept[0]) || isUnit(kept[0])) {
		kept = kept[1:]
	}
	return strings.Join(kept, " ")
}

func isQuantity(w string) bool {
	w = strings.NewReplacer("/", "", "-", "", ".", "").Replace(w)
	if w == "" {
		return false
	}
	for _, r := range w {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isUnit(w string) bool {
	_, ok := unitWords[w]
	return ok
}

func splitFallback(text string) []string {
	var out []string
	for _, item := range common.SplitList(text) {
		out = append(out, strings.ToLower(item))
	}
	if out == nil {
		return []string{}
	}
	return out
}
