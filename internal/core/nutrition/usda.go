package nutrition

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"health-recipe-modifier/internal/pkg/common"
)

// USDA FoodData Central 營養素代碼
var usdaNutrientIDs = map[int]Nutrient{
	1008: Calories,
	1003: Protein,
	1004: TotalFat,
	1258: SaturatedFat,
	1005: Carbohydrates,
	1079: Fiber,
	2000: Sugar,
	1093: Sodium,
	1092: Potassium,
	1087: Calcium,
	1089: Iron,
	1106: VitaminA,
	1162: VitaminC,
	1114: VitaminD,
	1178: VitaminB12,
	1253: Cholesterol,
}

// Lookup 外部營養查詢。查無資料回傳 (nil, nil)。
type Lookup interface {
	Lookup(ctx context.Context, ingredient string) (*Fact, error)
}

// USDAClient USDA FoodData Central 搜尋客戶端
type USDAClient struct {
	client *resty.Client
	apiKey string
}

type usdaSearchResponse struct {
	Foods []struct {
		FdcID         int    `json:"fdcId"`
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientID int     `json:"nutrientId"`
			Value      float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// NewUSDAClient 創建 USDA 客戶端；apiKey 為空時回傳 nil
func NewUSDAClient(baseURL, apiKey string, timeout time.Duration) *USDAClient {
	if apiKey == "" {
		return nil
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &USDAClient{client: client, apiKey: apiKey}
}

// Lookup 以名稱搜尋單一最佳結果
func (c *USDAClient) Lookup(ctx context.Context, ingredient string) (*Fact, error) {
	var result usdaSearchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(map[string][]string{
			"api_key":  {c.apiKey},
			"query":    {ingredient},
			"pageSize": {"1"},
			"dataType": {"Foundation", "SR Legacy", "Survey (FNDDS)"},
		}).
		SetResult(&result).
		Get("/foods/search")
	if err != nil {
		return nil, fmt.Errorf("usda search %q: %v: %w", ingredient, err, common.ErrLookupUnavailable)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("usda search %q returned %d: %w", ingredient, resp.StatusCode(), common.ErrLookupUnavailable)
	}
	if len(result.Foods) == 0 {
		return nil, nil
	}

	food := result.Foods[0]
	fact := &Fact{
		Ingredient:  ingredient,
		Nutrients:   NewValues(),
		Found:       true,
		Description: food.Description,
	}
	if fact.Description == "" {
		fact.Description = ingredient
	}
	for _, fn := range food.FoodNutrients {
		if n, ok := usdaNutrientIDs[fn.NutrientID]; ok {
			fact.Nutrients[n] = round(fn.Value, 2)
		}
	}
	return fact, nil
}
