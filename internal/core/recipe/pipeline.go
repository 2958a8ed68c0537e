package recipe

import (
	"context"
	"time"

	"health-recipe-modifier/internal/core/ai/queue"
	"health-recipe-modifier/internal/core/condition"
	"health-recipe-modifier/internal/core/history"
	"health-recipe-modifier/internal/core/nutrition"
	"health-recipe-modifier/internal/core/profile"
	"health-recipe-modifier/internal/core/rules"
	"health-recipe-modifier/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// attachTimeout 背景補上營養資料的工作逾時
const attachTimeout = 30 * time.Second

// Enqueuer 背景工作隊列
type Enqueuer interface {
	Enqueue(job *queue.Job) error
}

// PipelineOptions 食材檢查流程設定
type PipelineOptions struct {
	DefaultServings int
	AsyncNutrition  bool
}

// CheckRequest 食材檢查輸入
type CheckRequest struct {
	UserID      string
	Ingredients string
	Condition   string
	RecipeName  string
	Servings    int
	Profile     *profile.Profile
}

// CheckResult 食材檢查結果
type CheckResult struct {
	EntryID           string                       `json:"entry_id,omitempty"`
	Condition         string                       `json:"condition"`
	Original          []string                     `json:"original_ingredients"`
	Harmful           []string                     `json:"harmful"`
	Safe              []string                     `json:"safe"`
	Replacements      map[string]string            `json:"replacements"`
	Recipe            string                       `json:"recipe"`
	RecipeSource      Source                       `json:"recipe_source"`
	Nutrition         *nutrition.Summary           `json:"nutrition,omitempty"`
	ConditionWarnings []nutrition.ConditionWarning `json:"condition_warnings"`
	ProfileWarnings   []profile.Warning            `json:"profile_warnings"`
}

// Pipeline 串接比對、食譜生成、營養彙總、個人化警示與紀錄
type Pipeline struct {
	matcher    *rules.Matcher
	generator  *Generator
	aggregator *nutrition.Aggregator
	profiles   profile.Store
	history    history.Store
	queue      Enqueuer
	opts       PipelineOptions
}

// NewPipeline 創建食材檢查流程。profiles、historyStore、q 可為 nil。
func NewPipeline(
	matcher *rules.Matcher,
	generator *Generator,
	aggregator *nutrition.Aggregator,
	profiles profile.Store,
	historyStore history.Store,
	q Enqueuer,
	opts PipelineOptions,
) *Pipeline {
	if opts.DefaultServings <= 0 {
		opts.DefaultServings = nutrition.DefaultServings
	}
	return &Pipeline{
		matcher:    matcher,
		generator:  generator,
		aggregator: aggregator,
		profiles:   profiles,
		history:    historyStore,
		queue:      q,
		opts:       opts,
	}
}

// Check 執行完整的食材檢查。只有輸入驗證錯誤會回傳 error，
// 其餘協作者失敗皆降級處理。
func (p *Pipeline) Check(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	if err := rules.CheckInputLength(req.Ingredients); err != nil {
		return nil, err
	}
	tokens := common.SplitList(req.Ingredients)
	if len(tokens) == 0 {
		return nil, common.NewValidationError("at least one ingredient is required")
	}

	owner := history.Owner(req.UserID)
	stored := p.storedProfile(ctx, owner)

	cond := condition.Parse(req.Condition)
	if cond.IsZero() {
		cond = stored.Condition()
	}
	if cond.IsZero() {
		return nil, common.NewValidationError("condition is required")
	}

	set, err := p.matcher.Resolve(ctx, tokens, cond)
	if err != nil {
		return nil, err
	}

	servings := req.Servings
	if servings <= 0 {
		servings = p.opts.DefaultServings
	}

	result := &CheckResult{
		Condition:    cond.Tag(),
		Original:     set.Original,
		Harmful:      set.Harmful,
		Safe:         set.Substituted,
		Replacements: set.Replacements,
	}

	var g errgroup.Group
	g.Go(func() error {
		result.Recipe, result.RecipeSource = p.generator.Generate(ctx, GenerateRequest{
			Original:    set.Original,
			Substituted: set.Substituted,
			Harmful:     set.Harmful,
			Condition:   cond,
			RecipeName:  req.RecipeName,
		})
		return nil
	})
	if !p.opts.AsyncNutrition {
		g.Go(func() error {
			result.Nutrition = p.aggregator.Calculate(ctx, set.Substituted, servings)
			return nil
		})
	}
	_ = g.Wait()

	result.ConditionWarnings = []nutrition.ConditionWarning{}
	if result.Nutrition != nil {
		result.ConditionWarnings = nutrition.ConditionWarnings(result.Nutrition, cond)
	}

	active := req.Profile
	if active == nil {
		active = stored
	}
	result.ProfileWarnings = profile.Check(set.Substituted, active)

	result.EntryID = p.record(ctx, owner, cond, req.RecipeName, set, result)
	if p.opts.AsyncNutrition && result.EntryID != "" {
		p.attachLater(result.EntryID, owner, set.Substituted, servings)
	}
	return result, nil
}

// storedProfile 讀取已儲存的設定，失敗時視為沒有設定
func (p *Pipeline) storedProfile(ctx context.Context, owner string) *profile.Profile {
	if p.profiles == nil {
		return nil
	}
	stored, err := p.profiles.Get(ctx, owner)
	if err != nil {
		common.LogWarn("讀取使用者設定失敗", zap.String("user_id", owner), zap.Error(err))
		return nil
	}
	return stored
}

// record 寫入紀錄，失敗只記錄並回傳空 ID
func (p *Pipeline) record(ctx context.Context, owner string, cond condition.Condition, recipeName string, set *rules.ResolvedIngredientSet, result *CheckResult) string {
	if p.history == nil {
		return ""
	}
	entry := &history.FoodEntry{
		ID:               common.GenerateUUID(),
		UserID:           owner,
		Condition:        cond.Tag(),
		RecipeName:       recipeName,
		InputIngredients: set.Original,
		Harmful:          set.Harmful,
		Safe:             set.Substituted,
		Recipe:           result.Recipe,
		CreatedAt:        time.Now(),
		Nutrition:        result.Nutrition,
	}
	id, err := p.history.Insert(ctx, entry)
	if err != nil {
		common.LogWarn("寫入紀錄失敗", zap.String("user_id", owner), zap.Error(err))
		return ""
	}
	return id
}

// attachLater 交由背景工作計算營養並補上紀錄
func (p *Pipeline) attachLater(entryID, owner string, ingredients []string, servings int) {
	if p.queue == nil {
		return
	}
	err := p.queue.Enqueue(&queue.Job{
		Name:    "nutrition:" + entryID,
		Timeout: attachTimeout,
		Run: func(ctx context.Context) error {
			summary := p.aggregator.Calculate(ctx, ingredients, servings)
			return p.history.UpdateFields(ctx, entryID, owner, history.Fields{Nutrition: summary})
		},
	})
	if err != nil {
		common.LogWarn("營養資料背景工作排入失敗", zap.String("entry_id", entryID), zap.Error(err))
	}
}
