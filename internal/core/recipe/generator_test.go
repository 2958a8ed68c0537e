package recipe

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"health-recipe-modifier/internal/core/ai/cache"
	"health-recipe-modifier/internal/core/condition"
	"health-recipe-modifier/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	mu        sync.Mutex
	available bool
	text      string
	err       error
	calls     int
	prompts   []string
}

func (s *stubGenerator) Available() bool { return s.available }

func (s *stubGenerator) Complete(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.text, s.err
}

func (s *stubGenerator) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type failingCache struct {
	findErr   error
	upsertErr error
	upserts   int
}

func (f *failingCache) Find(context.Context, string, string) (string, error) {
	return "", f.findErr
}

func (f *failingCache) Upsert(context.Context, string, string, string, time.Time) error {
	f.upserts++
	return f.upsertErr
}

type sourceCounter struct {
	mu      sync.Mutex
	sources map[string]int
	hits    int
	misses  int
}

func newSourceCounter() *sourceCounter {
	return &sourceCounter{sources: map[string]int{}}
}

func (c *sourceCounter) RecipeSource(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[source]++
}

func (c *sourceCounter) CacheHit(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits++
}

func (c *sourceCounter) CacheMiss(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
}

func diabetesRequest() GenerateRequest {
	return GenerateRequest{
		Original:    []string{"sugar", "flour", "butter", "banana"},
		Substituted: []string{"stevia", "almond flour", "butter", "banana"},
		Harmful:     []string{"sugar", "flour"},
		Condition:   condition.Diabetes,
		RecipeName:  "banana bread",
	}
}

func TestGenerator_CacheRoundTrip(t *testing.T) {
	ai := &stubGenerator{available: true, text: "**Health Benefits**\nGood for you."}
	counter := newSourceCounter()
	g := NewGenerator(cache.NewMemoryStore(10), ai, counter)
	ctx := context.Background()

	first, source := g.Generate(ctx, diabetesRequest())
	require.Equal(t, SourceGenerated, source)

	second, source := g.Generate(ctx, diabetesRequest())
	assert.Equal(t, SourceCache, source)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, ai.Calls())
	assert.Equal(t, 1, counter.hits)
	assert.Equal(t, 1, counter.misses)
}

func TestGenerator_CacheKeyIgnoresOrderDuplicatesAndName(t *testing.T) {
	ai := &stubGenerator{available: true, text: "recipe"}
	g := NewGenerator(cache.NewMemoryStore(10), ai, nil)
	ctx := context.Background()

	_, _ = g.Generate(ctx, diabetesRequest())

	reordered := diabetesRequest()
	reordered.Substituted = []string{"Banana", "butter", " almond flour", "stevia", "banana"}
	reordered.RecipeName = "something else"
	_, source := g.Generate(ctx, reordered)

	assert.Equal(t, SourceCache, source)
	assert.Equal(t, 1, ai.Calls())
}

func TestGenerator_CacheIsPerCondition(t *testing.T) {
	ai := &stubGenerator{available: true, text: "recipe"}
	g := NewGenerator(cache.NewMemoryStore(10), ai, nil)
	ctx := context.Background()

	_, _ = g.Generate(ctx, diabetesRequest())
	other := diabetesRequest()
	other.Condition = condition.Hypertension
	_, source := g.Generate(ctx, other)

	assert.Equal(t, SourceGenerated, source)
	assert.Equal(t, 2, ai.Calls())
}

func TestGenerator_PromptCarriesContext(t *testing.T) {
	ai := &stubGenerator{available: true, text: "recipe"}
	g := NewGenerator(nil, ai, nil)

	_, _ = g.Generate(context.Background(), diabetesRequest())

	require.Len(t, ai.prompts, 1)
	prompt := ai.prompts[0]
	assert.Contains(t, prompt, "Medical Condition: Diabetes")
	assert.Contains(t, prompt, "Original Ingredients: sugar, flour, butter, banana")
	assert.Contains(t, prompt, "Safe Ingredients: stevia, almond flour, butter, banana")
	assert.Contains(t, prompt, "Harmful ingredients replaced: sugar, flour")
	assert.Contains(t, prompt, "Dish: banana bread")
	for _, section := range []string{"**Health Benefits**", "**Ingredients**", "**Instructions**", "**Cooking Tips**", "**Serving Suggestions**"} {
		assert.Contains(t, prompt, section)
	}
}

func TestGenerator_FallbackReferencesEveryIngredient(t *testing.T) {
	tests := []struct {
		name string
		ai   TextGenerator
	}{
		{"no service", nil},
		{"unavailable", &stubGenerator{available: false}},
		{"error", &stubGenerator{available: true, err: errors.New("boom")}},
		{"lookup unavailable", &stubGenerator{available: true, err: common.ErrLookupUnavailable}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := cache.NewMemoryStore(10)
			counter := newSourceCounter()
			g := NewGenerator(store, tt.ai, counter)
			req := diabetesRequest()

			text, source := g.Generate(context.Background(), req)

			assert.Equal(t, SourceFallback, source)
			assert.NotEmpty(t, text)
			for _, ing := range req.Substituted {
				assert.Contains(t, text, ing)
			}
			assert.Equal(t, 1, counter.sources[string(SourceFallback)])

			_, err := store.Find(context.Background(), req.Condition.Tag(), cache.Key(req.Substituted))
			assert.ErrorIs(t, err, cache.ErrMiss, "fallback text is not cached")
		})
	}
}

func TestGenerator_FallbackCallsServiceOnce(t *testing.T) {
	ai := &stubGenerator{available: true, err: errors.New("timeout")}
	g := NewGenerator(nil, ai, nil)

	_, source := g.Generate(context.Background(), diabetesRequest())

	assert.Equal(t, SourceFallback, source)
	assert.Equal(t, 1, ai.Calls())
}

func TestGenerator_CacheFailuresAreBestEffort(t *testing.T) {
	store := &failingCache{
		findErr:   common.ErrLookupUnavailable,
		upsertErr: errors.New("write failed"),
	}
	ai := &stubGenerator{available: true, text: "fresh recipe"}
	g := NewGenerator(store, ai, nil)

	text, source := g.Generate(context.Background(), diabetesRequest())

	assert.Equal(t, SourceGenerated, source)
	assert.Equal(t, "fresh recipe", text)
	assert.Equal(t, 1, store.upserts)
}

func TestFallbackRecipe_Sections(t *testing.T) {
	text := FallbackRecipe([]string{"stevia", "oat milk"})

	assert.True(t, strings.HasPrefix(text, "**Health Benefits**"))
	assert.Contains(t, text, "- stevia\n- oat milk")
	assert.Contains(t, text, "**Serving Suggestions**")
}
