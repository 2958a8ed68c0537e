package rules

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-recipe-modifier/internal/core/condition"
	"health-recipe-modifier/internal/pkg/common"
)

type fakeStore struct {
	mu    sync.Mutex
	rules map[string]Rule
	calls int
	err   error
}

func newFakeStore(rules ...Rule) *fakeStore {
	s := &fakeStore{rules: map[string]Rule{}}
	for _, r := range rules {
		s.rules[r.Ingredient] = r
	}
	return s
}

func (s *fakeStore) FindRule(_ context.Context, name string) (*Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if r, ok := s.rules[name]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *fakeStore) FindRules(ctx context.Context, names []string) ([]Rule, error) {
	var out []Rule
	for _, n := range names {
		r, err := s.FindRule(ctx, n)
		if err != nil {
			return nil, err
		}
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeStore) UpsertIfAbsent(_ context.Context, rule Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[rule.Ingredient]; !ok {
		s.rules[rule.Ingredient] = rule
	}
	return nil
}

func (s *fakeStore) All(_ context.Context) ([]Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]Rule, 0, len(s.rules))
	for _, r := range s.rules {
		out = append(out, r)
	}
	return out, nil
}

func newBaselineMatcher() (*Matcher, *fakeStore) {
	store := newFakeStore(Baseline()...)
	return NewMatcher(NewCache(store, DefaultTTL, nil)), store
}

func TestResolve_DiabetesScenario(t *testing.T) {
	m, _ := newBaselineMatcher()

	set, err := m.ResolveText(context.Background(), "sugar, flour, butter, banana", condition.Diabetes)
	require.NoError(t, err)

	assert.Equal(t, []string{"sugar", "flour"}, set.Harmful)
	assert.Equal(t, []string{"stevia", "almond flour", "butter", "banana"}, set.Substituted)
	assert.Equal(t, map[string]string{"sugar": "stevia", "flour": "almond flour"}, set.Replacements)
}

func TestResolve_PluralFallbackOnlyTowardsSingularKey(t *testing.T) {
	m, _ := newBaselineMatcher()
	ctx := context.Background()

	// 規則鍵為 "eggs"，完整名稱直接命中
	set, err := m.ResolveText(ctx, "eggs", condition.EggAllergy)
	require.NoError(t, err)
	assert.Equal(t, []string{"eggs"}, set.Harmful)
	assert.Equal(t, []string{"flaxseed meal"}, set.Substituted)

	// 單數輸入不會反向擴充為複數鍵
	set, err = m.ResolveText(ctx, "egg", condition.EggAllergy)
	require.NoError(t, err)
	assert.Empty(t, set.Harmful)
	assert.Equal(t, []string{"egg"}, set.Substituted)

	// 複數輸入在單數鍵存在時退回單數
	set, err = m.ResolveText(ctx, "Sugars", condition.Diabetes)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sugars"}, set.Harmful)
	assert.Equal(t, []string{"stevia"}, set.Substituted)
}

func TestResolve_EmptyAndOversizedInput(t *testing.T) {
	m, store := newBaselineMatcher()
	ctx := context.Background()

	set, err := m.ResolveText(ctx, " , ,  ", condition.Diabetes)
	require.NoError(t, err)
	assert.True(t, set.Empty())
	assert.Empty(t, set.Harmful)
	assert.Empty(t, set.Substituted)
	assert.Equal(t, 0, store.calls, "empty input must not touch the rule store")

	_, err = m.ResolveText(ctx, strings.Repeat("a", MaxInputLength+1), condition.Diabetes)
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
	assert.Equal(t, 0, store.calls)
}

func TestCheckInputLength_CountsCharacters(t *testing.T) {
	m, _ := newBaselineMatcher()

	// 1500 個 "é" 佔 3000 位元組，仍在字元上限內
	accented := strings.Repeat("é", 1500)
	require.Greater(t, len(accented), MaxInputLength)
	assert.NoError(t, CheckInputLength(accented))
	set, err := m.ResolveText(context.Background(), accented, condition.Diabetes)
	require.NoError(t, err)
	assert.Equal(t, []string{accented}, set.Substituted)

	assert.NoError(t, CheckInputLength(strings.Repeat("é", MaxInputLength)))

	err = CheckInputLength(strings.Repeat("é", MaxInputLength+1))
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
	assert.Contains(t, err.Error(), "exceeds 2000 characters")
}

func TestResolve_ReplacementsKeyedByHarmfulSpelling(t *testing.T) {
	m, _ := newBaselineMatcher()

	set, err := m.ResolveText(context.Background(), "Sugar, Flour, banana", condition.Diabetes)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sugar", "Flour"}, set.Harmful)
	assert.Equal(t, map[string]string{"Sugar": "stevia", "Flour": "almond flour"}, set.Replacements)
	for _, h := range set.Harmful {
		assert.Contains(t, set.Replacements, h)
	}
}

func TestResolve_NoMatchingRulesPassesThrough(t *testing.T) {
	m, _ := newBaselineMatcher()

	set, err := m.ResolveText(context.Background(), "Banana, spinach ,oats", condition.Hypertension)
	require.NoError(t, err)
	assert.Empty(t, set.Harmful)
	assert.Equal(t, []string{"Banana", "spinach", "oats"}, set.Substituted)
	assert.Equal(t, []string{"banana", "spinach", "oats"}, set.Normalized)
}

func TestResolve_Invariants(t *testing.T) {
	m, _ := newBaselineMatcher()
	ctx := context.Background()
	inputs := []string{
		"sugar, flour, butter, banana",
		"Salt, BUTTER, eggs, milk, peanuts",
		"corn, rice, soy, wheat, flour",
		"sugar, sugar, stevia",
	}
	conds := []condition.Condition{condition.Diabetes, condition.HeartDisease, condition.Celiac, condition.CornAllergy, condition.Parse("unknown")}

	for _, in := range inputs {
		for _, c := range conds {
			t.Run(fmt.Sprintf("%s/%s", in, c), func(t *testing.T) {
				first, err := m.ResolveText(ctx, in, c)
				require.NoError(t, err)
				second, err := m.ResolveText(ctx, in, c)
				require.NoError(t, err)

				assert.Equal(t, first, second, "resolution must be idempotent")
				assert.Len(t, first.Substituted, len(first.Original))

				harmful := map[string]bool{}
				for _, h := range first.Harmful {
					harmful[h] = true
					assert.Contains(t, first.Replacements, h)
				}
				assert.Len(t, first.Replacements, len(harmful))
				for i, orig := range first.Original {
					if harmful[orig] {
						assert.Equal(t, first.Replacements[orig], first.Substituted[i])
						assert.NotEqual(t, orig, first.Substituted[i])
					} else {
						assert.Equal(t, orig, first.Substituted[i])
					}
				}
			})
		}
	}
}

func TestCache_TTL(t *testing.T) {
	store := newFakeStore(Baseline()...)
	cache := NewCache(store, time.Minute, nil)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	snap := cache.Snapshot(ctx)
	assert.Len(t, snap, len(Baseline()))
	assert.Equal(t, 1, store.calls)

	now = now.Add(30 * time.Second)
	cache.Snapshot(ctx)
	assert.Equal(t, 1, store.calls, "fresh snapshot must be reused")

	require.NoError(t, store.UpsertIfAbsent(ctx, Rule{Ingredient: "honey", HarmfulFor: []string{"diabetes"}, Alternative: "monk fruit"}))
	now = now.Add(31 * time.Second)
	snap = cache.Snapshot(ctx)
	assert.Equal(t, 2, store.calls)
	assert.Contains(t, snap, "honey")
}

func TestCache_DegradesOnStoreFailure(t *testing.T) {
	store := newFakeStore(Baseline()...)
	store.err = fmt.Errorf("find rules: %w", common.ErrLookupUnavailable)
	cache := NewCache(store, time.Minute, nil)

	snap := cache.Snapshot(context.Background())
	assert.NotNil(t, snap)
	assert.Empty(t, snap)

	// 恢復後重建，之後失敗則沿用舊快照
	store.err = nil
	now := time.Now()
	cache.now = func() time.Time { return now }
	cache.Invalidate()
	assert.Len(t, cache.Snapshot(context.Background()), len(Baseline()))

	store.err = errors.New("connection refused")
	now = now.Add(2 * time.Minute)
	assert.Len(t, cache.Snapshot(context.Background()), len(Baseline()))
}

func TestCache_NormalizesStoredNames(t *testing.T) {
	store := newFakeStore(Rule{Ingredient: "  Honey ", HarmfulFor: []string{"Diabetes"}, Alternative: "monk fruit"})
	m := NewMatcher(NewCache(store, time.Minute, nil))

	set, err := m.ResolveText(context.Background(), "honey", condition.Diabetes)
	require.NoError(t, err)
	assert.Equal(t, []string{"monk fruit"}, set.Substituted)
}
