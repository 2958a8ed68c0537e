package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIngredientList(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "comma separated",
			content: "Flour, banana, sugar, butter, eggs",
			want:    []string{"flour", "banana", "sugar", "butter", "eggs"},
		},
		{
			name:    "bulleted lines",
			content: "- 2 cups flour\n* 3 bananas (ripe)\n- 1/2 cup sugar\n",
			want:    []string{"flour", "bananas", "sugar"},
		},
		{
			name:    "descriptors and units",
			content: "1 tbsp minced garlic, fresh basil, salt to taste, 200 g ground beef",
			want:    []string{"garlic", "basil", "salt", "beef"},
		},
		{
			name:    "json array",
			content: "Here you go:\n```json\n[\"Wheat Flour\", \"jaggery\", \"jaggery\"]\n```",
			want:    []string{"wheat flour", "jaggery"},
		},
		{
			name:    "duplicates collapse in order",
			content: "salt, pepper, salt, Pepper",
			want:    []string{"salt", "pepper"},
		},
		{
			name:    "only quantities",
			content: "2, 3 cups",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIngredientList(tt.content))
		})
	}
}

func TestExtractor_UsesGenerator(t *testing.T) {
	ai := &stubGenerator{available: true, text: "wheat flour, chana dal, jaggery, ghee"}
	e := NewExtractor(ai)

	got := e.Extract(context.Background(), "puran poli")

	assert.Equal(t, []string{"wheat flour", "chana dal", "jaggery", "ghee"}, got)
	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], "Input:\npuran poli")
	assert.Contains(t, ai.prompts[0], "Example 3")
}

func TestExtractor_FallsBackToCommaSplit(t *testing.T) {
	tests := []struct {
		name string
		ai   TextGenerator
	}{
		{"no service", nil},
		{"unavailable", &stubGenerator{}},
		{"error", &stubGenerator{available: true, err: errors.New("down")}},
		{"unusable output", &stubGenerator{available: true, text: "1, 2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewExtractor(tt.ai).Extract(context.Background(), "Sugar, Flour , ,Butter")
			assert.Equal(t, []string{"sugar", "flour", "butter"}, got)
		})
	}
}

func TestExtractor_EmptyText(t *testing.T) {
	ai := &stubGenerator{available: true, text: "x"}
	got := NewExtractor(ai).Extract(context.Background(), "   ")

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, ai.Calls())
}
