package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"heart_disease", "Heart Disease"},
		{"DIABETES", "Diabetes"},
		{"épilepsie", "Épilepsie"},
		{"ñame_allergy", "Ñame Allergy"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleCase(tt.in))
		})
	}
}

func TestSortedUnique(t *testing.T) {
	assert.Equal(t, []string{"flour", "sugar"}, SortedUnique([]string{" Sugar", "flour", "SUGAR", ""}))
}
