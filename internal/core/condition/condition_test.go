package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw   string
		want  Condition
		known bool
	}{
		{raw: "diabetes", want: Diabetes, known: true},
		{raw: "  Heart Disease ", want: HeartDisease, known: true},
		{raw: "kidney-disease", want: KidneyDisease, known: true},
		{raw: "Gout", want: Condition{"gout"}, known: false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := Parse(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, got.Known())
			assert.Equal(t, !tt.known, got.Other())
		})
	}
	assert.True(t, Parse("   ").IsZero())
	assert.False(t, Parse("").Other())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Heart Disease", HeartDisease.DisplayName())
	assert.Equal(t, "Diabetes", Diabetes.DisplayName())
}

func TestParseDietType(t *testing.T) {
	assert.Equal(t, DietVegan, ParseDietType("Vegan"))
	assert.Equal(t, DietVegetarian, ParseDietType("lacto-ovo"))
	assert.Equal(t, DietKeto, ParseDietType("strict keto"))
	assert.Equal(t, DietOther, ParseDietType("paleo"))
	assert.Equal(t, DietNone, ParseDietType(""))
}

func TestParseFitnessGoal(t *testing.T) {
	assert.Equal(t, GoalWeightLoss, ParseFitnessGoal("Weight Loss"))
	assert.Equal(t, GoalMuscleGain, ParseFitnessGoal("muscle-gain"))
	assert.Equal(t, GoalMaintenance, ParseFitnessGoal("maintain"))
	assert.Equal(t, GoalOther, ParseFitnessGoal("marathon"))
}
