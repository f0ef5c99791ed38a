package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain object",
			input:    `{"calories":450}`,
			expected: `{"calories":450}`,
		},
		{
			name:     "markdown fenced",
			input:    "```json\n{\"calories\":450}\n```",
			expected: "{\"calories\":450}",
		},
		{
			name:     "surrounding prose",
			input:    "Here is the analysis you asked for:\n{\"calories\":450}\nHope that helps!",
			expected: `{"calories":450}`,
		},
		{
			name:     "nested braces",
			input:    `prefix {"a":{"b":1},"c":2} suffix`,
			expected: `{"a":{"b":1},"c":2}`,
		},
		{
			name:     "braces inside strings",
			input:    `{"evaluation":"bra{ce} rich \" text","calories":1}`,
			expected: `{"evaluation":"bra{ce} rich \" text","calories":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractJSONObject_Failures(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "prose only", input: "I could not identify any food in this image."},
		{name: "unbalanced object", input: `{"calories":450`},
		{name: "fences only", input: "```json\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractJSONObject(tt.input)
			assert.ErrorIs(t, err, ErrNoJSONObject)
		})
	}
}

func TestParseMealAnalysis(t *testing.T) {
	t.Run("recovers all fields", func(t *testing.T) {
		text := "```json\n" +
			`{"foods":["ご飯","鶏肉"],"meal_type":"朝食","calories":450,"protein":25,"carbs":60,"fat":12,"evaluation":"良いバランスです"}` +
			"\n```"

		analysis, err := ParseMealAnalysis(text)
		require.NoError(t, err)
		assert.Equal(t, []string{"ご飯", "鶏肉"}, analysis.Foods)
		assert.Equal(t, "朝食", analysis.MealType)
		assert.Equal(t, float64(450), analysis.Calories)
		assert.Equal(t, float64(25), analysis.Protein)
		assert.Equal(t, float64(60), analysis.Carbs)
		assert.Equal(t, float64(12), analysis.Fat)
		assert.Equal(t, "良いバランスです", analysis.Evaluation)
	})

	t.Run("optional fields may be absent", func(t *testing.T) {
		analysis, err := ParseMealAnalysis(`{"calories":300,"protein":10,"carbs":40,"fat":8}`)
		require.NoError(t, err)
		assert.Empty(t, analysis.MealType)
		assert.Empty(t, analysis.Evaluation)
		assert.Equal(t, float64(300), analysis.Calories)
	})

	t.Run("fails deterministically without JSON", func(t *testing.T) {
		_, err := ParseMealAnalysis("no structured data here")
		assert.ErrorIs(t, err, ErrNoJSONObject)
	})

	t.Run("fails on malformed object", func(t *testing.T) {
		_, err := ParseMealAnalysis(`{"calories":"lots and lots"} {`)
		assert.ErrorIs(t, err, ErrNoJSONObject)
	})
}
