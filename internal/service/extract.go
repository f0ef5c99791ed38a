package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSONObject is returned when no structured data can be recovered from
// a model response.
var ErrNoJSONObject = errors.New("could not extract structured data from model response")

// MealAnalysis is the structured result of analyzing a meal photo.
type MealAnalysis struct {
	Foods      []string `json:"foods"`
	MealType   string   `json:"meal_type"`
	Calories   float64  `json:"calories"`
	Protein    float64  `json:"protein"`
	Carbs      float64  `json:"carbs"`
	Fat        float64  `json:"fat"`
	Evaluation string   `json:"evaluation"`
}

// ExtractJSONObject locates the first balanced top-level {...} span in a
// model response. The model is not guaranteed to return clean JSON: the
// object may be wrapped in prose or markdown code fences.
func ExtractJSONObject(text string) (string, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.IndexByte(cleaned, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		c := cleaned[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return cleaned[start : i+1], nil
			}
		}
	}

	return "", ErrNoJSONObject
}

// ParseMealAnalysis extracts and parses a MealAnalysis from raw model output.
// It never invents nutrition values: any parse failure is reported to the
// caller instead.
func ParseMealAnalysis(text string) (*MealAnalysis, error) {
	span, err := ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var analysis MealAnalysis
	if err := json.Unmarshal([]byte(span), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoJSONObject, err)
	}

	return &analysis, nil
}
