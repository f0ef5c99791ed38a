package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealtrack-v2/backend/config"
)

func newTestGeminiService(t *testing.T, apiURL string) *GeminiService {
	t.Helper()
	svc, err := NewGeminiService(&config.Config{
		GeminiAPIKey: "test-api-key",
		GeminiAPIURL: apiURL,
		GeminiModel:  "gemini-1.5-flash",
	}, nil)
	require.NoError(t, err)
	return svc
}

func geminiTextResponse(text string) string {
	payload := map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]string{{"text": text}},
				},
			},
		},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func TestNewGeminiService(t *testing.T) {
	t.Run("should create service with API key", func(t *testing.T) {
		svc, err := NewGeminiService(&config.Config{GeminiAPIKey: "test-api-key"}, nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
		assert.Equal(t, defaultGeminiAPIURL, svc.apiURL)
		assert.Equal(t, "gemini-1.5-flash", svc.model)
	})

	t.Run("should fail without API key", func(t *testing.T) {
		svc, err := NewGeminiService(&config.Config{}, nil)
		assert.Error(t, err)
		assert.Nil(t, svc)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})
}

func TestGeminiService_AnalyzeMealImage(t *testing.T) {
	image := []byte("fake-jpeg-bytes")

	t.Run("parses fenced response", func(t *testing.T) {
		var gotBody string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			text := "```json\n" +
				`{"foods":["カレーライス"],"meal_type":"昼食","calories":800,"protein":20,"carbs":110,"fat":25,"evaluation":"炭水化物多め"}` +
				"\n```"
			_, _ = w.Write([]byte(geminiTextResponse(text)))
		}))
		defer ts.Close()

		svc := newTestGeminiService(t, ts.URL)
		analysis, err := svc.AnalyzeMealImage(context.Background(), image, "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, "昼食", analysis.MealType)
		assert.Equal(t, float64(800), analysis.Calories)
		assert.Equal(t, []string{"カレーライス"}, analysis.Foods)

		// The request carries the prompt and the inline image
		assert.Contains(t, gotBody, "JSON形式")
		assert.Contains(t, gotBody, base64.StdEncoding.EncodeToString(image))
		assert.Contains(t, gotBody, "image/jpeg")
	})

	t.Run("fails when response has no JSON object", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(geminiTextResponse("すみません、この画像からは食事を特定できませんでした。")))
		}))
		defer ts.Close()

		svc := newTestGeminiService(t, ts.URL)
		analysis, err := svc.AnalyzeMealImage(context.Background(), image, "image/jpeg")
		assert.ErrorIs(t, err, ErrNoJSONObject)
		assert.Nil(t, analysis)
	})

	t.Run("fails on API error status", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer ts.Close()

		svc := newTestGeminiService(t, ts.URL)
		_, err := svc.AnalyzeMealImage(context.Background(), image, "image/jpeg")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}

func TestGeminiService_EvaluateMeal(t *testing.T) {
	t.Run("returns trimmed model comment", func(t *testing.T) {
		var gotBody string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			_, _ = w.Write([]byte(geminiTextResponse("  いいペースです！💪  ")))
		}))
		defer ts.Close()

		svc := newTestGeminiService(t, ts.URL)
		comment := svc.EvaluateMeal(context.Background(), 450, 25, 70, "bulk")
		assert.Equal(t, "いいペースです！💪", comment)

		// Target protein is 2x body weight
		assert.Contains(t, gotBody, "140g")
		assert.Contains(t, gotBody, "70kg")
	})

	t.Run("falls back on API error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal error", http.StatusInternalServerError)
		}))
		defer ts.Close()

		svc := newTestGeminiService(t, ts.URL)
		comment := svc.EvaluateMeal(context.Background(), 450, 25, 70, "cut")
		assert.Equal(t, EvaluationFallback, comment)
	})

	t.Run("falls back on unreachable endpoint", func(t *testing.T) {
		svc := newTestGeminiService(t, "http://127.0.0.1:1")
		comment := svc.EvaluateMeal(context.Background(), 450, 25, 70, "maintain")
		assert.Equal(t, EvaluationFallback, comment)
	})

	t.Run("falls back on empty comment", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(geminiTextResponse("   ")))
		}))
		defer ts.Close()

		svc := newTestGeminiService(t, ts.URL)
		comment := svc.EvaluateMeal(context.Background(), 450, 25, 70, "maintain")
		assert.Equal(t, EvaluationFallback, comment)
	})
}

func TestTargetProtein(t *testing.T) {
	tests := []struct {
		weight   float64
		expected float64
	}{
		{weight: 0, expected: 0},
		{weight: 55.5, expected: 111},
		{weight: 70, expected: 140},
		{weight: 102.3, expected: 204.6},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TargetProtein(tt.weight))
	}
}

func TestAnalyzePrompt(t *testing.T) {
	// The prompt must pin the response contract: JSON only, no units,
	// every field of the canonical shape.
	for _, field := range []string{"foods", "meal_type", "calories", "protein", "carbs", "fat", "evaluation"} {
		assert.True(t, strings.Contains(analyzePrompt, field), "prompt missing field %s", field)
	}
	assert.Contains(t, analyzePrompt, "JSON形式のみ")
	assert.Contains(t, analyzePrompt, "単位は含めないでください")
}
