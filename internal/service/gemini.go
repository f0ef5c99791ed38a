package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/mealtrack-v2/backend/config"
)

const defaultGeminiAPIURL = "https://generativelanguage.googleapis.com/v1beta"

// EvaluationFallback is returned when the advisory comment cannot be
// generated. Evaluation is cosmetic and must never block saving a meal.
const EvaluationFallback = "食事を記録しました！継続して頑張りましょう💪"

const analyzePrompt = `この食事の画像を分析して、以下の情報をJSON形式のみで返してください。
余計な文字列（Markdownのコードブロックなど）は含めないでください。

{
  "foods": ["食品名1", "食品名2"],
  "meal_type": "朝食" | "昼食" | "夕食" | "間食" のいずれか,
  "calories": 推定カロリーの数値,
  "protein": 推定タンパク質のグラム数,
  "carbs": 推定炭水化物のグラム数,
  "fat": 推定脂質のグラム数,
  "evaluation": "この食事の評価と、筋トレをしている人に向けた短いアドバイス（日本語で100文字以内）"
}

数値のみを返し、単位は含めないでください。`

// GeminiService handles interactions with the Google Generative Language API
type GeminiService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	redis  *redis.Client
}

// NewGeminiService creates a new GeminiService instance
func NewGeminiService(cfg *config.Config, redisClient *redis.Client) (*GeminiService, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
	}

	apiURL := cfg.GeminiAPIURL
	if apiURL == "" {
		apiURL = defaultGeminiAPIURL
	}

	model := cfg.GeminiModel
	if model == "" {
		model = "gemini-1.5-flash"
	}

	return &GeminiService{
		apiKey: cfg.GeminiAPIKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		redis: redisClient,
	}, nil
}

// TargetProtein returns the daily protein target in grams for a body weight
// in kilograms. Fixed policy: 2g per kg per day.
func TargetProtein(weightKg float64) float64 {
	return weightKg * 2
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

// AnalyzeMealImage submits a meal photo to the model and parses the
// response into a MealAnalysis. The operation is stateless and makes
// exactly one outbound call.
func (s *GeminiService) AnalyzeMealImage(ctx context.Context, image []byte, mimeType string) (*MealAnalysis, error) {
	parts := []geminiPart{
		{Text: analyzePrompt},
		{InlineData: &geminiInlineData{
			MIMEType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}},
	}

	text, err := s.generateContent(ctx, parts)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze meal image: %w", err)
	}

	analysis, err := ParseMealAnalysis(text)
	if err != nil {
		log.Printf("[GeminiService] Unparseable model response: %s", text)
		return nil, err
	}

	return analysis, nil
}

// EvaluateMeal asks the model for a short advisory comment about a meal.
// On any failure it degrades to the fixed fallback string; a missing
// comment never fails a save.
func (s *GeminiService) EvaluateMeal(ctx context.Context, calories, protein, weightKg float64, goal string) string {
	prompt := fmt.Sprintf(`体重%.0fkgの人（目標: %s）が、カロリー%.0fkcal、タンパク質%.0fgの食事を摂りました。
目標タンパク質は%.0fg/日です。
150文字以内で評価とアドバイスをください。親しみやすく、絵文字を使ってください。`,
		weightKg, goal, calories, protein, TargetProtein(weightKg))

	text, err := s.generateContent(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		log.Printf("[GeminiService] Evaluation failed, using fallback: %v", err)
		return EvaluationFallback
	}

	comment := strings.TrimSpace(text)
	if comment == "" {
		return EvaluationFallback
	}
	return comment
}

// generateContent performs a single generateContent call and returns the
// first candidate's text.
func (s *GeminiService) generateContent(ctx context.Context, parts []geminiPart) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
	}
	reqBody.GenerationConfig.Temperature = 0.2
	reqBody.GenerationConfig.MaxOutputTokens = 2048

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.apiURL, s.model, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
