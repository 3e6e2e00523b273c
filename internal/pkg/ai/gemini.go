package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ekaplan/prepsphere/internal/pkg/logger"
)

const (
	defaultModelName = "gemini-1.5-flash-latest"

	studyTipsInstruction = "You are a study coach for competitive exam preparation (NEET/JEE). " +
		"Give practical, specific study tips based on the student's subject, weak areas and time left. " +
		"Keep the answer short and actionable, as a plain list. Do not invent syllabus topics."

	doubtInstruction = "You are a subject expert helping an exam aspirant with a doubt. " +
		"Explain the concept step by step at the level of a high-school student preparing for NEET/JEE. " +
		"If the question is ambiguous or out of syllabus scope, say so instead of guessing."
)

// Advisor is the AI surface the handlers depend on, kept small so tests can
// stub it without touching the SDK.
type Advisor interface {
	StudyTips(ctx context.Context, subject, examDate, weakAreas string) (string, error)
	SolveDoubt(ctx context.Context, subject, question string) (string, error)
	Close() error
}

// GeminiAdvisor implements Advisor over the Gemini API
type GeminiAdvisor struct {
	client *genai.Client
	model  string
}

// NewGeminiAdvisor creates an Advisor backed by Gemini
func NewGeminiAdvisor(ctx context.Context, apiKey string) (*GeminiAdvisor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiAdvisor{
		client: client,
		model:  defaultModelName,
	}, nil
}

// Close releases the underlying client
func (a *GeminiAdvisor) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

// StudyTips generates study tips for a subject given weak areas and exam date
func (a *GeminiAdvisor) StudyTips(ctx context.Context, subject, examDate, weakAreas string) (string, error) {
	prompt := fmt.Sprintf("Subject: %s. Exam date: %s. Weak areas: %s. Give me study tips.",
		subject, examDate, weakAreas)
	return a.generate(ctx, studyTipsInstruction, prompt)
}

// SolveDoubt answers a student's doubt in a subject
func (a *GeminiAdvisor) SolveDoubt(ctx context.Context, subject, question string) (string, error) {
	prompt := fmt.Sprintf("Subject: %s. Doubt: %s", subject, question)
	return a.generate(ctx, doubtInstruction, prompt)
}

func (a *GeminiAdvisor) generate(ctx context.Context, instruction, prompt string) (string, error) {
	model := a.client.GenerativeModel(a.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(instruction)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		logger.Warn().Msg("Gemini response was empty or had no valid candidates")
		return "", fmt.Errorf("empty response from model")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.WriteString(string(txt))
		}
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("model returned no text content")
	}

	return strings.TrimSpace(out.String()), nil
}
