package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"

	"catalogo/internal/model"
	"catalogo/internal/normalizer"
)

// MaxEnrichedFeatures bounds what the model may add to a product.
const MaxEnrichedFeatures = 8

// Enricher derives feature bullets for a product whose page lists none.
type Enricher interface {
	Features(ctx context.Context, p model.Product) ([]string, error)
}

// OpenAIEnricher asks a chat model for feature bullets.
type OpenAIEnricher struct {
	Client *openai.Client
	Model  string
}

func NewOpenAIEnricher(apiKey, model string) *OpenAIEnricher {
	return &OpenAIEnricher{Client: openai.NewClient(apiKey), Model: model}
}

func enrichPrompt() string {
	return `
Você recebe os dados de um produto de banheiro (louças, metais, duchas, acessórios).
Escreva de 3 a 8 destaques curtos do produto, um por linha, sem numeração.
Use SOMENTE as informações fornecidas. Não invente medidas, certificações ou preços.
Responda no mesmo idioma dos dados do produto.
`
}

func (e *OpenAIEnricher) Features(ctx context.Context, p model.Product) ([]string, error) {
	modelName := e.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	resp, err := e.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: enrichPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: productToText(p)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: resposta sem escolhas")
	}

	lines := lo.Map(normalizer.SplitLines(resp.Choices[0].Message.Content), func(s string, _ int) string {
		return strings.TrimSpace(strings.TrimLeft(s, "*-•0123456789.) "))
	})
	lines = lo.Compact(lines)
	if len(lines) > MaxEnrichedFeatures {
		lines = lines[:MaxEnrichedFeatures]
	}
	return lines, nil
}

// productToText é o resumo do produto enviado ao modelo.
func productToText(p model.Product) string {
	var sb strings.Builder

	sb.WriteString(p.Name + "\n\n")
	if p.Description != "" {
		sb.WriteString("Descrição:\n" + p.Description + "\n\n")
	}

	if len(p.Specs) > 0 || p.Category != "" || p.Code != "" {
		sb.WriteString("--- Especificações ---\n")
		if p.Code != "" {
			sb.WriteString("Modelo: " + p.Code + "\n")
		}
		if p.Category != "" {
			sb.WriteString("Categoria: " + p.Category + "\n")
		}
		for _, s := range p.Specs {
			sb.WriteString(s.Label + ": " + s.Value + "\n")
		}
		sb.WriteString("----------------------\n\n")
	}
	if len(p.Compliance) > 0 {
		sb.WriteString("Certificações: " + strings.Join(p.Compliance, ", ") + "\n")
	}
	return sb.String()
}
