package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"quizgen/models"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/invopop/jsonschema"
)

const recordQuestionsToolName = "record_quiz_questions"

// RecordQuestionsInput is the forced tool input; reflecting it keeps the
// schema in lockstep with the GeneratedQuestion shape.
type RecordQuestionsInput struct {
	Questions []models.GeneratedQuestion `json:"questions" jsonschema:"required,description=The generated quiz questions"`
}

// AnthropicService generates questions with the Anthropic API. The question
// list comes back through a forced tool call instead of free-form JSON.
type AnthropicService struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicService(apiKey string) *AnthropicService {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicService{
		client: &client,
		model:  anthropic.ModelClaude4Sonnet20250514,
	}
}

func (s *AnthropicService) GenerateQuestions(ctx context.Context, sourceText string, amount int, quizType models.QuizType) ([]models.GeneratedQuestion, error) {
	prompt := buildPrompt(sourceText, amount, quizType)

	log.Printf("[INFO] Calling Anthropic for quiz generation (%d questions, type %s)", amount, quizType)
	response, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     s.model,
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Tools: []anthropic.ToolUnionParam{
			{
				OfTool: &anthropic.ToolParam{
					Name:        recordQuestionsToolName,
					Description: anthropic.String("Record the generated quiz questions"),
					InputSchema: generateAnthropicSchema[RecordQuestionsInput](),
				},
			},
		},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: recordQuestionsToolName},
		},
	})
	if err != nil {
		log.Printf("[ERROR] Failed to call Anthropic API: %v", err)
		return nil, fmt.Errorf("failed to call Anthropic API: %w", err)
	}

	for _, block := range response.Content {
		toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
		if !ok || toolUse.Name != recordQuestionsToolName {
			continue
		}

		inputJSON, err := json.Marshal(toolUse.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tool input: %w", err)
		}

		var input RecordQuestionsInput
		if err := json.Unmarshal(inputJSON, &input); err != nil {
			log.Printf("[ERROR] Failed to decode tool input: %v", err)
			return nil, fmt.Errorf("failed to decode tool input: %w", err)
		}

		if err := validateQuestions(input.Questions); err != nil {
			log.Printf("[ERROR] Tool input did not match the question-list shape: %v", err)
			return nil, err
		}

		log.Printf("[INFO] Successfully generated %d questions", len(input.Questions))
		return input.Questions, nil
	}

	return nil, fmt.Errorf("model response contained no %s tool call", recordQuestionsToolName)
}

func generateAnthropicSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
	}
}
