package llm

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/RoboJunior/Coding-Buddy/pkg/observability"
)

// GeminiConfig contains configuration for the Gemini model provider.
type GeminiConfig struct {
	// APIKey is the Google AI API key.
	APIKey string

	// Model is the model name (e.g. "gemini-2.5-flash").
	Model string

	// MaxTokens limits the response length. Zero means provider default.
	MaxTokens int

	// Temperature controls randomness. Only applied when positive.
	Temperature float64
}

// geminiModel implements Model via the official genai SDK.
type geminiModel struct {
	client *genai.Client
	name   string
	config GeminiConfig
}

// NewGemini creates a Gemini-backed model.
func NewGemini(cfg GeminiConfig) (Model, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiModel{
		client: client,
		name:   cfg.Model,
		config: cfg,
	}, nil
}

func (m *geminiModel) Name() string {
	return m.name
}

func (m *geminiModel) Generate(ctx context.Context, instruction string, messages []Message, tools []ToolDefinition) (*Response, error) {
	tracer := observability.GetTracer("codingbuddy.llm")
	ctx, span := tracer.Start(ctx, observability.SpanModelRequest,
		trace.WithAttributes(
			attribute.String(observability.AttrModelName, m.name),
		),
	)
	defer span.End()

	contents := buildContents(messages)
	config := m.buildConfig(instruction, tools)

	genResp, err := m.client.Models.GenerateContent(ctx, m.name, contents, config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return nil, fmt.Errorf("Gemini generation failed: %w", err)
	}

	return parseResponse(genResp)
}

func (m *geminiModel) Close() error {
	return nil
}

func (m *geminiModel) buildConfig(instruction string, tools []ToolDefinition) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if instruction != "" {
		config.SystemInstruction = &genai.Content{
			Role:  "user",
			Parts: []*genai.Part{{Text: instruction}},
		}
	}
	if m.config.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(m.config.Temperature))
	}
	if m.config.MaxTokens > 0 {
		config.MaxOutputTokens = int32(m.config.MaxTokens)
	}
	if len(tools) > 0 {
		config.Tools = buildTools(tools)
	}

	return config
}

// buildContents converts conversation history to genai contents.
func buildContents(messages []Message) []*genai.Content {
	var contents []*genai.Content

	for _, msg := range messages {
		var parts []*genai.Part
		for _, p := range msg.Parts {
			switch {
			case p.FunctionCall != nil:
				parts = append(parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{
						ID:   p.FunctionCall.ID,
						Name: p.FunctionCall.Name,
						Args: p.FunctionCall.Args,
					},
				})
			case p.FunctionResponse != nil:
				parts = append(parts, &genai.Part{
					FunctionResponse: &genai.FunctionResponse{
						ID:       p.FunctionResponse.ID,
						Name:     p.FunctionResponse.Name,
						Response: p.FunctionResponse.Response,
					},
				})
			case p.InlineData != nil:
				parts = append(parts, &genai.Part{
					InlineData: &genai.Blob{
						MIMEType: p.InlineData.MIMEType,
						Data:     p.InlineData.Data,
					},
				})
			case p.Text != "":
				parts = append(parts, &genai.Part{Text: p.Text})
			}
		}
		if len(parts) == 0 {
			continue
		}

		role := "user"
		if msg.Role == RoleModel {
			role = "model"
		}
		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}

	return contents
}

// buildTools converts tool declarations to genai tools.
func buildTools(tools []ToolDefinition) []*genai.Tool {
	var genaiTools []*genai.Tool
	for _, t := range tools {
		genaiTools = append(genaiTools, &genai.Tool{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        t.Name,
					Description: t.Description,
					Parameters:  toGenaiSchema(t.Parameters),
				},
			},
		})
	}
	return genaiTools
}

// toGenaiSchema converts a JSON schema object to a genai schema.
func toGenaiSchema(schema map[string]any) *genai.Schema {
	if schema == nil {
		return nil
	}

	s := &genai.Schema{}
	if t, ok := schema["type"].(string); ok {
		s.Type = schemaType(t)
	}
	if desc, ok := schema["description"].(string); ok {
		s.Description = desc
	}
	if props, ok := schema["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema)
		for name, prop := range props {
			if propMap, ok := prop.(map[string]any); ok {
				s.Properties[name] = toGenaiSchema(propMap)
			}
		}
	}
	if required, ok := schema["required"].([]string); ok {
		s.Required = required
	} else if required, ok := schema["required"].([]any); ok {
		for _, r := range required {
			if rs, ok := r.(string); ok {
				s.Required = append(s.Required, rs)
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		s.Items = toGenaiSchema(items)
	}
	if enum, ok := schema["enum"].([]string); ok {
		s.Enum = enum
	}

	return s
}

// schemaType maps lowercase JSON-schema type names onto the SDK's uppercase
// constants. The API rejects unknown type strings.
func schemaType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}

// parseResponse folds the first candidate into a Response.
func parseResponse(genResp *genai.GenerateContentResponse) (*Response, error) {
	if len(genResp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	resp := &Response{}
	candidate := genResp.Candidates[0]

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" && !part.Thought {
				resp.Text += part.Text
			}
			if part.FunctionCall != nil {
				resp.ToolCalls = append(resp.ToolCalls, FunctionCall{
					ID:   part.FunctionCall.ID,
					Name: part.FunctionCall.Name,
					Args: part.FunctionCall.Args,
				})
			}
		}
	}

	if genResp.UsageMetadata != nil {
		resp.Tokens = int(genResp.UsageMetadata.TotalTokenCount)
	}

	return resp, nil
}
