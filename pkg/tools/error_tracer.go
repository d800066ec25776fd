package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RoboJunior/Coding-Buddy/pkg/llm"
)

// errorTracerPrompt asks the model for a structured reading of an error
// screenshot, so downstream search tools get clean inputs.
const errorTracerPrompt = `Analyze this screenshot of a programming error and extract:
1. The exact error message
2. The full stack trace, if visible
3. The programming language and any libraries involved
Return only what is visible in the image, without speculation.`

// supported screenshot encodings, by extension
var imageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// ErrorTracerTool reads an error screenshot from disk and extracts the
// error message and stack trace with a vision-capable model.
type ErrorTracerTool struct {
	model llm.Model
}

func NewErrorTracerTool(model llm.Model) *ErrorTracerTool {
	return &ErrorTracerTool{model: model}
}

func (t *ErrorTracerTool) GetName() string { return "error_tracer" }

func (t *ErrorTracerTool) GetDescription() string {
	return "Extract the error message and stack trace from a screenshot of a programming error"
}

func (t *ErrorTracerTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        t.GetName(),
		Description: t.GetDescription(),
		Parameters: []ToolParameter{
			{Name: "image_path", Type: "string", Description: "Filesystem path of the screenshot", Required: true},
		},
	}
}

func (t *ErrorTracerTool) Execute(ctx context.Context, args map[string]any) (ToolResult, error) {
	imagePath := stringArg(args, "image_path", "")
	if imagePath == "" {
		return failedResult(t.GetName(), "image_path is required"), nil
	}

	mimeType, ok := imageMIMETypes[strings.ToLower(filepath.Ext(imagePath))]
	if !ok {
		return failedResult(t.GetName(), fmt.Sprintf("unsupported image type %q", filepath.Ext(imagePath))), nil
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return failedResult(t.GetName(), "failed to read image: "+err.Error()), nil
	}

	resp, err := t.model.Generate(ctx, "", []llm.Message{
		llm.NewUserImage(errorTracerPrompt, mimeType, data),
	}, nil)
	if err != nil {
		return failedResult(t.GetName(), "image analysis failed: "+err.Error()), nil
	}
	if resp.Text == "" {
		return failedResult(t.GetName(), "model returned no extraction for the image"), nil
	}

	return successResult(t.GetName(), map[string]any{"extracted_error": resp.Text})
}
