package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/jeffsharris/slidemaker/internal/parser"
	"github.com/jeffsharris/slidemaker/internal/prompt"
	"github.com/jeffsharris/slidemaker/internal/state"
)

const graderMaxOutputTokens = 300

// ClientOptions configures the OpenAI-backed clients. Empty fields fall
// back to the SDK's environment defaults (OPENAI_API_KEY, OPENAI_BASE_URL).
type ClientOptions struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
	HTTPClient     *http.Client
}

func (o ClientOptions) requestOptions() []option.RequestOption {
	// Retries are owned by RetryWithBackoff.
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if o.APIKey != "" {
		opts = append(opts, option.WithAPIKey(o.APIKey))
	}
	if o.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(o.BaseURL))
	}
	if o.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(o.RequestTimeout))
	}
	if o.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(o.HTTPClient))
	}
	return opts
}

// OpenAIImageGenerator generates slide images through the Images API.
type OpenAIImageGenerator struct {
	client openai.Client
}

// NewOpenAIImageGenerator creates an image generator.
func NewOpenAIImageGenerator(opts ClientOptions) *OpenAIImageGenerator {
	return &OpenAIImageGenerator{client: openai.NewClient(opts.requestOptions()...)}
}

// Generate requests one image and returns its decoded PNG bytes.
func (g *OpenAIImageGenerator) Generate(ctx context.Context, req ImageRequest) ([]byte, error) {
	const op = "generate image"

	params := openai.ImageGenerateParams{
		Prompt: req.Prompt,
		Model:  openai.ImageModel(req.Model),
	}
	if req.Size != "" {
		params.Size = openai.ImageGenerateParamsSize(req.Size)
	}
	if req.Quality != "" {
		params.Quality = openai.ImageGenerateParamsQuality(req.Quality)
	}
	if req.Background != "" {
		params.Background = openai.ImageGenerateParamsBackground(req.Background)
	}

	resp, err := g.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, Classify(op, err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, NewParseError(op, errors.New("response missing base64 image data"))
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, NewParseError(op, err)
	}
	return data, nil
}

// OpenAIGrader grades slide images through the Responses API with a
// strict JSON schema.
type OpenAIGrader struct {
	client openai.Client
}

// NewOpenAIGrader creates a grader.
func NewOpenAIGrader(opts ClientOptions) *OpenAIGrader {
	return &OpenAIGrader{client: openai.NewClient(opts.requestOptions()...)}
}

// Grade sends the image and rubric to the grader model and parses its verdict.
func (g *OpenAIGrader) Grade(ctx context.Context, req GradeRequest) (state.Grade, error) {
	const op = "grade image"

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(req.Image)
	content := responses.ResponseInputMessageContentListParam{
		responses.ResponseInputContentParamOfInputText(prompt.BuildGraderInput(req.Title, req.Prompt, req.Rubric)),
		{OfInputImage: &responses.ResponseInputImageParam{
			Detail:   responses.ResponseInputImageDetailAuto,
			ImageURL: openai.String(dataURL),
		}},
	}

	resp, err := g.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:        req.Model,
		Instructions: openai.String(prompt.GraderInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(content, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   parser.GradeSchemaName,
					Schema: parser.GradeSchemaMap(),
					Strict: openai.Bool(true),
				},
			},
		},
		MaxOutputTokens: openai.Int(graderMaxOutputTokens),
	})
	if err != nil {
		return state.Grade{}, Classify(op, err)
	}

	grade, err := parser.ParseGrade(resp.OutputText())
	if err != nil {
		return state.Grade{}, NewParseError(op, err)
	}
	return grade, nil
}
