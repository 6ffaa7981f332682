package provider

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	oai "github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/openai/openai-go/option"

	"github.com/juparave/quorum/internal/config"
)

// Client is the Genkit-backed judgment source.
type Client struct {
	config  config.ProviderConfig
	logger  *log.Logger
	genkit  *genkit.Genkit
	modelID string
}

// NewClient initializes a Genkit client for the configured provider.
func NewClient(cfg config.ProviderConfig, logger *log.Logger) (*Client, error) {
	ctx := context.Background()

	var g *genkit.Genkit
	var modelID string

	switch cfg.Name {
	case "openai":
		// OpenAI-compatible API
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}

		var opts []option.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}

		plugin := &oai.OpenAI{
			APIKey: apiKey,
			Opts:   opts,
		}

		modelID = cfg.Model
		if modelID == "" {
			modelID = "gpt-4o-mini"
		}
		if !strings.Contains(modelID, "/") {
			modelID = "openai/" + modelID
		}

		g = genkit.Init(ctx,
			genkit.WithDefaultModel(modelID),
			genkit.WithPlugins(plugin),
		)

	case "googleai":
		fallthrough
	default:
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				apiKey = os.Getenv("GOOGLE_API_KEY")
			}
		}

		modelID = cfg.Model
		if modelID == "" {
			modelID = "gemini-2.0-flash"
		}
		if !strings.Contains(modelID, "/") {
			modelID = "googleai/" + modelID
		}

		g = genkit.Init(ctx,
			genkit.WithDefaultModel(modelID),
			genkit.WithPlugins(&googlegenai.GoogleAI{
				APIKey: apiKey,
			}),
		)
	}

	return &Client{
		config:  cfg,
		logger:  logger,
		genkit:  g,
		modelID: modelID,
	}, nil
}

// Complete sends the request and returns the raw text response.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if model == "" {
		model = c.modelID
	}
	if !strings.Contains(model, "/") {
		model = prefixFor(c.config.Name) + model
	}

	prompt := req.Prompt
	if req.System != "" {
		prompt = req.System + "\n\n" + req.Prompt
	}

	answer, err := genkit.GenerateText(ctx, c.genkit,
		ai.WithModelName(model),
		ai.WithPrompt(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("generating completion: %w", err)
	}
	return answer, nil
}

// CompleteJSON appends the schema instruction to the prompt, calls the
// model, and extracts the JSON object from the response.
func (c *Client) CompleteJSON(ctx context.Context, req Request) (map[string]any, error) {
	augmented := req
	augmented.Prompt = req.Prompt + jsonInstruction(req.Schema)

	raw, err := c.Complete(ctx, augmented)
	if err != nil {
		return nil, err
	}

	parsed, err := ExtractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return parsed, nil
}

func prefixFor(providerName string) string {
	if providerName == "openai" {
		return "openai/"
	}
	return "googleai/"
}

func jsonInstruction(schema string) string {
	var sb strings.Builder
	sb.WriteString("\n\nRespond with ONLY valid JSON matching this schema. ")
	sb.WriteString("No markdown fences, no explanation, just the JSON object:\n")
	sb.WriteString(schema)
	return sb.String()
}
