package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"grocery-manager/internal/core/grocery"
	"grocery-manager/internal/core/recipe"
	"grocery-manager/internal/infrastructure/config"
	"grocery-manager/internal/pkg/common"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// User-facing failure messages. Every service failure is terminal for that
// single request; there is no retry and no transient/permanent distinction.
const (
	msgNoAPIKey        = "API key is not configured. Please set up your API key to use this feature."
	msgRecipeFailed    = "Sorry, I had trouble coming up with a recipe. Please check your setup or try again later."
	msgParseRecipeText = "Failed to parse the recipe. Please check the format or try again."
)

// Client is the text-generation service adapter, backed by the OpenRouter
// chat completions API. It implements recipe.TextGenerator and
// importer.ListGenerator.
type Client struct {
	config *config.Config
	client *resty.Client
	cache  *Cache
}

// NewClient creates an OpenRouter client.
func NewClient(cfg *config.Config, cache *Cache) *Client {
	return NewClientWithBaseURL(cfg, cache, defaultBaseURL)
}

// NewClientWithBaseURL creates an OpenRouter client against a specific base
// URL. Used by tests to point at a stub server.
func NewClientWithBaseURL(cfg *config.Config, cache *Cache, baseURL string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://github.com/grocery-manager").
		SetHeader("X-Title", "Grocery Manager")

	return &Client{
		config: cfg,
		client: client,
		cache:  cache,
	}
}

type draftWire struct {
	Name         string                    `json:"name"`
	Description  string                    `json:"description"`
	Ingredients  []recipe.RecipeIngredient `json:"ingredients"`
	Instructions string                    `json:"instructions"`
}

// GenerateRecipe asks the service for a recipe draft built from the selected
// ingredients and constraints. Fails with a generic user-facing message when
// the service is unreachable, no credential is configured, or the reply is
// malformed.
func (c *Client) GenerateRecipe(ctx context.Context, ingredients []string, opts recipe.GenerateOptions) (*recipe.Draft, error) {
	if c.config.OpenRouter.APIKey == "" {
		return nil, fmt.Errorf(msgNoAPIKey)
	}

	prompt := recipePrompt(ingredients, opts)
	content, err := c.complete(ctx, prompt)
	if err != nil {
		common.LogError("recipe generation request failed", zap.Error(err))
		return nil, fmt.Errorf(msgRecipeFailed)
	}

	raw := common.ExtractJSONObject(content)

	var wire draftWire
	if err := common.ParseJSON(raw, &wire); err != nil {
		// Models occasionally drop the quotes on keys.
		if err2 := common.ParseJSON(common.QuoteJSONKeys(raw), &wire); err2 != nil {
			common.LogError("failed to parse recipe draft",
				zap.Error(err),
				zap.Int("content_length", len(content)),
			)
			return nil, fmt.Errorf(msgRecipeFailed)
		}
	}

	if wire.Name == "" || len(wire.Ingredients) == 0 {
		common.LogError("incomplete recipe draft in service reply",
			zap.Int("ingredients", len(wire.Ingredients)),
		)
		return nil, fmt.Errorf(msgRecipeFailed)
	}

	return &recipe.Draft{
		Name:         wire.Name,
		Description:  wire.Description,
		Ingredients:  wire.Ingredients,
		Instructions: wire.Instructions,
	}, nil
}

type normalizedItemWire struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	NormalizedName string `json:"normalizedName"`
}

// GenerateShoppingList parses freeform recipe text into normalized grocery
// items scaled to the serving count. With no credential configured it returns
// an empty list, not an error. Unknown categories in the reply fall back to
// Other.
func (c *Client) GenerateShoppingList(ctx context.Context, recipeText string, servings int) ([]recipe.NormalizedItem, error) {
	if c.config.OpenRouter.APIKey == "" {
		common.LogWarn("no API key configured, returning empty shopping list")
		return []recipe.NormalizedItem{}, nil
	}

	prompt := shoppingListPrompt(recipeText, servings)
	content, err := c.complete(ctx, prompt)
	if err != nil {
		common.LogError("shopping list generation request failed", zap.Error(err))
		return nil, fmt.Errorf(msgParseRecipeText)
	}

	raw := common.ExtractJSONArray(content)

	var wire []normalizedItemWire
	if err := common.ParseJSON(raw, &wire); err != nil {
		if err2 := common.ParseJSON(common.QuoteJSONKeys(raw), &wire); err2 != nil {
			common.LogError("failed to parse shopping list",
				zap.Error(err),
				zap.Int("content_length", len(content)),
			)
			return nil, fmt.Errorf(msgParseRecipeText)
		}
	}

	items := make([]recipe.NormalizedItem, 0, len(wire))
	for _, w := range wire {
		category, ok := grocery.ParseCategory(w.Category)
		if !ok {
			category = grocery.CategoryOther
		}
		items = append(items, recipe.NormalizedItem{
			Name:           w.Name,
			Category:       category,
			NormalizedName: w.NormalizedName,
		})
	}
	return items, nil
}

// complete sends a single chat completion round trip and returns the first
// choice's content.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if content, ok := c.cache.Get(ctx, prompt); ok {
		common.LogDebug("ai cache hit")
		return content, nil
	}

	req := map[string]interface{}{
		"model": c.config.OpenRouter.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"max_tokens": c.config.OpenRouter.MaxTokens,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API returned error: %s", resp.String())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	content := result.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in OpenRouter response")
	}

	c.cache.Set(ctx, prompt, content)
	return content, nil
}
