// ABOUTME: AI-powered data generator for the demo flyout server.
// ABOUTME: Uses OpenAI to generate shop entities, falling back to static fixtures.

package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"
)

// Generator creates demo data using OpenAI or falls back to static fixtures.
type Generator struct {
	client *openai.Client
	useAI  bool
	model  string
}

// NewGenerator creates a generator, loading the API key from .env if available.
func NewGenerator() *Generator {
	g := &Generator{}

	// Try to load .env from current dir or parent dirs
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// Also check home directory
	if home, err := os.UserHomeDir(); err == nil {
		godotenv.Load(filepath.Join(home, ".env"))
	}

	g.model = os.Getenv("OPENAI_MODEL")
	if g.model == "" {
		g.model = "gpt-5-mini"
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey != "" {
		g.client = openai.NewClient(apiKey)
		g.useAI = true
		log.Printf("OpenAI API key found, using AI-generated data with model: %s", g.model)
	} else {
		log.Println("No OPENAI_API_KEY found, using static fallback data")
	}

	return g
}

// Data holds the generated demo entities.
type Data struct {
	Posts []PostData `json:"posts"`
	Terms []TermData `json:"terms"`
	Users []UserData `json:"users"`
}

// PostData is one generated page or post.
type PostData struct {
	Title    string `json:"title"`
	PostType string `json:"post_type"`
}

// TermData is one generated taxonomy term.
type TermData struct {
	Name     string `json:"name"`
	Taxonomy string `json:"taxonomy"`
}

// UserData is one generated user.
type UserData struct {
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Generate creates the demo entity set.
func (g *Generator) Generate(ctx context.Context, numPosts, numTerms, numUsers int) (*Data, error) {
	if !g.useAI {
		return generateStatic(numPosts, numTerms, numUsers), nil
	}

	data := &Data{}

	type result struct {
		name string
		err  error
	}

	// Generate in parallel for speed
	resultCh := make(chan result, 3)

	log.Printf("Generating %d posts, %d terms, %d users via AI...", numPosts, numTerms, numUsers)

	go func() {
		posts, err := g.generatePosts(ctx, numPosts)
		if err != nil {
			resultCh <- result{"posts", err}
			return
		}
		data.Posts = posts
		resultCh <- result{"posts", nil}
	}()

	go func() {
		terms, err := g.generateTerms(ctx, numTerms)
		if err != nil {
			resultCh <- result{"terms", err}
			return
		}
		data.Terms = terms
		resultCh <- result{"terms", nil}
	}()

	go func() {
		users, err := g.generateUsers(ctx, numUsers)
		if err != nil {
			resultCh <- result{"users", err}
			return
		}
		data.Users = users
		resultCh <- result{"users", nil}
	}()

	var errs []error
	for i := 0; i < 3; i++ {
		r := <-resultCh
		if r.err != nil {
			log.Printf("Failed to generate %s: %v", r.name, r.err)
			errs = append(errs, fmt.Errorf("%s: %w", r.name, r.err))
		}
	}

	if len(errs) > 0 {
		log.Print("AI generation incomplete, falling back to static data...")
		return generateStatic(numPosts, numTerms, numUsers), nil
	}

	log.Print("AI generation complete!")
	return data, nil
}

func (g *Generator) generatePosts(ctx context.Context, count int) ([]PostData, error) {
	prompt := fmt.Sprintf(`Generate %d realistic page and blog post titles for a small online shop's website.
Mix static pages (about, contact, shipping policy) with blog posts (product launches, guides, news).

Return as JSON array with objects containing: title, post_type ("page" or "post").
About a third should be pages, the rest posts.`, count)

	return callOpenAI[[]PostData](ctx, g.client, g.model, prompt)
}

func (g *Generator) generateTerms(ctx context.Context, count int) ([]TermData, error) {
	prompt := fmt.Sprintf(`Generate %d taxonomy terms for a small online shop's content.
Mix product categories with free-form tags.

Return as JSON array with objects containing: name, taxonomy ("category" or "tag").`, count)

	return callOpenAI[[]TermData](ctx, g.client, g.model, prompt)
}

func (g *Generator) generateUsers(ctx context.Context, count int) ([]UserData, error) {
	prompt := fmt.Sprintf(`Generate %d realistic user display names for a small online shop's admin team.

Return as JSON array with objects containing: display_name, role ("editor" or "author").`, count)

	return callOpenAI[[]UserData](ctx, g.client, g.model, prompt)
}

func callOpenAI[T any](ctx context.Context, client *openai.Client, model, prompt string) (T, error) {
	var result T

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a data generator. Always respond with valid JSON only, no markdown or explanation.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return result, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return result, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return result, nil
}
