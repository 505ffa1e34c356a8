package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"realestate-agent/internal/metrics"
	"realestate-agent/internal/model"
)

// TierFallback names the deterministic template tier
const TierFallback = "fallback"

// previewSize is how many results are described to external generators
const previewSize = 3

// Generator produces conversational text from a prepared prompt, or fails.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Composition is a composed reply and the tier that produced it
type Composition struct {
	Text string
	Tier string
}

// Composer turns a query and its results into a conversational reply. The
// generators are tried one after another; the template fallback always answers.
type Composer struct {
	generators []Generator
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewComposer creates a composer trying generators in the given order
func NewComposer(logger *slog.Logger, m *metrics.Metrics, generators ...Generator) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{
		generators: generators,
		logger:     logger,
		metrics:    m,
	}
}

// Compose returns a reply for query. It never fails and never returns empty text.
func (c *Composer) Compose(ctx context.Context, query string, results []model.Property, filter model.Filter) Composition {
	if len(c.generators) > 0 {
		prompt := BuildPrompt(query, results, filter)
		for _, g := range c.generators {
			if ctx.Err() != nil {
				break
			}
			text, err := g.Generate(ctx, prompt)
			if err == nil && strings.TrimSpace(text) != "" {
				c.metrics.RecordResponse(g.Name())
				return Composition{Text: text, Tier: g.Name()}
			}
			if err == nil {
				err = fmt.Errorf("empty response")
			}
			kind := failureKind(err)
			c.logger.Warn("generator failed, trying next tier",
				"generator", g.Name(),
				"kind", kind,
				"error", err)
			c.metrics.RecordGeneratorFailure(g.Name(), kind)
		}
	}

	c.metrics.RecordResponse(TierFallback)
	return Composition{Text: FallbackResponse(query, results), Tier: TierFallback}
}

// BuildPrompt renders the context block handed to external generators
func BuildPrompt(query string, results []model.Property, filter model.Filter) string {
	filterJSON, err := json.Marshal(filter)
	if err != nil {
		filterJSON = []byte("{}")
	}

	preview := results
	if len(preview) > previewSize {
		preview = preview[:previewSize]
	}
	details := make([]string, len(preview))
	for i, p := range preview {
		details[i] = fmt.Sprintf("%s - %s in %s - %s", p.Title, p.Type, p.Location, FormatPrice(p.Price))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User Query: %q\n", query)
	fmt.Fprintf(&b, "Properties Found: %d\n", len(results))
	fmt.Fprintf(&b, "Search Filters: %s\n", filterJSON)
	fmt.Fprintf(&b, "Property Details: %s\n\n", strings.Join(details, ", "))
	b.WriteString("Generate a helpful, conversational response about these real estate search results. ")
	b.WriteString("Be specific about the properties found and offer relevant advice.")
	return b.String()
}

// FallbackResponse is the template reply used when no generator answers
func FallbackResponse(query string, results []model.Property) string {
	switch len(results) {
	case 0:
		return fmt.Sprintf("I couldn't find any properties matching \"%s\". Let me help you explore other options. "+
			"Would you like to adjust your budget, location, or property type?", query)
	case 1:
		p := results[0]
		return fmt.Sprintf("Perfect! I found exactly one property that matches your search: %s in %s. "+
			"It's a %s priced at %s. Would you like more details about this property?",
			p.Title, p.Location, p.Type, FormatPrice(p.Price))
	default:
		minPrice, maxPrice := priceRange(results)
		return fmt.Sprintf("Great! I found %d properties matching your criteria. The options range from %s to %s. "+
			"Would you like me to show you the most suitable options or refine the search further?",
			len(results), FormatPrice(minPrice), FormatPrice(maxPrice))
	}
}

// priceRange spans every result, not only the previewed ones
func priceRange(results []model.Property) (lo, hi int64) {
	lo, hi = results[0].Price, results[0].Price
	for _, p := range results[1:] {
		lo = min(lo, p.Price)
		hi = max(hi, p.Price)
	}
	return lo, hi
}

// FormatPrice renders a rupee amount with grouped digits, e.g. ₹4,500,000
func FormatPrice(price int64) string {
	return message.NewPrinter(language.English).Sprintf("₹%d", price)
}
