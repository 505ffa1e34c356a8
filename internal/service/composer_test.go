package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-agent/internal/metrics"
	"realestate-agent/internal/model"
)

type stubGenerator struct {
	name    string
	text    string
	err     error
	calls   int
	prompts []string
}

func (g *stubGenerator) Name() string { return g.name }

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

func sampleProperties() []model.Property {
	return []model.Property{
		{Title: "Spacious 3BHK House in Panaji", Type: model.PropertyTypeHouse, Location: "Panaji", Price: 7_500_000},
		{Title: "Commercial Shop in Margao", Type: model.PropertyTypeShop, Location: "Margao", Price: 3_500_000},
		{Title: "1BHK Flat for Rent in Baga", Type: model.PropertyTypeFlat, Location: "Baga", Price: 25_000},
		{Title: "4BHK Villa with Pool", Type: model.PropertyTypeVilla, Location: "Anjuna", Price: 12_000_000},
	}
}

func TestFallbackResponse_NoResults(t *testing.T) {
	text := FallbackResponse("castle in Panaji under 5 lakh", nil)
	assert.Contains(t, text, `"castle in Panaji under 5 lakh"`)
	assert.Contains(t, text, "budget, location, or property type")
}

func TestFallbackResponse_OneResult(t *testing.T) {
	p := model.Property{Title: "Luxury 2BHK Flat in North Goa", Type: model.PropertyTypeFlat, Location: "Calangute", Price: 4_500_000}
	text := FallbackResponse("flat", []model.Property{p})

	assert.Contains(t, text, "Luxury 2BHK Flat in North Goa")
	assert.Contains(t, text, "Calangute")
	assert.Contains(t, text, "flat")
	assert.Contains(t, text, "4,500,000")
}

func TestFallbackResponse_RangeCoversAllResults(t *testing.T) {
	props := []model.Property{
		{Title: "A", Price: 7_500_000},
		{Title: "B", Price: 12_000_000},
		{Title: "C", Price: 3_500_000},
	}
	text := FallbackResponse("anything", props)
	assert.Contains(t, text, "found 3 properties")
	assert.Contains(t, text, "from ₹3,500,000 to ₹12,000,000")

	// min and max sit outside the three-item preview
	props = append([]model.Property{{Price: 5_000_000}, {Price: 6_000_000}, {Price: 7_000_000}},
		model.Property{Price: 100_000}, model.Property{Price: 90_000_000})
	text = FallbackResponse("anything", props)
	assert.Contains(t, text, "from ₹100,000 to ₹90,000,000")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "₹4,500,000", FormatPrice(4_500_000))
	assert.Equal(t, "₹25,000", FormatPrice(25_000))
	assert.Equal(t, "₹999", FormatPrice(999))
}

func TestBuildPrompt(t *testing.T) {
	filter := ParseQuery("house in Panaji")
	prompt := BuildPrompt("house in Panaji", sampleProperties(), filter)

	assert.Contains(t, prompt, `User Query: "house in Panaji"`)
	assert.Contains(t, prompt, "Properties Found: 4")
	assert.Contains(t, prompt, `"type":"house"`)
	assert.Contains(t, prompt, `"location":"panaji"`)
	assert.Contains(t, prompt, "Spacious 3BHK House in Panaji - house in Panaji - ₹7,500,000")
	assert.Contains(t, prompt, "1BHK Flat for Rent in Baga")
	assert.NotContains(t, prompt, "4BHK Villa with Pool", "only the first three results are previewed")
}

func TestComposer_FirstGeneratorWins(t *testing.T) {
	primary := &stubGenerator{name: "ollama", text: "Here are some lovely homes."}
	secondary := &stubGenerator{name: "openrouter", text: "unused"}

	c := NewComposer(nil, nil, primary, secondary)
	out := c.Compose(context.Background(), "house", sampleProperties(), model.NewFilter())

	assert.Equal(t, Composition{Text: "Here are some lovely homes.", Tier: "ollama"}, out)
	assert.Equal(t, 0, secondary.calls)
}

func TestComposer_FallsThroughInOrder(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	primary := &stubGenerator{name: "ollama", err: NewFatalError(errors.New("executable not found"))}
	secondary := &stubGenerator{name: "openrouter", text: "Secondary answer"}

	c := NewComposer(nil, m, primary, secondary)
	out := c.Compose(context.Background(), "house", nil, model.NewFilter())

	assert.Equal(t, "openrouter", out.Tier)
	assert.Equal(t, "Secondary answer", out.Text)
	require.Len(t, secondary.prompts, 1)
	assert.Equal(t, primary.prompts[0], secondary.prompts[0], "both tiers see the same context")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeneratorFailures.WithLabelValues("ollama", "fatal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResponsesTotal.WithLabelValues("openrouter")))
}

func TestComposer_DegradesToFallback(t *testing.T) {
	primary := &stubGenerator{name: "ollama", err: NewTransientError(errors.New("exit status 1"))}
	secondary := &stubGenerator{name: "openrouter", text: "   "}

	c := NewComposer(nil, nil, primary, secondary)
	out := c.Compose(context.Background(), "plot in Vasco", nil, model.NewFilter())

	assert.Equal(t, TierFallback, out.Tier)
	assert.Contains(t, out.Text, `"plot in Vasco"`)
}

func TestComposer_NoGenerators(t *testing.T) {
	c := NewComposer(nil, nil)
	out := c.Compose(context.Background(), "q", sampleProperties()[:1], model.NewFilter())

	assert.Equal(t, TierFallback, out.Tier)
	assert.True(t, strings.HasPrefix(out.Text, "Perfect!"))
}

func TestComposer_CancelledContextSkipsGenerators(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := &stubGenerator{name: "ollama", text: "never"}
	out := NewComposer(nil, nil, g).Compose(ctx, "q", nil, model.NewFilter())

	assert.Equal(t, TierFallback, out.Tier)
	assert.Equal(t, 0, g.calls)
	assert.NotEmpty(t, out.Text)
}
