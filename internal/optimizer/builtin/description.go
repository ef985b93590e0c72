package builtin

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// maxDescriptionLength is the Content API description character limit.
// Reference: https://support.google.com/merchants/answer/6324468
const maxDescriptionLength = 5000

// DescriptionOptimizer improves descriptions: HTML markup is stripped
// (formatting tags are not rendered in Shopping and count against the
// length limit) and mined attributes are appended to give the ad
// engine more signal.
type DescriptionOptimizer struct {
	mined types.MinedAttributes
}

// Parameter implements optimizer.Optimizer.
func (o *DescriptionOptimizer) Parameter() string {
	return "description-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *DescriptionOptimizer) Apply(batch *types.Batch, _, _, _ string) (types.Counts, error) {
	var counts types.Counts
	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		original := getString(product, "description")
		description := original

		if strings.ContainsAny(description, "<>") {
			if text, err := stripHTML(description); err == nil && text != description {
				description = text
				setSanitized(product)
			}
		}
		description = truncate(description, maxDescriptionLength)

		if appended := o.appendMinedAttributes(product, description); appended != description {
			description = appended
			setOptimized(product)
		}

		if description != original {
			product["description"] = description
			log.Printf("Modified item %s: Optimized description",
				getString(product, "offerId"))
			counts.Optimized++
		}
	}
	return counts, nil
}

func (o *DescriptionOptimizer) appendMinedAttributes(product map[string]any, description string) string {
	if len(o.mined) == 0 {
		return description
	}
	attributes := o.mined[getString(product, "offerId")]
	if len(attributes) == 0 {
		return description
	}

	var keywords []string
	for _, name := range minedAttributeAppendOrder {
		switch value := attributes[name].(type) {
		case string:
			keywords = append(keywords, value)
		case []string:
			keywords = append(keywords, value...)
		case []any:
			for _, item := range value {
				if s, ok := item.(string); ok {
					keywords = append(keywords, s)
				}
			}
		}
	}
	if len(keywords) == 0 {
		return description
	}
	return appendKeywordsToField(description, keywords, runeLen(description), maxDescriptionLength)
}

// stripHTML extracts the text content of an HTML fragment, collapsing
// the whitespace the markup leaves behind. Text nodes are joined with a
// space so adjacent elements do not run their words together.
func stripHTML(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " "), nil
}
