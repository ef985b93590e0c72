// Package mining extracts product attributes (gender, color, size)
// from free-text fields. The miner runs at most once per pipeline and
// its output is shared read-only across the optimizers of that run.
package mining

import (
	"log"
	"regexp"
	"strings"

	"github.com/feedtools/feed-optimizer/internal/config"
	"github.com/feedtools/feed-optimizer/internal/types"
)

const minerConfigName = "attribute_miner_config"

// maxMinedColors caps how many colors are mined per product; the
// Content API color attribute allows three.
const maxMinedColors = 3

// clothingSizePattern matches western clothing sizes (S/M/L variants
// with optional numeric prefixes) in title text.
var clothingSizePattern = regexp.MustCompile(`\b(?:[0-9]{1,3})?(?:X{0,3}S{1,2}|M|X{0,2}L{1,2})\b`)

// Miner mines attributes from products for one language and country.
type Miner struct {
	language string
	country  string
	cfg      *config.Loader
}

// NewMiner creates a Miner for the given locale.
func NewMiner(language, country string, cfg *config.Loader) *Miner {
	return &Miner{language: language, country: country, cfg: cfg}
}

// MineAndInsertAttributesForBatch mines attributes for every product
// in the batch. Mined values are inserted into the product when the
// corresponding field is unset, and returned keyed by offerId for the
// optimizers that append them to text fields.
func (m *Miner) MineAndInsertAttributesForBatch(batch *types.Batch) types.MinedAttributes {
	cfg, err := m.cfg.ForLanguage(minerConfigName, m.language)
	if err != nil {
		// Mining is best-effort: a bad miner config degrades to no
		// mined attributes rather than failing the batch.
		log.Printf("Failed to load attribute miner config: %v", err)
		return types.MinedAttributes{}
	}
	if len(cfg) == 0 {
		// An absent config disables mining for the locale entirely,
		// including the size pattern that needs no configured terms.
		log.Printf("No attribute miner config for language %s, skipping mining", m.language)
		return types.MinedAttributes{}
	}

	mined := make(types.MinedAttributes)
	for _, entry := range batch.Entries {
		attributes := m.mineProduct(entry.Product, cfg)
		if len(attributes) > 0 {
			mined[entry.OfferID()] = attributes
		}
	}
	return mined
}

func (m *Miner) mineProduct(product map[string]any, cfg map[string]any) map[string]any {
	attributes := make(map[string]any)

	if gender := m.mineGender(product, cfg); gender != "" {
		attributes["gender"] = gender
		insertIfUnset(product, "gender", gender)
	}
	if colors := m.mineColors(product, cfg); len(colors) > 0 {
		attributes["color"] = strings.Join(colors, "/")
		insertIfUnset(product, "color", strings.Join(colors, "/"))
	}
	if sizes := m.mineSizes(product); len(sizes) > 0 {
		attributes["sizes"] = sizes
		insertIfUnset(product, "sizes", sizes)
	}
	return attributes
}

// mineGender reads the gender field when present, otherwise searches
// productTypes and description for configured gendered terms.
func (m *Miner) mineGender(product map[string]any, cfg map[string]any) string {
	if gender, _ := product["gender"].(string); gender != "" {
		return normalizeGender(gender)
	}

	searchText := strings.ToLower(strings.Join(append(
		stringsField(product, "productTypes"),
		stringField(product, "title"),
		stringField(product, "description")), " "))

	// Women's terms are checked first: many feeds write "women's"
	// containing "men's" as a substring.
	for _, gender := range []string{"female", "male", "unisex"} {
		for _, term := range config.StringList(cfg, gender+"_terms") {
			if term != "" && strings.Contains(searchText, strings.ToLower(term)) {
				return gender
			}
		}
	}
	return ""
}

func (m *Miner) mineColors(product map[string]any, cfg map[string]any) []string {
	if color, _ := product["color"].(string); color != "" {
		return nil
	}
	searchText := strings.ToLower(stringField(product, "title") + " " + stringField(product, "description"))

	var colors []string
	for _, color := range config.StringList(cfg, "colors") {
		if color == "" {
			continue
		}
		if strings.Contains(searchText, strings.ToLower(color)) {
			colors = append(colors, color)
			if len(colors) == maxMinedColors {
				break
			}
		}
	}
	return colors
}

func (m *Miner) mineSizes(product map[string]any) []string {
	if sizes := stringsField(product, "sizes"); len(sizes) > 0 {
		return nil
	}
	match := clothingSizePattern.FindString(strings.ToUpper(stringField(product, "title")))
	if match == "" {
		return nil
	}
	return []string{match}
}

func normalizeGender(gender string) string {
	switch strings.ToLower(gender) {
	case "male", "female", "unisex":
		return strings.ToLower(gender)
	default:
		return ""
	}
}

func insertIfUnset(product map[string]any, field string, value any) {
	if _, ok := product[field]; !ok {
		product[field] = value
	}
}

func stringField(product map[string]any, field string) string {
	s, _ := product[field].(string)
	return s
}

func stringsField(product map[string]any, field string) []string {
	switch v := product[field].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
