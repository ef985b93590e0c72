package builtin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// Image link limits.
// Reference: https://support.google.com/merchants/answer/6324350
const (
	maxImageURLLength       = 2000
	maxAlternateImageURLs   = 10
	maxImageProbeWorkers    = 8
	defaultImageProbePeriod = 10 * time.Second
)

var validImageSuffixes = []string{
	".jpg", ".jpeg", ".webp", ".png", ".gif", ".bmp", ".tif", ".tiff",
}

// ImageProber checks that an image URL is servable. Probes for one
// product run concurrently, bounded by a small worker pool; this is
// parallelism within a single optimizer, the pipeline itself stays
// sequential.
type ImageProber interface {
	Probe(ctx context.Context, imageURL string) error
}

// HTTPImageProber probes image URLs with HEAD requests.
type HTTPImageProber struct {
	Client *http.Client
}

// Probe implements ImageProber.
func (p *HTTPImageProber) Probe(ctx context.Context, imageURL string) error {
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: defaultImageProbePeriod}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}
	return nil
}

// ImageLinkOptimizer swaps an invalid primary image link with the
// first valid alternate so the product is not disapproved for an
// unservable image.
type ImageLinkOptimizer struct {
	prober ImageProber
}

// NewImageLinkOptimizer creates the optimizer with the given prober.
// A nil prober disables network probes; only URL shape is validated.
func NewImageLinkOptimizer(prober ImageProber) *ImageLinkOptimizer {
	return &ImageLinkOptimizer{prober: prober}
}

// Parameter implements optimizer.Optimizer.
func (o *ImageLinkOptimizer) Parameter() string {
	return "image-link-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *ImageLinkOptimizer) Apply(batch *types.Batch, _, _, _ string) (types.Counts, error) {
	var counts types.Counts
	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		primary := getString(product, "imageLink")
		if primary == "" {
			continue
		}
		alternates := cutListToLimitLength(getStrings(product, "additionalImageLinks"), maxAlternateImageURLs)

		valid := o.validateAll(append([]string{primary}, alternates...))
		if valid[0] {
			continue
		}
		swapIndex := -1
		for i := range alternates {
			if valid[i+1] {
				swapIndex = i
				break
			}
		}
		if swapIndex < 0 {
			continue
		}

		product["imageLink"] = alternates[swapIndex]
		alternates[swapIndex] = primary
		product["additionalImageLinks"] = alternates
		log.Printf("Modified item %s: Swapped invalid image link with alternate: %s",
			getString(product, "offerId"), product["imageLink"])
		counts.Optimized++
		setSanitized(product)
	}
	return counts, nil
}

// validateAll checks every URL, probing them concurrently with a
// worker pool sized to available parallelism and capped at a small
// constant. All probes join before the product is touched.
func (o *ImageLinkOptimizer) validateAll(urls []string) []bool {
	valid := make([]bool, len(urls))

	group, ctx := errgroup.WithContext(context.Background())
	group.SetLimit(min(runtime.GOMAXPROCS(0), maxImageProbeWorkers))
	for i, imageURL := range urls {
		i, imageURL := i, imageURL
		group.Go(func() error {
			if !imageURLWellFormed(imageURL) {
				return nil
			}
			if o.prober != nil {
				if err := o.prober.Probe(ctx, imageURL); err != nil {
					log.Printf("Image probe failed for %s: %v", imageURL, err)
					return nil
				}
			}
			valid[i] = true
			return nil
		})
	}
	_ = group.Wait() // workers never return errors; Wait only joins
	return valid
}

func imageURLWellFormed(imageURL string) bool {
	if imageURL == "" || runeLen(imageURL) > maxImageURLLength {
		return false
	}
	parsed, err := url.Parse(imageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return false
	}
	path := strings.ToLower(parsed.Path)
	for _, suffix := range validImageSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	// A URL without a recognized file suffix may still serve an image.
	return !strings.Contains(path, ".")
}
