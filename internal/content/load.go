package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	siteerrors "github.com/deltafood/delta/internal/errors"
)

//go:embed default.yml
var defaultCatalog []byte

// MaxRating is the top of the testimonial rating scale.
const MaxRating = 5

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	c, err := Parse(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return c, nil
}

// MustDefault is Default for callers that cannot recover from a broken
// embedded catalog.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultYAML returns the raw embedded catalog, used by export and as a
// starting point for custom content files.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultCatalog...)
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, siteerrors.NewContentError(siteerrors.CodeContentLoad,
			"cannot read content file", err).WithContext("path", path)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog. Unknown keys are rejected so
// typos surface instead of silently blanking a section.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, siteerrors.NewContentError(siteerrors.CodeContentInvalid,
			"malformed content catalog", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	html, err := RenderMarkdown(c.About.Body)
	if err != nil {
		return nil, err
	}
	c.About.BodyHTML = html

	return &c, nil
}

// RenderMarkdown converts markdown to HTML.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", siteerrors.NewContentError(siteerrors.CodeContentInvalid,
			"cannot render markdown", err)
	}
	return buf.String(), nil
}

// Validate checks identity uniqueness and value ranges across the catalog.
func (c *Catalog) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Site.Name) == "" {
		problems = append(problems, "site.name is required")
	}

	problems = append(problems, duplicates("navigation.items", len(c.Navigation.Items), func(i int) string {
		return c.Navigation.Items[i].ID
	})...)
	problems = append(problems, duplicates("about.highlights", len(c.About.Highlights), func(i int) string {
		return fmt.Sprint(c.About.Highlights[i].ID)
	})...)
	problems = append(problems, duplicates("dishes.items", len(c.Dishes.Items), func(i int) string {
		return fmt.Sprint(c.Dishes.Items[i].ID)
	})...)
	problems = append(problems, duplicates("services.items", len(c.Services.Items), func(i int) string {
		return c.Services.Items[i].ID
	})...)
	problems = append(problems, duplicates("gallery.images", len(c.Gallery.Images), func(i int) string {
		return fmt.Sprint(c.Gallery.Images[i].ID)
	})...)
	problems = append(problems, duplicates("testimonials.items", len(c.Testimonials.Items), func(i int) string {
		return fmt.Sprint(c.Testimonials.Items[i].ID)
	})...)

	for _, d := range c.Dishes.Items {
		if d.Price < 0 {
			problems = append(problems, fmt.Sprintf("dishes.items[%d]: negative price", d.ID))
		}
	}

	for _, img := range c.Gallery.Images {
		if img.Src == "" {
			problems = append(problems, fmt.Sprintf("gallery.images[%d]: src is required", img.ID))
		}
		if img.Width < 0 || img.Height < 0 {
			problems = append(problems, fmt.Sprintf("gallery.images[%d]: negative dimensions", img.ID))
		}
	}

	for _, t := range c.Testimonials.Items {
		if !ValidRating(t.Rating) {
			problems = append(problems, fmt.Sprintf("testimonials.items[%d]: rating %v outside 0..5 in half steps", t.ID, t.Rating))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return siteerrors.NewContentError(siteerrors.CodeContentInvalid,
		"invalid content catalog: "+strings.Join(problems, "; "), nil)
}

// ValidRating reports whether r is in [0, MaxRating] and a multiple of 0.5.
func ValidRating(r float64) bool {
	if r < 0 || r > MaxRating || math.IsNaN(r) {
		return false
	}
	return math.Mod(r*2, 1) == 0
}

func duplicates(list string, n int, key func(int) string) []string {
	seen := make(map[string]bool, n)
	var out []string
	for i := 0; i < n; i++ {
		k := key(i)
		if seen[k] {
			out = append(out, fmt.Sprintf("%s: duplicate id %q", list, k))
		}
		seen[k] = true
	}
	return out
}
