package orchestrator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-folio/pkg/renderers/vanilla"
)

// DefaultThemeName is the built-in theme registered by NewCatalog.
const DefaultThemeName = "folio"

var (
	// ErrThemeNotFound is returned when a selection names an unknown theme.
	ErrThemeNotFound = errors.New("orchestrator: theme not found")
	// ErrVariantNotFound is returned for an unknown variant of a known theme.
	ErrVariantNotFound = errors.New("orchestrator: theme variant not found")
)

// DefaultManifest describes the built-in theme: dark tokens with a light
// variant, both pointing at the embedded stylesheet and script.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"background":         "#0b0d12",
			"foreground":         "#f2f4f8",
			"muted":              "#151922",
			"muted-foreground":   "#9aa3b2",
			"card":               "#11141b",
			"border":             "#232836",
			"primary":            "#7c5cff",
			"primary-foreground": "#ffffff",
			"accent":             "#22d3ee",
		},
		Templates: vanilla.DefaultPartials(),
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				vanilla.StylesheetAssetKey: vanilla.StylesheetName,
				vanilla.ScriptAssetKey:     vanilla.ScriptName,
			},
		},
		Variants: map[string]theme.Variant{
			"light": {
				Tokens: map[string]string{
					"background":       "#ffffff",
					"foreground":       "#0b0d12",
					"muted":            "#f4f5f8",
					"muted-foreground": "#5b6474",
					"card":             "#ffffff",
					"border":           "#e3e6ee",
					"primary":          "#5b3df5",
				},
			},
		},
	}
}

type manifestRegistrar interface {
	Register(*theme.Manifest) error
}

// Catalog keeps registered manifests and satisfies theme.ThemeSelector.
// Manifests are also registered with a go-theme registry, which validates
// them and rejects duplicates.
type Catalog struct {
	mu        sync.RWMutex
	registry  manifestRegistrar
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*Catalog)(nil)

// NewCatalog returns a Catalog holding the built-in theme plus manifests.
func NewCatalog(manifests ...*theme.Manifest) (*Catalog, error) {
	c := &Catalog{
		registry:  theme.NewRegistry(),
		manifests: make(map[string]*theme.Manifest),
		fallback:  DefaultThemeName,
	}
	for _, manifest := range append([]*theme.Manifest{DefaultManifest()}, manifests...) {
		if err := c.Register(manifest); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds a manifest.
func (c *Catalog) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return errors.New("orchestrator: theme manifest name is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.manifests[manifest.Name]; exists {
		return fmt.Errorf("orchestrator: theme %q already registered", manifest.Name)
	}
	if err := c.registry.Register(manifest); err != nil {
		return fmt.Errorf("orchestrator: register theme %q: %w", manifest.Name, err)
	}
	c.manifests[manifest.Name] = manifest
	return nil
}

// Names lists the registered themes, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.manifests))
	for name := range c.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves name and variant. An empty name selects the built-in
// theme; an empty variant selects the base tokens.
func (c *Catalog) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.fallback
	}
	variant = strings.TrimSpace(variant)

	c.mu.RLock()
	manifest, ok := c.manifests[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %s/%s", ErrVariantNotFound, name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection into what renderers consume: variant
// tokens and templates win over the base manifest, templates fall back to
// fallbacks, and every token becomes a CSS custom property.
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: make(map[string]string, len(fallbacks)),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}
	for key, path := range fallbacks {
		cfg.Partials[key] = path
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}
	variant := manifest.Variants[selection.Variant]

	mergeInto(cfg.Tokens, manifest.Tokens, variant.Tokens)
	mergeInto(cfg.Partials, manifest.Templates, variant.Templates)
	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}
	files := map[string]string{}
	mergeInto(files, manifest.Assets.Files, variant.Assets.Files)
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
	return cfg
}

func mergeInto(dst map[string]string, sources ...map[string]string) {
	for _, src := range sources {
		for key, value := range src {
			if strings.TrimSpace(value) != "" {
				dst[key] = value
			}
		}
	}
}
