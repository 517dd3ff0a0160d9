package style

import "fmt"

// Registry holds the color schemes and background styles available to a run.
type Registry struct {
	schemes     map[string][]string
	backgrounds map[string]Background
}

// NewRegistry returns a registry seeded with the built-in presets.
func NewRegistry() *Registry {
	r := &Registry{
		schemes:     make(map[string][]string, len(ColorSchemes)),
		backgrounds: make(map[string]Background, len(BackgroundStyles)),
	}
	for name, colors := range ColorSchemes {
		r.schemes[name] = append([]string(nil), colors...)
	}
	for name, bg := range BackgroundStyles {
		r.backgrounds[name] = bg
	}
	return r
}

// AddScheme registers or replaces a color scheme after validating its colors.
func (r *Registry) AddScheme(name string, colors []string) error {
	if _, err := ParsePalette(colors); err != nil {
		return fmt.Errorf("color scheme %q: %w", name, err)
	}
	r.schemes[name] = append([]string(nil), colors...)
	return nil
}

// AddBackground registers or replaces a background style.
func (r *Registry) AddBackground(name string, bg Background) {
	r.backgrounds[name] = bg
}

// HasScheme reports whether a scheme is registered.
func (r *Registry) HasScheme(name string) bool {
	_, ok := r.schemes[name]
	return ok
}

// HasBackground reports whether a background style is registered.
func (r *Registry) HasBackground(name string) bool {
	_, ok := r.backgrounds[name]
	return ok
}

// Schemes returns the registered scheme names, built-ins first.
func (r *Registry) Schemes() []string {
	return SchemeNames(r.schemes)
}

// Backgrounds returns the registered background style names.
func (r *Registry) Backgrounds() []string {
	return BackgroundNames(r.backgrounds)
}

// Palette returns the palette for a scheme, falling back to DefaultScheme.
func (r *Registry) Palette(scheme string) Palette {
	colors, ok := r.schemes[scheme]
	if !ok {
		colors = r.schemes[DefaultScheme]
	}
	p, err := ParsePalette(colors)
	if err != nil {
		// Built-ins always parse and custom schemes are checked in AddScheme.
		panic(err)
	}
	return p
}

// Colors returns n colors for a scheme, extending it by gradient if short.
func (r *Registry) Colors(scheme string, n int) Palette {
	return r.Palette(scheme).Extend(n)
}

// Background returns the named style, falling back to DefaultBackground.
func (r *Registry) Background(name string) Background {
	if bg, ok := r.backgrounds[name]; ok {
		return bg
	}
	return r.backgrounds[DefaultBackground]
}

// Lookup validates that both names are registered.
func (r *Registry) Lookup(scheme, background string) error {
	if !r.HasScheme(scheme) {
		return fmt.Errorf("%w: %q (available: %v)", ErrUnknownScheme, scheme, r.Schemes())
	}
	if !r.HasBackground(background) {
		return fmt.Errorf("%w: %q (available: %v)", ErrUnknownStyle, background, r.Backgrounds())
	}
	return nil
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry of built-in presets.
func Default() *Registry {
	return defaultRegistry
}
