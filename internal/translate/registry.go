// Package translate owns the per-language translator registry: a lazily
// populated, mutex-guarded mapping from language code to a built translator.
package translate

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/voxgate/voxgate/internal/providers"
)

// Registry builds translators on first use and keeps them for the life of
// the process. Entries are never evicted; at most one translator exists per
// language.
type Registry struct {
	factory providers.TranslatorFactory
	allowed map[string]struct{}

	mu    sync.Mutex
	cache map[string]providers.TextTranslator
}

// NewRegistry constructs a registry restricted to the given language codes.
func NewRegistry(factory providers.TranslatorFactory, languages []string) *Registry {
	allowed := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		allowed[normalize(lang)] = struct{}{}
	}
	return &Registry{
		factory: factory,
		allowed: allowed,
		cache:   make(map[string]providers.TextTranslator),
	}
}

// Supported reports whether lang is in the configured language set.
func (r *Registry) Supported(lang string) bool {
	_, ok := r.allowed[normalize(lang)]
	return ok
}

// Languages returns the configured language codes, sorted.
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.allowed))
	for lang := range r.allowed {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Get returns the translator for lang, building it on first use. The build
// happens under the registry lock so concurrent first requests for the same
// language cannot create duplicates.
func (r *Registry) Get(lang string) (providers.TextTranslator, error) {
	lang = normalize(lang)
	if _, ok := r.allowed[lang]; !ok {
		return nil, fmt.Errorf("translate: unsupported language %q", lang)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.cache[lang]; ok {
		return t, nil
	}
	t, err := r.factory.NewTranslator(lang)
	if err != nil {
		return nil, fmt.Errorf("translate: build translator for %q: %w", lang, err)
	}
	r.cache[lang] = t
	return t, nil
}

func normalize(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}
