package translate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxgate/voxgate/internal/providers"
)

type fakeTranslator struct {
	lang string
}

func (t fakeTranslator) Translate(_ context.Context, text string) (string, error) {
	return t.lang + ":" + text, nil
}

type recordingFactory struct {
	mu     sync.Mutex
	builds map[string]int
	err    error
}

func (f *recordingFactory) NewTranslator(lang string) (providers.TextTranslator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.builds == nil {
		f.builds = make(map[string]int)
	}
	f.builds[lang]++
	if f.err != nil {
		return nil, f.err
	}
	return fakeTranslator{lang: lang}, nil
}

func (f *recordingFactory) buildCount(lang string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.builds[lang]
}

func TestRegistryLazyBuild(t *testing.T) {
	factory := &recordingFactory{}
	reg := NewRegistry(factory, []string{"es", "fr"})

	require.Zero(t, factory.buildCount("es"), "translators must not be built until first use")

	tr, err := reg.Get("es")
	require.NoError(t, err)
	out, err := tr.Translate(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, "es:hello", out)

	// Repeated lookups reuse the cached instance.
	for i := 0; i < 5; i++ {
		_, err := reg.Get("es")
		require.NoError(t, err)
	}
	require.Equal(t, 1, factory.buildCount("es"))
	require.Zero(t, factory.buildCount("fr"))
}

func TestRegistryNormalizesLanguage(t *testing.T) {
	factory := &recordingFactory{}
	reg := NewRegistry(factory, []string{"es"})

	_, err := reg.Get(" ES ")
	require.NoError(t, err)
	_, err = reg.Get("es")
	require.NoError(t, err)
	require.Equal(t, 1, factory.buildCount("es"))
}

func TestRegistryUnsupportedLanguage(t *testing.T) {
	factory := &recordingFactory{}
	reg := NewRegistry(factory, []string{"es"})

	require.False(t, reg.Supported("xx"))
	_, err := reg.Get("xx")
	require.Error(t, err)
	require.Zero(t, factory.buildCount("xx"))
}

func TestRegistryFactoryError(t *testing.T) {
	factory := &recordingFactory{err: errors.New("no such model")}
	reg := NewRegistry(factory, []string{"es"})

	_, err := reg.Get("es")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no such model")
}

func TestRegistryConcurrentGetBuildsOnce(t *testing.T) {
	factory := &recordingFactory{}
	reg := NewRegistry(factory, []string{"de"})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reg.Get("de")
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	require.Equal(t, 1, factory.buildCount("de"))
}

func TestRegistryLanguagesSorted(t *testing.T) {
	reg := NewRegistry(&recordingFactory{}, []string{"fr", "de", "es"})
	require.Equal(t, []string{"de", "es", "fr"}, reg.Languages())
}
