package provider

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_NilRandReturnsFirstExemplar(t *testing.T) {
	p := NewMockProvider(nil)

	analysis, err := p.AnalyzeImage(context.Background(), []byte("x"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, exemplarAnalyses[0].WineName, analysis.WineName)
}

func TestMockProvider_SeededRandIsDeterministic(t *testing.T) {
	first := NewMockProvider(rand.New(rand.NewSource(42)))
	second := NewMockProvider(rand.New(rand.NewSource(42)))

	for i := 0; i < 10; i++ {
		a, err := first.AnalyzeImage(context.Background(), []byte("x"), "image/jpeg")
		require.NoError(t, err)
		b, err := second.AnalyzeImage(context.Background(), []byte("x"), "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, a.WineName, b.WineName)
	}
}

func TestMockProvider_ExemplarsAreComplete(t *testing.T) {
	// Every exemplar must carry all the signals a rich analysis has, so
	// development mode exercises the full scoring path.
	for _, ex := range exemplarAnalyses {
		assert.NotEmpty(t, ex.WineName)
		assert.NotEmpty(t, ex.Producer)
		assert.NotEmpty(t, ex.Vintage)
		assert.NotEmpty(t, ex.Region)
		assert.NotEmpty(t, ex.GrapeVarieties)
		assert.NotEmpty(t, ex.AlcoholContent)
		assert.NotEmpty(t, ex.ExtractedText)
	}
}

func TestMockProvider_ConcurrentCalls(t *testing.T) {
	// One seeded instance serves all requests in development mode, so
	// parallel draws from the shared rand source must be safe (run with
	// -race to verify).
	p := NewMockProvider(rand.New(rand.NewSource(1)))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				analysis, err := p.AnalyzeImage(context.Background(), []byte("x"), "image/jpeg")
				assert.NoError(t, err)
				assert.NotEmpty(t, analysis.WineName)
			}
		}()
	}
	wg.Wait()
}

func TestMockProvider_ReturnsCopies(t *testing.T) {
	p := NewMockProvider(nil)

	a, err := p.AnalyzeImage(context.Background(), []byte("x"), "image/jpeg")
	require.NoError(t, err)

	a.GrapeVarieties[0] = "mutated"
	a.AdditionalInfo.WineType = "mutated"

	b, err := p.AnalyzeImage(context.Background(), []byte("x"), "image/jpeg")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", b.GrapeVarieties[0])
	assert.NotEqual(t, "mutated", b.AdditionalInfo.WineType)
}
