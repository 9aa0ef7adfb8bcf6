package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aseptimu/shortyurl/internal/app/service"
	"github.com/aseptimu/shortyurl/internal/app/store"
	"github.com/aseptimu/shortyurl/internal/app/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ExampleURLService показывает полный цикл: сокращение, просмотр без учёта и переход.
func ExampleURLService() {
	st := store.NewStore()
	shortener := service.NewURLService(st)
	getter := service.NewGetURLService(st)
	ctx := context.Background()

	code, err := shortener.ShortenURL(ctx, "https://example.com")
	fmt.Println("valid code:", utils.IsShortCode(code, service.ShortURLLength), "err:", err)

	target, _ := getter.LookupURL(ctx, code)
	fmt.Println("cli:", target)

	target, _ = getter.ResolveURL(ctx, code)
	stats, _ := getter.GetStats(ctx, code)
	fmt.Println("redirect:", target, "clicks:", stats.Clicks)

	// Output:
	// valid code: true err: <nil>
	// cli: https://example.com
	// redirect: https://example.com clicks: 1
}

func TestResolveCountsEachVisit(t *testing.T) {
	st := store.NewStore()
	shortener := service.NewURLService(st)
	getter := service.NewGetURLService(st)
	ctx := context.Background()

	code, err := shortener.ShortenURL(ctx, "https://example.com/a")
	require.NoError(t, err)

	const visits = 7
	for i := 0; i < visits; i++ {
		target, err := getter.ResolveURL(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a", target)
	}
	for i := 0; i < 5; i++ {
		_, err := getter.LookupURL(ctx, code)
		require.NoError(t, err)
	}

	stats, err := getter.GetStats(ctx, code)
	require.NoError(t, err)
	assert.EqualValues(t, visits, stats.Clicks)
}

func TestGeneratedCodesAreUnique(t *testing.T) {
	st := store.NewStore()
	shortener := service.NewURLService(st)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		code, err := shortener.ShortenURL(ctx, fmt.Sprintf("https://example.com/%d", i))
		require.NoError(t, err)
		_, dup := seen[code]
		require.False(t, dup, "duplicate code %q", code)
		seen[code] = struct{}{}
	}
}
