package browser

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testThumb(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func snapshotOf(paths ...string) Snapshot {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return Snapshot{paths: paths, set: set}
}

func TestThumbCache_InsertAndGet(t *testing.T) {
	cache := NewThumbCache()
	cache.Insert(CacheEntry{Path: "/d/a.png", Thumb: testThumb(10, 10), LoadedAtPage: 0})

	entry, ok := cache.Get("/d/a.png")
	require.True(t, ok)
	assert.Equal(t, "/d/a.png", entry.Path)
	assert.True(t, cache.Has("/d/a.png"))
	assert.False(t, cache.Has("/d/b.png"))
}

func TestThumbCache_InsertOverwrites(t *testing.T) {
	cache := NewThumbCache()
	cache.Insert(CacheEntry{Path: "/d/a.png", Thumb: testThumb(10, 10), LoadedAtPage: 0})
	cache.Insert(CacheEntry{Path: "/d/a.png", Thumb: testThumb(20, 20), LoadedAtPage: 3})

	entry, ok := cache.Get("/d/a.png")
	require.True(t, ok)
	assert.Equal(t, 3, entry.LoadedAtPage)
	assert.Equal(t, 20, entry.Thumb.Bounds().Dx())
	assert.Equal(t, 1, cache.Len())
}

func TestThumbCache_PruneDropsDepartedPaths(t *testing.T) {
	cache := NewThumbCache()
	cache.Insert(CacheEntry{Path: "/d/a.png", Thumb: testThumb(1, 1)})
	cache.Insert(CacheEntry{Path: "/d/old.png", Thumb: testThumb(1, 1)})

	cache.Prune(snapshotOf("/d/a.png", "/d/b.jpg"))

	assert.True(t, cache.Has("/d/a.png"))
	assert.False(t, cache.Has("/d/old.png"))
	assert.Equal(t, 1, cache.Len())
}

func TestThumbCache_PruneAgainstEmptySnapshot(t *testing.T) {
	cache := NewThumbCache()
	cache.Insert(CacheEntry{Path: "/d/a.png", Thumb: testThumb(1, 1)})

	cache.Prune(Snapshot{})
	assert.Equal(t, 0, cache.Len())
}
