package geonames

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geonames/internal/cache"
	"github.com/sells-group/geonames/internal/fetcher"
)

// makeArchive builds an in-memory ZIP with the given entries.
func makeArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// fakeFetcher serves canned archives by URL and counts transfers.
// Entry extraction goes through the real ZIP decoder.
type fakeFetcher struct {
	archives map[string][]byte
	calls    int
	err      error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	archive, ok := f.archives[url]
	if !ok {
		return nil, eris.Errorf("unexpected status 404 from %s", url)
	}
	return archive, nil
}

func (f *fakeFetcher) ExtractEntry(archive []byte, name string) ([]byte, error) {
	return fetcher.ExtractEntry(archive, name)
}

// fakeCache is an in-memory Cache with injectable failures.
type fakeCache struct {
	entries  map[string]string
	writes   int
	readErr  error
	writeErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) Read(key string) (string, bool, error) {
	if c.readErr != nil {
		return "", false, c.readErr
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *fakeCache) Write(key, value string) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.writes++
	c.entries[key] = value
	return nil
}

func (c *fakeCache) RemovePrefix(prefix string) error {
	for k := range c.entries {
		if strings.HasPrefix(k, prefix+"/") {
			delete(c.entries, k)
		}
	}
	return nil
}

const gbPostalText = "GB\tCM8\tWitham\tEngland\tENG\tEssex\tE10000012\t\t\t51.792\t0.630\t4\n" +
	"GB\tCM9\tMaldon\tEngland\tENG\tEssex\tE10000012\t\t\t51.735\t0.683\t4\n" +
	"GB\tCO5\tTiptree\tEngland\tENG\tEssex\tE10000012\t\t\t51.845\t0.769\t6\n"

func gbPostalFetcher(t *testing.T) *fakeFetcher {
	t.Helper()
	return &fakeFetcher{archives: map[string][]byte{
		"http://download.geonames.org/export/zip/GB.zip": makeArchive(t, map[string]string{"GB.txt": gbPostalText}),
	}}
}

func TestDatasetURL(t *testing.T) {
	url, err := DatasetURL(CountryGreatBritain, KindPostal)
	require.NoError(t, err)
	assert.Equal(t, "http://download.geonames.org/export/zip/GB.zip", url)

	url, err = DatasetURL(CountryGreatBritainFull, KindPostal)
	require.NoError(t, err)
	assert.Equal(t, "http://download.geonames.org/export/zip/GB_full.csv.zip", url)

	url, err = DatasetURL(CountryGreatBritain, KindGazetteer)
	require.NoError(t, err)
	assert.Equal(t, "https://download.geonames.org/export/dump/GB.zip", url)
}

func TestDatasetURL_GazetteerUnsupportedForExtended(t *testing.T) {
	for _, c := range []Country{CountryGreatBritainFull, CountryUnitedKingdomFull, CountryNetherlandsFull, CountryCanadaFull} {
		_, err := DatasetURL(c, KindGazetteer)
		assert.ErrorIs(t, err, ErrUnsupportedCountry, "country %s", c)
	}
}

func TestLoadPostal_FetchesParsesAndCaches(t *testing.T) {
	f := gbPostalFetcher(t)
	c := newFakeCache()
	loader := NewLoader(f, c, Options{})

	records, err := loader.LoadPostal(t.Context(), CountryGreatBritain)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "CM8", records[0].PostalCode)
	assert.Equal(t, 1, f.calls)
	assert.Contains(t, c.entries, "postal/GB.txt")

	// Second load is served from cache; no new transfer.
	records, err = loader.LoadPostal(t.Context(), CountryGreatBritain)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 1, f.calls)
}

func TestLoadPostal_DisableCache(t *testing.T) {
	f := gbPostalFetcher(t)
	c := newFakeCache()
	loader := NewLoader(f, c, Options{DisableCache: true})

	_, err := loader.LoadPostal(t.Context(), CountryGreatBritain)
	require.NoError(t, err)
	_, err = loader.LoadPostal(t.Context(), CountryGreatBritain)
	require.NoError(t, err)

	// Every load transfers; nothing is written back.
	assert.Equal(t, 2, f.calls)
	assert.Zero(t, c.writes)
	assert.Empty(t, c.entries)
}

func TestLoadPostal_CacheWriteFailureStillReturnsData(t *testing.T) {
	f := gbPostalFetcher(t)
	c := newFakeCache()
	c.writeErr = eris.New("disk full")
	loader := NewLoader(f, c, Options{})

	// A write-back failure after a successful fetch must not discard
	// the already-fetched data.
	records, err := loader.LoadPostal(t.Context(), CountryGreatBritain)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestLoadPostal_CacheReadFailureDegradesToMiss(t *testing.T) {
	f := gbPostalFetcher(t)
	c := newFakeCache()
	c.readErr = eris.New("permission denied")
	c.writeErr = c.readErr
	loader := NewLoader(f, c, Options{})

	records, err := loader.LoadPostal(t.Context(), CountryGreatBritain)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 1, f.calls)
}

func TestLoadPostal_TransferFailure(t *testing.T) {
	f := &fakeFetcher{err: eris.New("connection refused")}
	loader := NewLoader(f, newFakeCache(), Options{})

	_, err := loader.LoadPostal(t.Context(), CountryGreatBritain)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch postal dataset")
}

func TestLoadPostal_MissingArchiveEntry(t *testing.T) {
	f := &fakeFetcher{archives: map[string][]byte{
		"http://download.geonames.org/export/zip/GB.zip": makeArchive(t, map[string]string{"readme.txt": "wrong entry"}),
	}}
	loader := NewLoader(f, newFakeCache(), Options{})

	_, err := loader.LoadPostal(t.Context(), CountryGreatBritain)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadGazetteer(t *testing.T) {
	text := "2633352\tWitham\tWitham\tUitam\t51.8001\t0.6404\tP\tPPL\tGB\t\tENG\n"
	f := &fakeFetcher{archives: map[string][]byte{
		"https://download.geonames.org/export/dump/GB.zip": makeArchive(t, map[string]string{"GB.txt": text}),
	}}
	loader := NewLoader(f, newFakeCache(), Options{})

	records, err := loader.LoadGazetteer(t.Context(), CountryGreatBritain)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Witham", records[0].Name)
}

func TestLoadGazetteer_ExtendedCountryFailsBeforeIO(t *testing.T) {
	f := &fakeFetcher{}
	loader := NewLoader(f, newFakeCache(), Options{})

	_, err := loader.LoadGazetteer(t.Context(), CountryGreatBritainFull)
	assert.ErrorIs(t, err, ErrUnsupportedCountry)
	// Deterministic input-only failure: no transfer was attempted.
	assert.Zero(t, f.calls)
}

func TestInvalidateCache_ForcesRefetch(t *testing.T) {
	// Real on-disk store: invalidation must leave the cache key absent
	// so the next load re-triggers a transfer.
	f := gbPostalFetcher(t)
	store := cache.NewStore(t.TempDir())
	loader := NewLoader(f, store, Options{})

	_, err := loader.LoadPostal(t.Context(), CountryGreatBritain)
	require.NoError(t, err)
	_, err = loader.LoadPostal(t.Context(), CountryGreatBritain)
	require.NoError(t, err)
	assert.Equal(t, 1, f.calls)

	require.NoError(t, loader.InvalidateCache())

	_, err = loader.LoadPostal(t.Context(), CountryGreatBritain)
	require.NoError(t, err)
	assert.Equal(t, 2, f.calls)
}

func TestLoadPostal_EndToEndNearest(t *testing.T) {
	// Load a synthetic country fixture through the full pipeline and
	// query it: the Witham record must win both the nearest and the
	// keyed lookup.
	f := gbPostalFetcher(t)
	store := cache.NewStore(t.TempDir())
	loader := NewLoader(f, store, Options{})

	records, err := loader.LoadPostal(t.Context(), CountryGreatBritain)
	require.NoError(t, err)

	point := Coordinate{Latitude: 51.792, Longitude: 0.630}
	match := Nearest(point, records)
	require.NotNil(t, match)
	assert.Equal(t, "CM8", match.PostalCode)

	loc := LocateByKey("CM8", records)
	require.NotNil(t, loc)
	assert.InDelta(t, 51.792, loc.Latitude, 0.1)
	assert.InDelta(t, 0.630, loc.Longitude, 0.1)
}
