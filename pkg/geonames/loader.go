package geonames

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	postalBaseURL    = "http://download.geonames.org/export/zip"
	gazetteerBaseURL = "https://download.geonames.org/export/dump"
)

// ErrUnsupportedCountry is returned when a gazetteer dataset is
// requested for one of the extended "*_full" countries, which have no
// gazetteer dump upstream. The check runs before any I/O.
var ErrUnsupportedCountry = eris.New("geonames: no gazetteer dataset for extended country")

// DatasetURL resolves the upstream archive URL for a country and kind.
func DatasetURL(country Country, kind Kind) (string, error) {
	switch kind {
	case KindGazetteer:
		if country.Variant() == VariantExtendedCSVOnly {
			return "", eris.Wrapf(ErrUnsupportedCountry, "country %s", country)
		}
		return fmt.Sprintf("%s/%s.zip", gazetteerBaseURL, country), nil
	default:
		if country.Variant() == VariantExtendedCSVOnly {
			return fmt.Sprintf("%s/%s.csv.zip", postalBaseURL, country), nil
		}
		return fmt.Sprintf("%s/%s.zip", postalBaseURL, country), nil
	}
}

// Fetcher fetches an upstream archive and extracts one named entry
// from it. Implemented by internal/fetcher; faked in tests.
type Fetcher interface {
	// Fetch downloads the URL and returns the raw archive bytes.
	Fetch(ctx context.Context, url string) ([]byte, error)
	// ExtractEntry returns the named entry's bytes from a ZIP archive.
	ExtractEntry(archive []byte, name string) ([]byte, error)
}

// Cache persists raw dataset text between runs, keyed by
// "<kind>/<country-id>.txt". Implemented by internal/cache.
type Cache interface {
	// Read returns the cached text and whether it was present.
	Read(key string) (string, bool, error)
	Write(key, value string) error
	RemovePrefix(prefix string) error
}

// Options configures a Loader. The zero value caches through the
// provided Cache.
type Options struct {
	// DisableCache makes every read a miss and skips write-back.
	DisableCache bool
}

// Loader runs the ingestion pipeline: resolve URL, fetch archive,
// extract the dataset text, parse into records, with a cache-first
// fast path. All I/O is blocking with no internal timeout or retry;
// callers wanting deadlines wrap ctx.
type Loader struct {
	fetcher Fetcher
	cache   Cache
	opts    Options
	log     *zap.Logger
}

// NewLoader builds a Loader over the given collaborators.
func NewLoader(fetcher Fetcher, cache Cache, opts Options) *Loader {
	return &Loader{
		fetcher: fetcher,
		cache:   cache,
		opts:    opts,
		log:     zap.L().With(zap.String("component", "geonames.loader")),
	}
}

// LoadPostal fetches and parses the postal dataset for a country.
func (l *Loader) LoadPostal(ctx context.Context, country Country) ([]PostalRecord, error) {
	text, err := l.rawText(ctx, country, KindPostal)
	if err != nil {
		return nil, err
	}

	records, skipped := ParsePostal(text)
	l.logParsed(country, KindPostal, len(records), skipped)
	return records, nil
}

// LoadGazetteer fetches and parses the gazetteer dataset for a
// country. Extended "*_full" countries fail with
// ErrUnsupportedCountry before any I/O.
func (l *Loader) LoadGazetteer(ctx context.Context, country Country) ([]PlaceRecord, error) {
	text, err := l.rawText(ctx, country, KindGazetteer)
	if err != nil {
		return nil, err
	}

	records, skipped := ParseGazetteer(text)
	l.logParsed(country, KindGazetteer, len(records), skipped)
	return records, nil
}

// InvalidateCache removes the persisted raw text for both dataset
// kinds. The next load for any country re-triggers a transfer.
func (l *Loader) InvalidateCache() error {
	for _, kind := range []Kind{KindPostal, KindGazetteer} {
		if err := l.cache.RemovePrefix(kind.String()); err != nil {
			return eris.Wrapf(err, "invalidate %s cache", kind)
		}
	}
	return nil
}

// rawText returns the dataset text for a country and kind, consulting
// the cache first unless caching is disabled. A cache read failure
// degrades to a miss; a write-back failure after a successful fetch is
// logged and the fetched data still returned.
func (l *Loader) rawText(ctx context.Context, country Country, kind Kind) (string, error) {
	url, err := DatasetURL(country, kind)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s.txt", kind, country)

	if !l.opts.DisableCache {
		text, ok, err := l.cache.Read(key)
		if err != nil {
			l.log.Warn("cache read failed, treating as miss",
				zap.String("key", key),
				zap.Error(err),
			)
		} else if ok {
			l.log.Debug("using cached dataset", zap.String("key", key))
			return text, nil
		}
	}

	l.log.Info("downloading dataset",
		zap.String("url", url),
		zap.Stringer("country", country),
		zap.Stringer("kind", kind),
	)
	archive, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", eris.Wrapf(err, "fetch %s dataset for %s", kind, country)
	}

	entry := fmt.Sprintf("%s.txt", country)
	data, err := l.fetcher.ExtractEntry(archive, entry)
	if err != nil {
		return "", eris.Wrapf(err, "extract %s from %s archive", entry, kind)
	}
	text := string(data)

	if !l.opts.DisableCache {
		if err := l.cache.Write(key, text); err != nil {
			// The fetch already succeeded; don't discard its result
			// over a cache failure.
			l.log.Warn("cache write failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	return text, nil
}

func (l *Loader) logParsed(country Country, kind Kind, count, skipped int) {
	if skipped > 0 {
		l.log.Warn("skipped malformed lines",
			zap.Stringer("country", country),
			zap.Stringer("kind", kind),
			zap.Int("skipped", skipped),
		)
	}
	l.log.Debug("parsed dataset",
		zap.Stringer("country", country),
		zap.Stringer("kind", kind),
		zap.Int("records", count),
	)
}
