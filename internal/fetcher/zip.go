package fetcher

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/rotisserie/eris"
)

// ExtractEntry returns the named entry's bytes from an in-memory ZIP
// archive. The upstream dataset archives hold exactly one interesting
// file ("<country-id>.txt"), so the archive is decoded in memory
// rather than staged on disk.
func (f *HTTPFetcher) ExtractEntry(archive []byte, name string) ([]byte, error) {
	return ExtractEntry(archive, name)
}

// ExtractEntry extracts a single entry from ZIP archive bytes by name.
func ExtractEntry(archive []byte, name string) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, eris.Wrap(err, "zip: open archive")
	}

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, eris.Wrapf(err, "zip: open entry %s", name)
		}
		defer rc.Close() //nolint:errcheck

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, eris.Wrapf(err, "zip: read entry %s", name)
		}
		return data, nil
	}

	return nil, eris.Errorf("zip: entry %q not found in archive", name)
}
