// Package loader implements source.Loader by delegating to file, fs.FS, or
// HTTP strategies. Construction helpers live in the top-level formdoc package.
package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/goliatone/go-formdoc/pkg/source"
)

// Loader resolves sources into raw documents. Remote fetches are off unless
// the options carry an HTTP client or enable the fallback; the request
// timeout lives on the client once it is built.
type Loader struct {
	fs   fs.FS
	http *http.Client
}

var _ source.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options source.LoaderOptions) *Loader {
	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: options.RequestTimeout}
	}

	return &Loader{
		fs:   options.FileSystem,
		http: httpClient,
	}
}

// Load fetches a document from the provided source and wraps it.
func (l *Loader) Load(ctx context.Context, src source.Source) (source.Document, error) {
	if src == nil {
		return source.Document{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case source.KindFile:
		data, err = loadFile(ctx, src.Location())
	case source.KindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case source.KindURL:
		if l.http == nil {
			return source.Document{}, errors.New("loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location())
	default:
		err = errors.New("loader: unsupported source kind")
	}
	if err != nil {
		return source.Document{}, err
	}

	return source.NewDocument(src, data)
}
