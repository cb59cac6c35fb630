package store

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/storage"
)

// Load reads every markdown file from the provider and builds a Store as one
// atomic batch. Documents with a malformed metadata block are skipped and
// logged; the batch continues. I/O failures abort the whole load with
// apperr.ErrLoadFailure so callers never see a partial set.
func Load(provider storage.Provider, logger *slog.Logger, now func() time.Time) (*Store, error) {
	paths, err := provider.List()
	if err != nil {
		return nil, fmt.Errorf("store: %w: %v", apperr.ErrLoadFailure, err)
	}

	posts := make([]*models.Post, 0, len(paths))
	slugs := make(map[string]string, len(paths))

	for _, path := range paths {
		data, err := provider.Read(path)
		if err != nil {
			return nil, fmt.Errorf("store: %w: read %s: %v", apperr.ErrLoadFailure, path, err)
		}

		slug := parser.SlugFromFilename(path)
		if prev, dup := slugs[slug]; dup {
			logger.Warn("load: duplicate slug, skipping",
				slog.String("slug", slug),
				slog.String("path", path),
				slog.String("first", prev))
			continue
		}

		res, err := parser.Parse(slug, data, now())
		if err != nil {
			var perr *parser.ParseError
			if errors.As(err, &perr) {
				logger.Warn("load: malformed metadata, skipping",
					slog.String("path", path),
					slog.String("error", err.Error()))
				continue
			}
			return nil, fmt.Errorf("store: %w: parse %s: %v", apperr.ErrLoadFailure, path, err)
		}

		slugs[slug] = path
		posts = append(posts, &models.Post{
			Slug:     slug,
			RawBody:  res.RawBody,
			Body:     res.Body,
			Metadata: res.Metadata,
			Media:    res.Media,
			Checksum: checksum.Sum(data),
		})
	}

	st, err := New(posts)
	if err != nil {
		return nil, fmt.Errorf("store: %w: %v", apperr.ErrLoadFailure, err)
	}
	logger.Info("load: content loaded", slog.Int("documents", st.Len()))
	return st, nil
}
