package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"takeout/internal/archive"
	"takeout/internal/catalog"
	"takeout/internal/resolve"
	"takeout/internal/thumb"
	"takeout/internal/upload"
)

const thumbnailBox = 512

// UploadOptions tune what an upload batch sends alongside the media bytes.
type UploadOptions struct {
	IncludeMetadata bool
	Thumbnails      bool
	ThumbnailsOnly  bool
}

// Uploader pushes assembled albums to a remote storage provider. Unlike
// export, uploads always flatten: every blob lands at
// <prefix><album>/<basename> regardless of where it sat inside the archive.
type Uploader struct {
	Cat      *catalog.Catalog
	Resolver *resolve.Resolver
	Reader   archive.Reader
	Provider upload.Provider
	Prefix   string
	Log      *slog.Logger

	AlbumProgress ProgressFunc
	FileProgress  ProgressFunc
}

func NewUploader(cat *catalog.Catalog, resolver *resolve.Resolver, reader archive.Reader, provider upload.Provider, prefix string, log *slog.Logger) *Uploader {
	if log == nil {
		log = slog.Default()
	}
	return &Uploader{Cat: cat, Resolver: resolver, Reader: reader, Provider: provider, Prefix: prefix, Log: log}
}

// Upload sends the assembled file set of every named album. Thumbnails are
// generated at a 512px bounding box under a thumb- name prefix; thumbnail
// failures never fail the original. The album manifest is uploaded last as
// <album>/manifest.json. A batch runs to completion; ctx exists for the
// provider SDK, not for mid-batch cancellation.
func (u *Uploader) Upload(ctx context.Context, albumNames []string, opts UploadOptions) (Stats, error) {
	stats := newStats()

	for i, albumName := range albumNames {
		if u.AlbumProgress != nil {
			u.AlbumProgress(i+1, len(albumNames), albumName)
		}

		files, supplemental, ok := assemble(u.Cat, u.Resolver, albumName, opts.IncludeMetadata)
		if !ok {
			u.Log.Warn("unknown album, skipping", "album", albumName)
			stats.recordSkip(nil)
			continue
		}

		as := stats.albumStats(albumName)
		manifest := newManifest(albumName)

		for j, ref := range files {
			if u.FileProgress != nil {
				u.FileProgress(j+1, len(files), albumName)
			}

			base := ref.Basename()
			destination := upload.SanitizePath(u.Prefix + albumName + "/" + base)

			data, err := u.Reader.ReadFile(ref.Archive, ref.Path)
			if err != nil {
				stats.recordError(as, ErrorDetail{Album: albumName, File: ref.Path, Destination: destination, Cause: err.Error()})
				continue
			}

			if !opts.ThumbnailsOnly {
				if err := u.Provider.Upload(ctx, data, destination, upload.ContentType(base)); err != nil {
					stats.recordError(as, ErrorDetail{Album: albumName, File: ref.Path, Destination: destination, Cause: err.Error()})
					continue
				}
				stats.recordFile(as, int64(len(data)))
			}

			if (opts.Thumbnails || opts.ThumbnailsOnly) && archive.IsImage(ref.Path) {
				u.uploadThumbnail(ctx, as, &stats, albumName, ref, data, opts.ThumbnailsOnly)
			}

			if archive.IsMedia(ref.Path) {
				manifest.Entries = append(manifest.Entries,
					manifestEntry(u.Reader, supplemental, ref, base, destination))
			}
		}

		if err := u.uploadManifest(ctx, albumName, manifest); err != nil {
			u.Log.Warn("manifest upload failed", "album", albumName, "error", err)
		}
		stats.Albums++
	}

	return stats, nil
}

// uploadThumbnail is best-effort in thumbnail mode and counted in
// thumbnails-only mode, where the thumbnail is the payload.
func (u *Uploader) uploadThumbnail(ctx context.Context, as *AlbumStats, stats *Stats, albumName string, ref archive.Ref, data []byte, counted bool) {
	base := ref.Basename()
	result, err := thumb.Generate(data, path.Ext(base), thumbnailBox)
	if err != nil || result.Empty() {
		if err != nil {
			u.Log.Debug("thumbnail generation failed", "file", ref.Path, "error", err)
		}
		return
	}

	destination := upload.SanitizePath(u.Prefix + albumName + "/thumb-" + base)
	if err := u.Provider.Upload(ctx, result.Data, destination, result.ContentType); err != nil {
		if counted {
			stats.recordError(as, ErrorDetail{Album: albumName, File: ref.Path, Destination: destination, Cause: err.Error()})
		} else {
			u.Log.Debug("thumbnail upload failed", "destination", destination, "error", err)
		}
		return
	}
	if counted {
		stats.recordFile(as, int64(len(result.Data)))
	}
}

func (u *Uploader) uploadManifest(ctx context.Context, albumName string, manifest Manifest) error {
	data, err := manifest.encode()
	if err != nil {
		return err
	}
	destination := upload.SanitizePath(u.Prefix + albumName + "/" + manifestName)
	return u.Provider.Upload(ctx, data, destination, "application/json")
}

// UploadMatching sends every archive entry whose path matches re, preserving
// the sanitized archive path under the prefix. JSON sidecars are excluded
// unless IncludeMetadata is set.
func (u *Uploader) UploadMatching(ctx context.Context, re *regexp.Regexp, opts UploadOptions) (Stats, error) {
	stats := newStats()

	var matched []archive.Ref
	for _, h := range u.Cat.Archives {
		for _, name := range u.Cat.Entries(h) {
			if strings.HasSuffix(name, "/") || !re.MatchString(name) {
				continue
			}
			if !opts.IncludeMetadata && archive.Classify(name) == archive.KindJSON {
				continue
			}
			matched = append(matched, archive.Ref{Archive: h, Path: name})
		}
	}
	stats.TotalMatched = len(matched)

	for i, ref := range matched {
		if u.FileProgress != nil {
			u.FileProgress(i+1, len(matched), "")
		}

		destination := upload.SanitizePath(u.Prefix + ref.Path)
		data, err := u.Reader.ReadFile(ref.Archive, ref.Path)
		if err != nil {
			stats.recordError(nil, ErrorDetail{File: fmt.Sprintf("%s!%s", ref.Archive.Name, ref.Path), Destination: destination, Cause: err.Error()})
			continue
		}
		if err := u.Provider.Upload(ctx, data, destination, upload.ContentType(ref.Path)); err != nil {
			stats.recordError(nil, ErrorDetail{File: fmt.Sprintf("%s!%s", ref.Archive.Name, ref.Path), Destination: destination, Cause: err.Error()})
			continue
		}
		stats.recordFile(nil, int64(len(data)))
	}

	return stats, nil
}
