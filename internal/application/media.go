package application

import (
	"context"
	"errors"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/metrics"
	"github.com/oksasatya/go-videotube/pkg/apperror"
)

// uploadAndDiscard uploads a staged file and always removes the local copy, whatever the outcome.
func uploadAndDiscard(ctx context.Context, store MediaStore, file *LocalFile, folder string) (Asset, error) {
	if file == nil {
		return Asset{}, apperror.Validation(folder + " file is required")
	}
	defer func() { _ = os.Remove(file.Path) }()
	if store == nil {
		return Asset{}, apperror.Upstream("media storage is not configured", errors.New("nil media store"))
	}
	asset, err := store.Upload(ctx, *file, folder)
	if err != nil {
		return Asset{}, apperror.Upstream("failed to upload "+folder+" file", err)
	}
	if asset.URL == "" {
		return Asset{}, apperror.Upstream("failed to upload "+folder+" file", errors.New("empty asset url"))
	}
	return asset, nil
}

// discard removes staged files that will not be uploaded.
func discard(files ...*LocalFile) {
	for _, f := range files {
		if f != nil {
			_ = os.Remove(f.Path)
		}
	}
}

// deleteAssets removes stored objects best-effort.
func deleteAssets(ctx context.Context, store MediaStore, logger *logrus.Logger, urls ...string) {
	if store == nil {
		return
	}
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := store.Delete(ctx, url); err != nil {
			bestEffortFailed(logger, "asset_delete", err, logrus.Fields{"url": url})
		}
	}
}

// bestEffortFailed records a side effect that failed without failing the request.
func bestEffortFailed(logger *logrus.Logger, kind string, err error, fields logrus.Fields) {
	metrics.SideEffectFailures.WithLabelValues(kind).Inc()
	if logger == nil {
		return
	}
	logger.WithError(err).WithFields(fields).Warn(kind + " failed")
}
