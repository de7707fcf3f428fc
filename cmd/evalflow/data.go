package main

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/spacesedan/evalflow/internal/cache"
	"github.com/spacesedan/evalflow/internal/loader"
	"github.com/spacesedan/evalflow/internal/models"
)

func (a *app) loadEvaluations(ctx context.Context, path string) ([]models.RecodedRecord, error) {
	l := cache.Loader[[]models.RecodedRecord]{
		Cache:  a.cache,
		Source: "evaluations:" + filepath.Base(path),
		Parse: func(content []byte) ([]models.RecodedRecord, error) {
			table, err := loader.ParseTable(path, content)
			if err != nil {
				return nil, err
			}
			return loader.Evaluations(table)
		},
	}
	return load(ctx, l, path)
}

func (a *app) loadSales(ctx context.Context, path string) ([]models.Sale, error) {
	l := cache.Loader[[]models.Sale]{
		Cache:  a.cache,
		Source: "sales:" + filepath.Base(path),
		Parse: func(content []byte) ([]models.Sale, error) {
			table, err := loader.ParseTable(path, content)
			if err != nil {
				return nil, err
			}
			return loader.Sales(table)
		},
	}
	return load(ctx, l, path)
}

func load[T any](ctx context.Context, l cache.Loader[T], path string) (T, error) {
	var zero T
	content, err := loader.ReadFile(path)
	if err != nil {
		return zero, err
	}

	v, hit, err := l.Load(ctx, content)
	if err != nil {
		return zero, err
	}
	slog.Info("[CLI] Loaded data file",
		slog.String("path", path),
		slog.String("size", humanize.Bytes(uint64(len(content)))),
		slog.Bool("cached", hit))
	return v, nil
}
