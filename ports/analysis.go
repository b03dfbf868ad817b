package ports

import (
	"context"

	"sparcrar/domain/rar"
	"sparcrar/internal/analysis"
)

// DatasetLoaderPort loads the observation table in full or not at all
type DatasetLoaderPort interface {
	Load() (*rar.Dataset, error)
}

// FigureRendererPort turns a finished run into image files
type FigureRendererPort interface {
	Render(ctx context.Context, run *analysis.Run) ([]string, error)
}
