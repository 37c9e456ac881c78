package viewer

import (
	"context"
	"fmt"

	"github.com/taigrr/vitrine/pkg/models"
)

// Progress is a load progress notification in bytes.
type Progress struct {
	Loaded int64
	Total  int64
}

// Percent returns the progress as a whole percentage, or -1 when the total
// is unknown.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return -1
	}
	return int(p.Loaded * 100 / p.Total)
}

// LoadResult is the outcome of a load: a model or an error, never both.
type LoadResult struct {
	Model *models.Model
	Err   error
}

// LoadTask is a model load running in the background. Progress delivers
// zero or more notifications and is closed before Done delivers exactly
// one result.
type LoadTask struct {
	Path     string
	Progress <-chan Progress
	Done     <-chan LoadResult
}

// progressBuffer lets the loader run ahead of a busy render loop.
// Notifications beyond it are dropped.
const progressBuffer = 16

// StartLoad begins loading the GLB at path. Cancel ctx to abandon it.
func StartLoad(ctx context.Context, path string) *LoadTask {
	progress := make(chan Progress, progressBuffer)
	done := make(chan LoadResult, 1)

	loader := models.NewGLTFLoader()
	loader.OnProgress = func(loaded, total int64) {
		select {
		case progress <- Progress{Loaded: loaded, Total: total}:
		default:
		}
	}

	go func() {
		defer close(done)
		res := load(ctx, loader, path)
		close(progress)
		done <- res
	}()

	return &LoadTask{Path: path, Progress: progress, Done: done}
}

// load runs the loader, reporting a panic from a malformed asset as an
// ordinary load error.
func load(ctx context.Context, loader *models.GLTFLoader, path string) (res LoadResult) {
	defer func() {
		if r := recover(); r != nil {
			res = LoadResult{Err: fmt.Errorf("load %s: malformed asset: %v", path, r)}
		}
	}()
	m, err := loader.Load(ctx, path)
	if err != nil {
		return LoadResult{Err: err}
	}
	return LoadResult{Model: m}
}
