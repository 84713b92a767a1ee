//go:build ORT || ALL

package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

// Transformer scores text with a fine-tuned transformer classifier running
// on ONNX Runtime.
type Transformer struct {
	name     string
	mu       sync.Mutex
	pipeline *pipelines.TextClassificationPipeline
}

// NewTransformer downloads the model if it is not cached and opens an ONNX
// Runtime session. The session lives for the rest of the process.
func NewTransformer(_ context.Context, cfg TransformerConfig) (*Transformer, error) {
	if err := os.MkdirAll(cfg.Dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create model dir: %w", err)
	}

	modelPath := filepath.Join(cfg.Dir, strings.ReplaceAll(cfg.Model, "/", "_"))
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("model not found, downloading", "model", cfg.Model, "dir", cfg.Dir)
		modelPath, err = hugot.DownloadModel(cfg.Model, cfg.Dir, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", cfg.Model, err)
		}
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("create onnx runtime session: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentPipeline",
	})
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("create text classification pipeline: %w", err)
	}

	return &Transformer{name: "transformer:" + cfg.Model, pipeline: pipeline}, nil
}

func (t *Transformer) Name() string { return t.name }

func (t *Transformer) Score(ctx context.Context, texts []string) ([]Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	out, err := t.pipeline.RunPipeline(texts)
	t.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	scores := make([]Score, len(out.ClassificationOutputs))
	for i, classes := range out.ClassificationOutputs {
		if len(classes) == 0 {
			scores[i] = Score{Label: LabelNeutral}
			continue
		}
		best := classes[0]
		for _, c := range classes[1:] {
			if c.Score > best.Score {
				best = c
			}
		}
		scores[i] = Score{Label: NormalizeLabel(best.Label), Confidence: float64(best.Score)}
	}
	return scores, nil
}
