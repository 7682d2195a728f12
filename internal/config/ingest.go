package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// returns the ingestion defaults used when no YAML file is present
func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		Source: SourceConfig{
			Path: "./data/recetario.pdf",
			Name: "recetario",
			Noise: []string{
				"GASTRONOMIA REGIONAL ARGENTINA",
				"Federación Empresaria Hotelera Gastronómica",
				"FEHGRA",
			},
		},
		Chunking: ChunkingConfig{
			Size:       1500,
			Overlap:    300,
			Separators: []string{"\n\n", "\n", " ", ""},
		},
		Embedding: EmbeddingConfig{
			BatchSize:   64,
			Concurrency: 2,
		},
	}
}

// reads ingestion options from path. a missing file yields the defaults,
// and fields absent from the file keep their default values.
func LoadIngestConfig(path string) (IngestConfig, error) {
	cfg := DefaultIngestConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the operator's CLI flag
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return cfg, fmt.Errorf("failed to read ingest config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse ingest config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c IngestConfig) Validate() error {
	if c.Chunking.Size <= 0 {
		return fmt.Errorf("chunking.size must be positive, got %d", c.Chunking.Size)
	}

	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		return fmt.Errorf("chunking.overlap must be in [0, %d), got %d", c.Chunking.Size, c.Chunking.Overlap)
	}

	if c.Embedding.BatchSize <= 0 {
		return fmt.Errorf("embedding.batch_size must be positive, got %d", c.Embedding.BatchSize)
	}

	if c.Embedding.Concurrency <= 0 {
		return fmt.Errorf("embedding.concurrency must be positive, got %d", c.Embedding.Concurrency)
	}

	return nil
}
