package config

import "time"

type Config struct {
	DatabaseURL        string
	Environment        string
	Port               string
	ChatTimeout        time.Duration
	RateLimit          string
	CORSAllowedOrigins []string
	LogFile            string
}

// options for the book ingestion pipeline, read from YAML
type IngestConfig struct {
	Source    SourceConfig    `yaml:"source"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Embedding EmbeddingConfig `yaml:"embedding"`
}

type SourceConfig struct {
	// PDF file or directory of extracted .txt/.md pages
	Path string `yaml:"path"`
	// label stored with every chunk
	Name string `yaml:"name"`
	// repeated header/footer strings stripped from every page
	Noise []string `yaml:"noise"`
}

type ChunkingConfig struct {
	Size       int      `yaml:"size"`
	Overlap    int      `yaml:"overlap"`
	Separators []string `yaml:"separators"`
}

type EmbeddingConfig struct {
	BatchSize   int `yaml:"batch_size"`
	Concurrency int `yaml:"concurrency"`
}
