package fetcher

type Config struct {
	// MaxConcurrency bounds parallel lookups in FetchBatch.
	MaxConcurrency int
}

func DefaultConfig() Config {
	return Config{MaxConcurrency: 4}
}
