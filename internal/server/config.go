package server

import "github.com/raysh454/caselookup/internal/utils"

type Config struct {
	// ListenAddr is the HTTP listen address, e.g. ":3000".
	ListenAddr string

	// CaseURLTemplate turns a case_type/case_number/filing_year body into a
	// locator. See utils.BuildCaseLocator.
	CaseURLTemplate string

	// MaxBatchSize caps the number of lookups accepted on /ws/lookups.
	MaxBatchSize int

	// MaxBodyBytes caps the request body of the lookup routes.
	MaxBodyBytes int64
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:      ":3000",
		CaseURLTemplate: utils.DefaultCaseURLTemplate,
		MaxBatchSize:    50,
		MaxBodyBytes:    1 << 20,
	}
}
