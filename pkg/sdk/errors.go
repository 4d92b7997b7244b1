package scanexplorer

import "github.com/kailas-cloud/scanexplorer/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrParse         = domain.ErrParse
	ErrUnknownOption = domain.ErrUnknownOption
	ErrInvalidValue  = domain.ErrInvalidValue
	ErrPagination    = domain.ErrPagination
	ErrEngine        = domain.ErrEngine
	ErrNotFound      = domain.ErrNotFound
)
