package report

import "errors"

var (
	ErrNoDataFound = errors.New("no monthly summary rows provided")
)
