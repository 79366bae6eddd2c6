package chart

import "errors"

var (
	ErrNoData      = errors.New("chart: no data points to render")
	ErrInvalidPart = errors.New("chart: part must be 1 or 2")
)
