// Package dataset loads the parcel attribute table and the parcel boundaries,
// and merges them into the immutable Base every request reads from.
package dataset

import "errors"

// Startup errors. They are wrapped with the offending path or identifier.
var (
	ErrSourceUnreadable    = errors.New("data source unreadable")
	ErrUnsupportedFormat   = errors.New("unsupported tabular format")
	ErrMissingJoinKey      = errors.New("identifier column missing")
	ErrSchemaMismatch      = errors.New("no recognised attribute columns")
	ErrDuplicateID         = errors.New("duplicate parcel identifier")
	ErrUnsupportedCRS      = errors.New("unsupported coordinate reference system")
	ErrUnsupportedGeometry = errors.New("boundary geometry must be a Polygon or MultiPolygon")
	ErrEmptyMerge          = errors.New("no parcel has both attributes and a boundary")
)
