package domain

import "errors"

// ErrTaxonomyUnavailable marks a failed taxonomy load. Classification cannot
// run without the reference set, so callers must treat it as fatal for that
// stage while keeping the aggregate exportable.
var ErrTaxonomyUnavailable = errors.New("taxonomy unavailable")

// ErrSchemaViolation marks a classification response that does not follow the
// agreed contract, such as a missing category list key.
var ErrSchemaViolation = errors.New("classification schema violation")
