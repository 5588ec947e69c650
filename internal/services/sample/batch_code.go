package sample

import (
	"errors"

	"github.com/jeandelest/Queen-Back-Office/internal/services/integration"
)

// BatchErrorCode is the exit status of the batch loader. The full set of
// statuses shared with the other batch tools is listed, OKWithStop and
// OKTechnicalWarning are never returned here.
type BatchErrorCode int

const (
	OK                  BatchErrorCode = 0
	OKWithStop          BatchErrorCode = 100
	OKFunctionalWarning BatchErrorCode = 200
	OKTechnicalWarning  BatchErrorCode = 201
	KOTechnicalError    BatchErrorCode = 202
	KOFunctionalError   BatchErrorCode = 203
)

// CodeFor maps the outcome of a sample load to its exit status
func CodeFor(err error) BatchErrorCode {
	if err == nil {
		return OK
	}
	var sve *integration.SchemaValidationError
	if errors.As(err, &sve) || IsContentError(err) {
		return KOFunctionalError
	}
	return KOTechnicalError
}
