package echoapi

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edtrack/core"
)

const (
	idParam   = "id"
	fileField = "file"

	errNotAnInteger = "value is not a valid integer"
	errFileRequired = "this field is required"
)

// bindPathID parses the `:id` path parameter.
func bindPathID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(idParam), 10, 64)
	if err != nil {
		return 0, core.NewValidationError(err, core.FieldError{Field: idParam, Error: errNotAnInteger})
	}
	return id, nil
}

// bindUpload returns the multipart file sent under field.
func bindUpload(ctx echo.Context, field string) (*multipart.FileHeader, error) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, core.NewValidationError(err, core.FieldError{Field: field, Error: errFileRequired})
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form").SetInternal(err)
	}
	return fh, nil
}
