package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/smart-wardrobe/internal/domain/wardrobe"
	apperrors "github.com/yanqian/smart-wardrobe/pkg/errors"
)

const codeInternal = "internal_error"

// codeStatus maps wardrobe error codes onto response statuses.
var codeStatus = map[string]int{
	wardrobe.CodeInvalidInput:     http.StatusBadRequest,
	wardrobe.CodeNotFound:         http.StatusNotFound,
	wardrobe.CodeTransportFailure: http.StatusBadGateway,
}

// HTTPError is the console's error response: a status plus a wardrobe error code.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// codedError builds an HTTPError whose status follows from code.
// Unknown codes answer 500.
func codedError(code, message string, err error) *HTTPError {
	status, ok := codeStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func invalidInput(message string, err error) *HTTPError {
	return codedError(wardrobe.CodeInvalidInput, message, err)
}

func internalError(message string, err error) *HTTPError {
	return codedError(codeInternal, message, err)
}

// asHTTPError resolves any error into a response. AppErrors keep their code
// and message; anything else is reported as an internal error.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if _, known := codeStatus[appErr.Code]; known {
			return codedError(appErr.Code, appErr.Message, err)
		}
	}
	return internalError("something went wrong", err)
}

func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
