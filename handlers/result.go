package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

type Handler func(http.ResponseWriter, *http.Request) Result

type Result struct {
	Error       error
	Code        int
	Body        string
	ContentType string
	Location    string
}

func Html(body string) Result {
	return Result{
		Code:        http.StatusOK,
		Body:        body,
		ContentType: "text/html; charset=UTF-8",
	}
}

// Redirect carries both a Location header and a refresh page body for
// clients that ignore the header.
func Redirect(location, body string) Result {
	return Result{
		Code:        http.StatusFound,
		Body:        body,
		ContentType: "text/html; charset=UTF-8",
		Location:    location,
	}
}

func NotFound(message string) Result {
	return Result{
		Code:        http.StatusNotFound,
		Body:        message,
		ContentType: "text/plain; charset=UTF-8",
	}
}

func InternalError(err error, message string) Result {
	return Result{
		Error:       errors.Wrap(err, message),
		Code:        http.StatusInternalServerError,
		Body:        "Internal Server Error",
		ContentType: "text/plain; charset=UTF-8",
	}
}

func Json(body any) Result {
	encoded, err := json.Marshal(body)
	if err != nil {
		return InternalError(err, "encode response")
	}
	return Result{
		Code:        http.StatusOK,
		Body:        string(encoded),
		ContentType: "application/json",
	}
}
