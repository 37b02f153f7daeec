package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type LogWriter struct {
	logger *slog.Logger
	rw     http.ResponseWriter
	r      *http.Request
}

func NewLogWriter(l *slog.Logger, rw http.ResponseWriter, r *http.Request) *LogWriter {
	return &LogWriter{l, rw, r}
}

func (l *LogWriter) Write(r Response) {
	l.rw.Header().Set("Content-Type", "application/json")
	l.rw.WriteHeader(r.Status)
	if err := json.NewEncoder(l.rw).Encode(r.Body); err != nil {
		l.logger.Error("failed to write json to http.ResponseWriter", "err", err)
	}
}

type ServerErrorResponser interface {
	ServerErrorResponse() (int, string)
}

func (w *LogWriter) WriteError(err error) {
	errResp := ErrorResponse{
		Status:   http.StatusInternalServerError,
		ErrorMsg: "Something went wrong",
	}

	var apiError ServerErrorResponser
	if errors.As(err, &apiError) {
		errResp.Status, errResp.ErrorMsg = apiError.ServerErrorResponse()
	}

	w.Write(errResp.AsResponse())
}
