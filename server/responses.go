package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wudi/noticepdf/observability"
)

// Message is the JSON body of every non-PDF response.
type Message struct {
	Type    string `json:"type"` // "error", "ok"
	Message string `json:"message"`
	Code    int    `json:"code"` // application-level code
}

// Application codes carried in Message.Code.
const (
	CodeBadRequest  = 1001
	CodeTooLarge    = 1002
	CodeRateLimited = 1003
	CodeRender      = 2001
	CodeInternal    = 2002
)

func encodeWriteJSON(w http.ResponseWriter, status int, payload any, log observability.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("write json response", observability.Error("error", err))
	}
}

func writeError(w http.ResponseWriter, status, code int, msg string, log observability.Logger) {
	encodeWriteJSON(w, status, Message{Type: "error", Message: msg, Code: code}, log)
}

func writePDF(w http.ResponseWriter, filename string, data []byte, log observability.Logger) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error("write pdf response", observability.Error("error", err))
	}
}
