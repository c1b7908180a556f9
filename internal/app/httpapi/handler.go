// Package httpapi exposes the REST adapter over the application
// services.
//
// The adapter holds no decision logic of its own: it decodes the
// request, calls exactly one service method, and maps the result onto
// the wire contract. Validation failures answer 400 with an empty body,
// credential failures 401 with an empty body, storage failures 500 with
// a JSON message. Absence on reads and deletes is a successful 200 with
// an empty body.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	app "github.com/chirper-labs/postline/internal/app"
	"github.com/chirper-labs/postline/internal/app/domain/errs"
	"github.com/chirper-labs/postline/internal/app/domain/message"
)

// handler bundles the HTTP endpoints for the application services.
type handler struct {
	app *app.Application
}

// NewHandler returns a router exposing the core REST API.
func NewHandler(application *app.Application) *mux.Router {
	h := &handler{app: application}

	r := mux.NewRouter()
	r.HandleFunc("/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/messages", h.createMessage).Methods(http.MethodPost)
	r.HandleFunc("/messages", h.listMessages).Methods(http.MethodGet)
	r.HandleFunc("/messages/{id}", h.getMessage).Methods(http.MethodGet)
	r.HandleFunc("/messages/{id}", h.deleteMessage).Methods(http.MethodDelete)
	r.HandleFunc("/messages/{id}", h.updateMessage).Methods(http.MethodPatch)
	r.HandleFunc("/accounts/{id}/messages", h.listByAuthor).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	return r
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var payload credentials
	if err := decodeJSON(r.Body, &payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	acct, err := h.app.Accounts.Register(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var payload credentials
	if err := decodeJSON(r.Body, &payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	acct, err := h.app.Accounts.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		var ve *errs.ValidationError
		if errors.As(err, &ve) {
			// Login is the one route that reports the validation reason.
			writeError(w, http.StatusBadRequest, err)
			return
		}
		var ae *errs.AuthError
		if errors.As(err, &ae) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (h *handler) createMessage(w http.ResponseWriter, r *http.Request) {
	var payload message.Message
	if err := decodeJSON(r.Body, &payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	payload.ID = 0 // ids are never taken from the client

	created, err := h.app.Messages.Create(r.Context(), payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (h *handler) listMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.app.Messages.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *handler) getMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	msg, found, err := h.app.Messages.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !found {
		// Absence is a successful "nothing found", not an error.
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (h *handler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	deleted, found, err := h.app.Messages.Delete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

func (h *handler) updateMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var payload struct {
		Text string `json:"message_text"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	updated, err := h.app.Messages.UpdateText(r.Context(), id, payload.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *handler) listByAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	msgs, err := h.app.Messages.GetByAuthor(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}

// writeServiceError maps core error kinds onto the adapter contract:
// ValidationError answers 400 with an empty body, AuthError 401 with an
// empty body, anything else 500 with a JSON message.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var ae *errs.AuthError
	if errors.As(err, &ae) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

func decodeJSON(body io.Reader, dst interface{}) error {
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty request body")
		}
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
