package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/names"
	"github.com/vanshika/degrees/internal/present"
	"github.com/vanshika/degrees/internal/search"
)

// DegreesAPI is the service surface the HTTP handlers call.
type DegreesAPI interface {
	Connect(ctx context.Context, sourceName, targetName string, chooser names.Chooser) (domain.Connection, error)
	ConnectIDs(ctx context.Context, sourceID, targetID string) (domain.Connection, error)
	Person(id string) (domain.Person, bool)
	SearchPeople(name string) []domain.Person
}

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger  *slog.Logger
	service DegreesAPI
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc DegreesAPI) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		service: svc,
	}
}

type peopleResponse struct {
	Name   string               `json:"name"`
	People []present.PersonView `json:"people"`
}

type ambiguousResponse struct {
	Error      string               `json:"error"`
	Name       string               `json:"name"`
	Candidates []present.PersonView `json:"candidates"`
}

func (h *APIHandlers) searchPeople(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	response := peopleResponse{Name: name, People: []present.PersonView{}}
	for _, p := range h.service.SearchPeople(name) {
		response.People = append(response.People, present.NewPersonView(p))
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) getPerson(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	person, ok := h.service.Person(id)
	if !ok {
		writeError(w, http.StatusNotFound, "person not found")
		return
	}
	respondJSON(w, http.StatusOK, present.NewPersonView(person))
}

func (h *APIHandlers) degrees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sourceID, targetID := strings.TrimSpace(q.Get("sourceId")), strings.TrimSpace(q.Get("targetId"))
	source, target := strings.TrimSpace(q.Get("source")), strings.TrimSpace(q.Get("target"))

	var (
		conn domain.Connection
		err  error
	)
	switch {
	case sourceID != "" && targetID != "":
		conn, err = h.service.ConnectIDs(r.Context(), sourceID, targetID)
	case source != "" && target != "":
		conn, err = h.service.Connect(r.Context(), source, target, nil)
	default:
		writeError(w, http.StatusBadRequest, "source and target (or sourceId and targetId) are required")
		return
	}

	if err != nil {
		h.writeSearchError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, present.NewConnectionView(conn))
}

func (h *APIHandlers) writeSearchError(w http.ResponseWriter, err error) {
	var ambiguous *names.AmbiguousError
	switch {
	case errors.As(err, &ambiguous):
		response := ambiguousResponse{
			Error:      "name matches several people",
			Name:       ambiguous.Name,
			Candidates: make([]present.PersonView, 0, len(ambiguous.Candidates)),
		}
		for _, c := range ambiguous.Candidates {
			response.Candidates = append(response.Candidates, present.NewPersonView(c))
		}
		respondJSON(w, http.StatusConflict, response)
	case errors.Is(err, names.ErrPersonNotFound), errors.Is(err, search.ErrUnknownPerson):
		writeError(w, http.StatusNotFound, "person not found")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "search timed out")
	case errors.Is(err, context.Canceled):
		h.logger.Debug("search cancelled by client")
		writeError(w, http.StatusServiceUnavailable, "search cancelled")
	default:
		h.logger.Error("degrees search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute degrees")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
