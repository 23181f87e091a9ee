package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alexanderramin/ecocafe/internal/catalog"
	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/alexanderramin/ecocafe/internal/places"
	"github.com/alexanderramin/ecocafe/internal/service"
	"github.com/alexanderramin/ecocafe/internal/survey"
)

const maxBodyBytes = 1 << 20

type handler struct {
	c   *Container
	log *slog.Logger
}

type catalogResponse struct {
	*catalog.Catalog
	Labels    []string `json:"labels"`
	Tags      []string `json:"tags"`
	Questions int      `json:"questionCount"`
}

func (h *handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	c := h.c.Catalog
	writeJSON(w, http.StatusOK, catalogResponse{
		Catalog:   c,
		Labels:    survey.Labels,
		Tags:      service.TagPresets(c),
		Questions: c.QuestionCount(),
	})
}

func (h *handler) listPoints(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	points, err := h.c.Map.Points(r.Context(), service.PointFilter{
		Keyword: q.Get("keyword"),
		Tag:     q.Get("tag"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"points": points, "count": len(points)})
}

func (h *handler) listTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tags": h.c.Map.TagPresets()})
}

func (h *handler) submitResult(w http.ResponseWriter, r *http.Request) {
	var in service.AnswerSubmission
	if !decodeBody(w, r, &in) {
		return
	}
	rec, err := h.c.Submissions.SubmitAnswers(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *handler) listReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.c.Reports.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if reports == nil {
		reports = []*domain.ReportRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (h *handler) submitReport(w http.ResponseWriter, r *http.Request) {
	var in service.ReportInput
	if !decodeBody(w, r, &in) {
		return
	}
	rep, err := h.c.Reports.Submit(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}

func (h *handler) searchPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var near *domain.Coordinates
	if lat, lng := q.Get("lat"), q.Get("lng"); lat != "" || lng != "" {
		la, errLat := strconv.ParseFloat(lat, 64)
		ln, errLng := strconv.ParseFloat(lng, 64)
		if errLat != nil || errLng != nil {
			writeError(w, http.StatusBadRequest, "lat and lng must both be numbers")
			return
		}
		near = &domain.Coordinates{Lat: la, Lng: ln}
	}
	found, err := h.c.Places.Search(r.Context(), q.Get("query"), near)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if found == nil {
		found = []places.Place{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"places": found})
}

// fail maps service errors onto status codes.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyReport):
		writeError(w, http.StatusBadRequest, "내용을 입력해주세요.")
	case errors.Is(err, service.ErrInvalidResult):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, places.ErrNoResults):
		writeError(w, http.StatusNotFound, "검색 결과가 없습니다.")
	case errors.Is(err, places.ErrSearchUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, places.ErrSearchFailed):
		h.log.ErrorContext(r.Context(), "place_search_failed", "error", err)
		writeError(w, http.StatusBadGateway, "검색 중 오류가 발생했습니다. 다시 시도해 주세요.")
	default:
		h.log.ErrorContext(r.Context(), "request_failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
