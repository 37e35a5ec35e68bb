package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/nikolayk812/vatmoss/internal/moss"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Handler exposes the filing workflow operations of every registered source.
type Handler struct {
	registry *moss.Registry
	logger   *zap.Logger
}

func NewHandler(registry *moss.Registry, logger *zap.Logger) (*Handler, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry is nil")
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{registry: registry, logger: logger}, nil
}

func (h *Handler) ListSources(w http.ResponseWriter, _ *http.Request) {
	rateTypes := make(map[string]string)
	for k, v := range domain.RateTypeNames() {
		rateTypes[string(k)] = v
	}

	sources := []SourceResponse{}
	for _, source := range h.registry.Sources() {
		integration, err := h.registry.Get(source)
		if err != nil {
			continue
		}
		sources = append(sources, SourceResponse{
			Source:    integration.Source(),
			Name:      integration.Name(),
			RateTypes: rateTypes,
		})
	}

	writeJSON(w, http.StatusOK, sources)
}

// GetRecords lists reportable records; start and end are inclusive dates.
func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	integration, ok := h.integration(w, r)
	if !ok {
		return
	}

	filter, err := parseReportFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := integration.GetReportableRecords(r.Context(), filter)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RecordsResponse{
		Status:  statusSuccess,
		Records: mapRecordsToResponse(report.Records),
		Skipped: mapSkippedToResponse(report.Skipped),
	})
}

func (h *Handler) LookupRecords(w http.ResponseWriter, r *http.Request) {
	integration, ok := h.integration(w, r)
	if !ok {
		return
	}

	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid source ids")
		return
	}

	records, err := integration.GetRecordsByIDs(r.Context(), req.OrderIDs)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RecordsResponse{
		Status:  statusSuccess,
		Records: mapRecordsToResponse(records),
	})
}

func (h *Handler) MarkSubmitted(w http.ResponseWriter, r *http.Request) {
	integration, ok := h.integration(w, r)
	if !ok {
		return
	}

	var req MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := integration.MarkSubmitted(r.Context(), req.SubmissionID, req.CorrelationID, req.OrderIDs); err != nil {
		h.writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UnmarkSubmitted(w http.ResponseWriter, r *http.Request) {
	integration, ok := h.integration(w, r)
	if !ok {
		return
	}

	var req UnmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := integration.UnmarkSubmitted(r.Context(), req.OrderIDs); err != nil {
		h.writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) integration(w http.ResponseWriter, r *http.Request) (*moss.Integration, bool) {
	integration, err := h.registry.Get(chi.URLParam(r, "source"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return integration, true
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	var batchErr *domain.BatchError

	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &batchErr):
		status := http.StatusMultiStatus
		if batchErr.Kind == domain.KindLookupFailure {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, ErrorResponse{
			Status:    statusError,
			Messages:  batchErr.Messages(),
			FailedIDs: batchErr.FailedIDs(),
		})
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseReportFilter(r *http.Request) (domain.ReportFilter, error) {
	var filter domain.ReportFilter

	query := r.URL.Query()

	start, err := time.Parse(dateLayout, query.Get("start"))
	if err != nil {
		return filter, fmt.Errorf("start: %w", err)
	}

	end, err := time.Parse(dateLayout, query.Get("end"))
	if err != nil {
		return filter, fmt.Errorf("end: %w", err)
	}

	includeSubmitted, err := parseBoolParam(query.Get("include_submitted"))
	if err != nil {
		return filter, fmt.Errorf("include_submitted: %w", err)
	}

	submittedOnly, err := parseBoolParam(query.Get("submitted_only"))
	if err != nil {
		return filter, fmt.Errorf("submitted_only: %w", err)
	}

	return domain.ReportFilter{
		Start:            start,
		End:              end.Add(24*time.Hour - time.Nanosecond),
		IncludeSubmitted: includeSubmitted,
		SubmittedOnly:    submittedOnly,
	}, nil
}

func parseBoolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Status: statusError, Messages: []string{msg}})
}
