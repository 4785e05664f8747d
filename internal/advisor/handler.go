package advisor

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ahvonen/phoneadvisor/pkg/models"
)

// defaultN is the recommendation count used when the request omits n.
const defaultN = 10

// RecommendationResponse is the response for GET /api/v1/advisor/recommendations.
type RecommendationResponse struct {
	Label  string         `json:"label"`
	Found  bool           `json:"found"`
	Count  int            `json:"count"`
	Phones []models.Phone `json:"phones"`
}

// FilterRequest is the body for POST /api/v1/advisor/filter.
type FilterRequest struct {
	Phones     []models.Phone              `json:"phones"`
	Predicates map[string]PredicateRequest `json:"predicates"`
}

// PredicateRequest is one attribute constraint in a filter request.
// A non-null values array selects set membership; otherwise min/max
// bound an inclusive range, defaulting to the observed bounds of the
// submitted phones when omitted.
type PredicateRequest struct {
	Values []string `json:"values,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

// FilterResponse is the response for POST /api/v1/advisor/filter.
type FilterResponse struct {
	Count  int            `json:"count"`
	Phones []models.Phone `json:"phones"`
}

// handleRecommendations returns phones similar to the queried label.
//
//	@Summary		Get phone recommendations
//	@Description	Returns up to n phones most similar to the labeled phone, ranked by precomputed similarity. found=false means the label did not resolve, distinct from an empty result.
//	@Tags			advisor
//	@Produce		json
//	@Param			label query string true "Display label (brand and model)"
//	@Param			n query int false "Maximum results" default(10)
//	@Success		200 {object} RecommendationResponse
//	@Failure		400 {object} map[string]any
//	@Router			/advisor/recommendations [get]
func (p *Plugin) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	label := r.URL.Query().Get("label")
	if label == "" {
		writeError(w, http.StatusBadRequest, "label is required")
		return
	}

	n := defaultN
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		parsed, err := strconv.Atoi(nStr)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "n must be a non-negative integer")
			return
		}
		n = parsed
	}

	start := time.Now()
	phones, found := p.engine.Recommend(label, n)
	p.metrics.recommendSeconds.Observe(time.Since(start).Seconds())

	outcome := outcomeFound
	if !found {
		outcome = outcomeNotFound
	}
	p.metrics.recommendTotal.WithLabelValues(outcome).Inc()

	if p.recorder != nil {
		p.recorder.RecordQuery(r.Context(), label, n, found, len(phones))
	}

	p.logger.Debug("recommendation query",
		zap.String("label", label),
		zap.Int("n", n),
		zap.Bool("found", found),
		zap.Int("results", len(phones)),
	)

	if phones == nil {
		phones = []models.Phone{}
	}
	writeJSON(w, http.StatusOK, RecommendationResponse{
		Label:  label,
		Found:  found,
		Count:  len(phones),
		Phones: phones,
	})
}

// handleFilter applies attribute predicates to a submitted result set.
//
//	@Summary		Filter a result set
//	@Description	Applies a conjunction of per-attribute predicates to the submitted phones, preserving their order. Omitted range bounds default to the observed min/max of the submitted set.
//	@Tags			advisor
//	@Accept			json
//	@Produce		json
//	@Param			request body FilterRequest true "Phones and predicates"
//	@Success		200 {object} FilterResponse
//	@Failure		400 {object} map[string]any
//	@Router			/advisor/filter [post]
func (p *Plugin) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	preds := buildPredicates(req.Phones, req.Predicates)
	phones, err := Filter(req.Phones, preds)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p.metrics.filterTotal.Inc()

	writeJSON(w, http.StatusOK, FilterResponse{Count: len(phones), Phones: phones})
}

// handleLabels returns distinct display labels for client-side autocomplete.
//
//	@Summary		List display labels
//	@Description	Returns the catalog's distinct labels in sorted order, optionally narrowed by a case-insensitive substring match, for client-side autocomplete.
//	@Tags			advisor
//	@Produce		json
//	@Param			q query string false "Substring to match"
//	@Success		200 {array} string
//	@Router			/advisor/labels [get]
func (p *Plugin) handleLabels(w http.ResponseWriter, r *http.Request) {
	labels := p.engine.Dataset().Catalog.Labels()

	if q := strings.ToLower(r.URL.Query().Get("q")); q != "" {
		matched := labels[:0]
		for _, label := range labels {
			if strings.Contains(strings.ToLower(label), q) {
				matched = append(matched, label)
			}
		}
		labels = matched
	}

	writeJSON(w, http.StatusOK, labels)
}

// handleListPhones returns the full catalog.
//
//	@Summary		List all phones
//	@Description	Returns every catalog row with its full attribute set.
//	@Tags			advisor
//	@Produce		json
//	@Success		200 {array} models.Phone
//	@Router			/advisor/phones [get]
func (p *Plugin) handleListPhones(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, p.engine.Dataset().Catalog.Phones())
}

// buildPredicates converts request predicates into engine predicates.
// Range bounds left out by the caller default to the observed bounds of
// the submitted phones, so an untouched range never excludes anything.
func buildPredicates(phones []models.Phone, reqs map[string]PredicateRequest) map[string]Predicate {
	if len(reqs) == 0 {
		return nil
	}
	preds := make(map[string]Predicate, len(reqs))
	for attr, req := range reqs {
		if req.Values != nil {
			preds[attr] = SetPredicate{Values: req.Values}
			continue
		}
		lo, hi, _ := Bounds(phones, attr)
		if req.Min != nil {
			lo = *req.Min
		}
		if req.Max != nil {
			hi = *req.Max
		}
		preds[attr] = RangePredicate{Lo: lo, Hi: hi}
	}
	return preds
}

// -- helpers --

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	title := http.StatusText(status)
	slug := strings.ReplaceAll(strings.ToLower(title), " ", "-")
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://phoneadvisor.dev/problems/" + slug,
		"title":  title,
		"status": status,
		"detail": detail,
	})
}
