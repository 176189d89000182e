package trivia

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperrors "github.com/iamsaumya/Trivia/pkg/http/errors"
)

// HTTPHandlers provides the REST endpoints of the trivia API.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers over the trivia service.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Categories handles GET /categories.
func (h *HTTPHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}

// Questions handles GET /questions (paginated listing) and POST /questions.
// A POST body is either a search or a create; the two variants are resolved
// before dispatch, never inside one merged handler path.
func (h *HTTPHandlers) Questions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listQuestions(w, r)
	case http.MethodPost:
		h.postQuestion(w, r)
	default:
		httperrors.RespondMethodNotAllowed(w)
	}
}

func (h *HTTPHandlers) listQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.QuestionPage(r.Context(), pageParam(r))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       page.Questions,
		"total_questions": page.Total,
		"categories":      page.Categories,
	})
}

// questionPostBody is the raw POST /questions payload before it resolves
// into a SearchRequest or a CreateRequest. Pointer fields distinguish absent
// and null from zero values.
type questionPostBody struct {
	SearchTerm *string `json:"searchTerm"`
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Difficulty *int32  `json:"difficulty"`
	Category   *int64  `json:"category"`
}

// isSearch is the predicate that picks the request variant.
func (b questionPostBody) isSearch() bool {
	return b.SearchTerm != nil && *b.SearchTerm != ""
}

func (b questionPostBody) createRequest() (CreateRequest, bool) {
	if b.Question == nil || b.Answer == nil || b.Difficulty == nil || b.Category == nil {
		return CreateRequest{}, false
	}
	return CreateRequest{
		Question:   *b.Question,
		Answer:     *b.Answer,
		Difficulty: *b.Difficulty,
		Category:   *b.Category,
	}, true
}

func (h *HTTPHandlers) postQuestion(w http.ResponseWriter, r *http.Request) {
	var body questionPostBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	if body.isSearch() {
		h.searchQuestions(w, r, SearchRequest{Term: *body.SearchTerm})
		return
	}

	req, ok := body.createRequest()
	if !ok {
		httperrors.RespondUnprocessable(w)
		return
	}

	created, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.logger.Warn().Err(err).Msg("question create failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"created":  created.ID,
		"question": created.Text,
	})
}

func (h *HTTPHandlers) searchQuestions(w http.ResponseWriter, r *http.Request, req SearchRequest) {
	result, err := h.svc.Search(r.Context(), req, pageParam(r))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       result.Questions,
		"total_questions": result.Total,
	})
}

// DeleteQuestion handles DELETE /questions/{id}.
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if err == ErrNotFound {
			httperrors.RespondNotFound(w)
			return
		}
		h.logger.Warn().Err(err).Int64("question_id", id).Msg("question delete failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": id,
	})
}

// CategoryQuestions handles GET /categories/{id}/questions.
func (h *HTTPHandlers) CategoryQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	categoryID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	result, err := h.svc.CategoryQuestions(r.Context(), categoryID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"current_category": result.Category,
	})
}

// quizRequest is the POST /quizzes payload. Both fields are required.
type quizRequest struct {
	PreviousQuestions *[]int64      `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// Quizzes handles POST /quizzes. An exhausted session and an empty candidate
// set are both successful responses without a question field.
func (h *HTTPHandlers) Quizzes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var body quizRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}
	if body.PreviousQuestions == nil || body.QuizCategory == nil {
		httperrors.RespondBadRequest(w)
		return
	}

	question, err := h.svc.NextQuizQuestion(r.Context(), *body.PreviousQuestions, *body.QuizCategory)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	resp := map[string]interface{}{"success": true}
	if question != nil {
		resp["question"] = question
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// pageParam reads the 1-based page query parameter, defaulting to 1.
func pageParam(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if err == ErrNotFound {
		httperrors.RespondNotFound(w)
		return
	}
	h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("store query failed")
	httperrors.RespondInternal(w)
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("response encode failed")
	}
}
