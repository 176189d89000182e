package trivia

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestHandlers(questions QuestionStore, categories CategoryStore) *HTTPHandlers {
	return NewHTTPHandlers(newTestService(questions, categories), zerolog.Nop())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(payload)
	assert.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func assertErrorBody(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	body := decodeBody(t, rec)
	assert.Equal(t, status, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(status), body["error"])
	assert.Equal(t, message, body["message"])
}

func TestCategoriesMethodNotAllowed(t *testing.T) {
	h := newTestHandlers(new(mockQuestionStore), new(mockCategoryStore))
	rec := httptest.NewRecorder()

	h.Categories(rec, httptest.NewRequest(http.MethodPost, "/categories", nil))

	assertErrorBody(t, rec, http.StatusMethodNotAllowed, "Method not allowed")
}

func TestCategoriesEmptyReturns404(t *testing.T) {
	categories := new(mockCategoryStore)
	categories.On("ListAll", mock.Anything).Return([]Category{}, nil)
	h := newTestHandlers(new(mockQuestionStore), categories)
	rec := httptest.NewRecorder()

	h.Categories(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	assertErrorBody(t, rec, http.StatusNotFound, "Resource not found")
}

func TestCategoriesSuccess(t *testing.T) {
	categories := new(mockCategoryStore)
	categories.On("ListAll", mock.Anything).Return([]Category{{ID: 1, Type: "Science"}}, nil)
	h := newTestHandlers(new(mockQuestionStore), categories)
	rec := httptest.NewRecorder()

	h.Categories(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]interface{}{"1": "Science"}, body["categories"])
}

func TestGetQuestionsReturnsPageAndTotals(t *testing.T) {
	questions := new(mockQuestionStore)
	questions.On("ListAll", mock.Anything).Return(questionSet(25, 1), nil)
	categories := new(mockCategoryStore)
	categories.On("ListAll", mock.Anything).Return([]Category{{ID: 1, Type: "Science"}}, nil)
	h := newTestHandlers(questions, categories)
	rec := httptest.NewRecorder()

	h.Questions(rec, httptest.NewRequest(http.MethodGet, "/questions?page=2", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(25), body["total_questions"])
	assert.Len(t, body["questions"], QuestionsPerPage)
	assert.Equal(t, map[string]interface{}{"1": "Science"}, body["categories"])
}

func TestGetQuestionsEmptyStoreReturns404(t *testing.T) {
	questions := new(mockQuestionStore)
	questions.On("ListAll", mock.Anything).Return([]Question{}, nil)
	h := newTestHandlers(questions, new(mockCategoryStore))
	rec := httptest.NewRecorder()

	h.Questions(rec, httptest.NewRequest(http.MethodGet, "/questions", nil))

	assertErrorBody(t, rec, http.StatusNotFound, "Resource not found")
}

func TestDeleteQuestionTwice(t *testing.T) {
	questions := new(mockQuestionStore)
	questions.On("Delete", mock.Anything, int64(5)).Return(nil).Once()
	questions.On("Delete", mock.Anything, int64(5)).Return(ErrNotFound).Once()
	h := newTestHandlers(questions, new(mockCategoryStore))

	req := httptest.NewRequest(http.MethodDelete, "/questions/5", nil)
	req.SetPathValue("id", "5")

	rec := httptest.NewRecorder()
	h.DeleteQuestion(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(5), body["deleted"])

	req = httptest.NewRequest(http.MethodDelete, "/questions/5", nil)
	req.SetPathValue("id", "5")

	rec = httptest.NewRecorder()
	h.DeleteQuestion(rec, req)
	assertErrorBody(t, rec, http.StatusNotFound, "Resource not found")
	questions.AssertExpectations(t)
}

func TestDeleteQuestionStoreFailureIsUnprocessable(t *testing.T) {
	questions := new(mockQuestionStore)
	questions.On("Delete", mock.Anything, int64(9)).Return(errors.New("constraint violation"))
	h := newTestHandlers(questions, new(mockCategoryStore))

	req := httptest.NewRequest(http.MethodDelete, "/questions/9", nil)
	req.SetPathValue("id", "9")
	rec := httptest.NewRecorder()

	h.DeleteQuestion(rec, req)

	assertErrorBody(t, rec, http.StatusUnprocessableEntity, "Unprocessable")
}

func TestCreateQuestionSuccess(t *testing.T) {
	questions := new(mockQuestionStore)
	questions.On("Insert", mock.Anything, mock.Anything).Return(Question{ID: 42, Text: "A test question"}, nil)
	h := newTestHandlers(questions, new(mockCategoryStore))
	rec := httptest.NewRecorder()

	h.Questions(rec, jsonRequest(t, http.MethodPost, "/questions", map[string]interface{}{
		"question":   "A test question",
		"answer":     "A test answer",
		"difficulty": 1,
		"category":   1,
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(42), body["created"])
	assert.Equal(t, "A test question", body["question"])
}

func TestCreateQuestionMissingFieldIsUnprocessable(t *testing.T) {
	h := newTestHandlers(new(mockQuestionStore), new(mockCategoryStore))
	rec := httptest.NewRecorder()

	h.Questions(rec, jsonRequest(t, http.MethodPost, "/questions", map[string]interface{}{
		"answer":     "A test answer",
		"difficulty": 1,
		"category":   1,
	}))

	assertErrorBody(t, rec, http.StatusUnprocessableEntity, "Unprocessable")
}

func TestCreateQuestionInsertFailureIsUnprocessable(t *testing.T) {
	questions := new(mockQuestionStore)
	questions.On("Insert", mock.Anything, mock.Anything).Return(Question{}, errors.New("fk violation"))
	h := newTestHandlers(questions, new(mockCategoryStore))
	rec := httptest.NewRecorder()

	h.Questions(rec, jsonRequest(t, http.MethodPost, "/questions", map[string]interface{}{
		"question":   "A test question",
		"answer":     "A test answer",
		"difficulty": 1,
		"category":   999,
	}))

	assertErrorBody(t, rec, http.StatusUnprocessableEntity, "Unprocessable")
}

func TestSearchQuestionsSuccess(t *testing.T) {
	questions := new(mockQuestionStore)
	questions.On("SearchByText", mock.Anything, "test").Return(questionSet(3, 1), nil)
	h := newTestHandlers(questions, new(mockCategoryStore))
	rec := httptest.NewRecorder()

	h.Questions(rec, jsonRequest(t, http.MethodPost, "/questions", map[string]interface{}{
		"searchTerm": "test",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["total_questions"])
	assert.Len(t, body["questions"], 3)
}

func TestSearchQuestionsZeroMatchesReturns404(t *testing.T) {
	questions := new(mockQuestionStore)
	questions.On("SearchByText", mock.Anything, "nomatch").Return([]Question{}, nil)
	h := newTestHandlers(questions, new(mockCategoryStore))
	rec := httptest.NewRecorder()

	h.Questions(rec, jsonRequest(t, http.MethodPost, "/questions", map[string]interface{}{
		"searchTerm": "nomatch",
	}))

	assertErrorBody(t, rec, http.StatusNotFound, "Resource not found")
}

func TestCategoryQuestionsEchoesCurrentCategory(t *testing.T) {
	questions := new(mockQuestionStore)
	questions.On("ListByCategory", mock.Anything, int64(2)).Return(questionSet(4, 2), nil)
	h := newTestHandlers(questions, new(mockCategoryStore))

	req := httptest.NewRequest(http.MethodGet, "/categories/2/questions", nil)
	req.SetPathValue("id", "2")
	rec := httptest.NewRecorder()

	h.CategoryQuestions(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(4), body["total_questions"])
	assert.Equal(t, float64(2), body["current_category"])
}

func TestCategoryQuestionsZeroMatchesReturns404(t *testing.T) {
	questions := new(mockQuestionStore)
	questions.On("ListByCategory", mock.Anything, int64(99)).Return([]Question{}, nil)
	h := newTestHandlers(questions, new(mockCategoryStore))

	req := httptest.NewRequest(http.MethodGet, "/categories/99/questions", nil)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()

	h.CategoryQuestions(rec, req)

	assertErrorBody(t, rec, http.StatusNotFound, "Resource not found")
}

func TestQuizMissingCategoryIsBadRequest(t *testing.T) {
	h := newTestHandlers(new(mockQuestionStore), new(mockCategoryStore))
	rec := httptest.NewRecorder()

	h.Quizzes(rec, jsonRequest(t, http.MethodPost, "/quizzes", map[string]interface{}{
		"previous_questions": []int64{},
	}))

	assertErrorBody(t, rec, http.StatusBadRequest, "Bad request")
}

func TestQuizMissingPreviousQuestionsIsBadRequest(t *testing.T) {
	h := newTestHandlers(new(mockQuestionStore), new(mockCategoryStore))
	rec := httptest.NewRecorder()

	h.Quizzes(rec, jsonRequest(t, http.MethodPost, "/quizzes", map[string]interface{}{
		"quiz_category": map[string]interface{}{"id": 1, "type": "Science"},
	}))

	assertErrorBody(t, rec, http.StatusBadRequest, "Bad request")
}

func TestQuizSessionCompleteOmitsQuestion(t *testing.T) {
	h := newTestHandlers(new(mockQuestionStore), new(mockCategoryStore))
	rec := httptest.NewRecorder()

	h.Quizzes(rec, jsonRequest(t, http.MethodPost, "/quizzes", map[string]interface{}{
		"previous_questions": []int64{1, 2, 3, 4, 5},
		"quiz_category":      map[string]interface{}{"id": 1, "type": "Science"},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "question")
}

func TestQuizReturnsRandomQuestion(t *testing.T) {
	questions := new(mockQuestionStore)
	questions.On("ListByCategoryExcluding", mock.Anything, int64(1), []int64{2}).Return(questionSet(3, 1), nil)
	h := newTestHandlers(questions, new(mockCategoryStore))
	rec := httptest.NewRecorder()

	h.Quizzes(rec, jsonRequest(t, http.MethodPost, "/quizzes", map[string]interface{}{
		"previous_questions": []int64{2},
		"quiz_category":      map[string]interface{}{"id": 1, "type": "Science"},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	question, ok := body["question"].(map[string]interface{})
	assert.True(t, ok, "question field must be a view object")
	assert.Contains(t, question, "id")
	assert.Contains(t, question, "question")
	assert.Contains(t, question, "answer")
	assert.Equal(t, float64(1), question["category"])
}

func TestQuizAllCategoriesUsesClickSentinel(t *testing.T) {
	questions := new(mockQuestionStore)
	questions.On("ListExcluding", mock.Anything, []int64{1}).Return(questionSet(2, 3)[1:], nil)
	h := newTestHandlers(questions, new(mockCategoryStore))
	rec := httptest.NewRecorder()

	h.Quizzes(rec, jsonRequest(t, http.MethodPost, "/quizzes", map[string]interface{}{
		"previous_questions": []int64{1},
		"quiz_category":      map[string]interface{}{"id": 0, "type": "click"},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	questions.AssertExpectations(t)
	questions.AssertNotCalled(t, "ListByCategoryExcluding", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuizNoCandidatesIsSuccess(t *testing.T) {
	questions := new(mockQuestionStore)
	questions.On("ListByCategoryExcluding", mock.Anything, int64(4), mock.Anything).Return([]Question{}, nil)
	h := newTestHandlers(questions, new(mockCategoryStore))
	rec := httptest.NewRecorder()

	h.Quizzes(rec, jsonRequest(t, http.MethodPost, "/quizzes", map[string]interface{}{
		"previous_questions": []int64{1, 2},
		"quiz_category":      map[string]interface{}{"id": 4, "type": "History"},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "question")
}

func TestQuizMethodNotAllowed(t *testing.T) {
	h := newTestHandlers(new(mockQuestionStore), new(mockCategoryStore))
	rec := httptest.NewRecorder()

	h.Quizzes(rec, httptest.NewRequest(http.MethodGet, "/quizzes", nil))

	assertErrorBody(t, rec, http.StatusMethodNotAllowed, "Method not allowed")
}
