//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"testing"
	"time"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

func doJSON(t *testing.T, method, path string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload failed: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, baseURL()+path, body)
	if err != nil {
		t.Fatalf("build request failed: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode %s %s response failed: %v", method, path, err)
	}
	return resp, decoded
}

func createQuestion(t *testing.T, question, answer string, difficulty, category int) int64 {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, "/questions", map[string]interface{}{
		"question":   question,
		"answer":     answer,
		"difficulty": difficulty,
		"category":   category,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create question: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	created, ok := body["created"].(float64)
	if !ok {
		t.Fatalf("create question: missing created id in %v", body)
	}
	return int64(created)
}

func deleteQuestion(t *testing.T, id int64) {
	t.Helper()
	resp, body := doJSON(t, http.MethodDelete, pathForQuestion(id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete question %d: expected 200, got %d (%v)", id, resp.StatusCode, body)
	}
}

func pathForQuestion(id int64) string {
	return "/questions/" + strconv.FormatInt(id, 10)
}
