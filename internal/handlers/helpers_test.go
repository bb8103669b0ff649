package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"wealthdesk/internal/validator"
)

// --- shared mocks ---

type auditEntry struct {
	userID, action, resourceID string
	changes                    map[string]interface{}
}

type mockAuditService struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (m *mockAuditService) Log(userID, action, _, resourceID, _ string, changes map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, auditEntry{userID: userID, action: action, resourceID: resourceID, changes: changes})
}

func (m *mockAuditService) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.action)
	}
	return out
}

// --- test helpers ---

const (
	testAdvisorID    = "advisor-1"
	testInvestmentID = "0190b6a4-7c1e-7a2b-9c3d-4e5f60718293"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func TestParsePathID(t *testing.T) {
	r := gin.New()
	r.GET("/x/:id", func(c *gin.Context) {
		id, err := parsePathID(c, "id")
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	t.Run("canonicalises", func(t *testing.T) {
		rec := doRequest(r, "GET", "/x/0190B6A4-7C1E-7A2B-9C3D-4E5F60718293", "")
		assertStatus(t, rec, http.StatusOK)
		if got := parseJSON(t, rec)["id"]; got != testInvestmentID {
			t.Errorf("expected %s, got %v", testInvestmentID, got)
		}
	})

	t.Run("rejects non uuid", func(t *testing.T) {
		rec := doRequest(r, "GET", "/x/42", "")
		assertStatus(t, rec, http.StatusBadRequest)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestGetUserID_Missing(t *testing.T) {
	r := gin.New()
	r.GET("/me", func(c *gin.Context) {
		if _, err := getUserID(c); err != nil {
			respondWithError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	rec := doRequest(r, "GET", "/me", "")
	assertStatus(t, rec, http.StatusUnauthorized)
	assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
}

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "2023-01-15"},
		{in: "2023-01-15T10:30:00+05:30"},
		{in: "15-01-2023", wantErr: true},
		{in: "yesterday", wantErr: true},
	}
	for _, tt := range tests {
		_, err := parseFlexibleDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFlexibleDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
