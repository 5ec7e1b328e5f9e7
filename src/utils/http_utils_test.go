package utils

import (
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/username/edvhesabat/backend/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func TestGenerateETag_StableForEqualPayloads(t *testing.T) {
	type payload struct {
		A string
		B int
	}

	first, err := GenerateETag(payload{A: "x", B: 1})
	if err != nil {
		t.Fatalf("GenerateETag: %v", err)
	}
	second, err := GenerateETag(payload{A: "x", B: 1})
	if err != nil {
		t.Fatalf("GenerateETag: %v", err)
	}
	if first != second {
		t.Errorf("equal payloads produced different ETags: %s vs %s", first, second)
	}

	changed, err := GenerateETag(payload{A: "x", B: 2})
	if err != nil {
		t.Fatalf("GenerateETag: %v", err)
	}
	if changed == first {
		t.Error("different payloads produced the same ETag")
	}
}

func TestSendJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	SendJSONError(rec, "something went wrong", 400)

	if rec.Code != 400 {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("content type = %q, want application/json", got)
	}
	if body := rec.Body.String(); !strings.Contains(body, "something went wrong") {
		t.Errorf("body %q missing error message", body)
	}
}
