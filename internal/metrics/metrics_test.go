package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/things/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })
	r.GET("/metrics", Handler())

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/things/:id", "418"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/things/42", nil))
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/things/:id", "418"))
	if after-before != 1 {
		t.Errorf("counter moved by %v, want 1", after-before)
	}

	ObserveAICall("evaluate_answer", "success", 1200*time.Millisecond)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "hirewise_ai_calls_total") {
		t.Error("/metrics does not expose hirewise_ai_calls_total")
	}
}
