package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	okBefore := testutil.ToFloat64(Operations.WithLabelValues("deduct", "ok"))
	errBefore := testutil.ToFloat64(Operations.WithLabelValues("deduct", "error"))

	Observe("deduct", nil)
	Observe("deduct", errors.New("boom"))
	Observe("deduct", nil)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(Operations.WithLabelValues("deduct", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(Operations.WithLabelValues("deduct", "error")))
}

func TestHandler(t *testing.T) {
	ReconciliationAlerts.WithLabelValues("replay").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "gtonledger_reconciliation_alerts_total"))
}
