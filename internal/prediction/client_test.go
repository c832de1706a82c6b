package prediction

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_UploadStreamsMultipartFile(t *testing.T) {
	var gotName, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload", r.URL.Path)

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotName, gotBody = header.Filename, string(data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"File uploaded successfully"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	raw, err := c.Upload(context.Background(), "traffic.csv", strings.NewReader("a,b\n1,2\n"))
	require.NoError(t, err)

	assert.Equal(t, "traffic.csv", gotName)
	assert.Equal(t, "a,b\n1,2\n", gotBody)

	assert.JSONEq(t, `{"message":"File uploaded successfully"}`, string(raw))
}

func TestSummary_DecodesLoosePredictorShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"before first upload", `{"protocol_counts":{"TCP":0,"UDP":0,"ICMP":0},"anomaly_data":{"normal":0,"abnormal":0},` +
			`"additional_metrics":{"duration":0,"src_bytes":0,"dst_bytes":0},"detailed_anomaly_data":[]}`},
		{"missing geo columns", `{"protocol_counts":{"TCP":2,"UDP":1,"ICMP":0},"anomaly_data":{"normal":1,"abnormal":2},` +
			`"additional_metrics":{"duration":[0,1,2],"src_bytes":[1,2,3],"dst_bytes":[3,2,1]},` +
			`"detailed_anomaly_data":[{"Anomaly Type":"DoS","Origin Country":"N/A","Latitude":"N/A","Longitude":"N/A","Severity Level":3}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var summary Summary
			require.NoError(t, json.Unmarshal([]byte(tt.body), &summary))
			require.NotNil(t, summary.AnomalyData)
			assert.Len(t, summary.AdditionalMetrics, 3)

			var counts Counts
			require.NoError(t, json.Unmarshal([]byte(tt.body), &counts))
			assert.Equal(t, summary.ProtocolCounts, counts.ProtocolCounts)
			assert.Equal(t, *summary.AnomalyData, *counts.AnomalyData)
		})
	}
}

func TestClient_PredictionsReturnsBodyVerbatim(t *testing.T) {
	body := `{"protocol_counts":{"tcp":2},"extra":[1,2,3]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get-predictions", r.URL.Path)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	raw, err := NewClient(srv.URL, time.Second).Predictions(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, body, string(raw))
}

func TestClient_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Predictions(context.Background())
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestClient_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Predictions(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	start := time.Now()
	_, err := NewClient(srv.URL, 50*time.Millisecond).Predictions(context.Background())
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 900*time.Millisecond)
}

func TestClient_UnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Upload(context.Background(), "a.csv", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	for i := 0; i < breakerFailureThreshold; i++ {
		_, err := c.Predictions(context.Background())
		require.Error(t, err)
	}

	_, err := c.Predictions(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(breakerFailureThreshold), hits.Load())
}
