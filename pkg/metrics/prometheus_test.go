package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPrometheusHandler_Exposition(t *testing.T) {
	c := NewCollector()
	c.PacketReceived(11)
	c.PacketSent(5)
	c.RadioStateDecoded("FM")
	c.StatusDecoded()
	c.ChecksumFailure()

	handler := NewPrometheusHandler(c)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("unexpected content type %q", ct)
	}

	body := rec.Body.String()
	expected := []string{
		"hrd_packets_received_total 1",
		"hrd_packets_sent_total 1",
		"hrd_bytes_received_total 11",
		"hrd_bytes_sent_total 5",
		"hrd_radio_states_decoded_total 1",
		"hrd_status_messages_decoded_total 1",
		"hrd_checksum_failures_total 1",
		"hrd_unknown_packets_total 0",
	}
	for _, line := range expected {
		if !strings.Contains(body, line) {
			t.Errorf("expected exposition to contain %q, got:\n%s", line, body)
		}
	}
	if !strings.Contains(body, "# TYPE hrd_packets_received_total counter") {
		t.Errorf("expected TYPE comment in exposition")
	}
}
