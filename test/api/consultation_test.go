package api_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
)

func bookSlot(t *testing.T, token string, at time.Time) TestResponse {
	t.Helper()
	return makeRequest("POST", "/consultations", map[string]interface{}{
		"doctor_id":            doctorID,
		"scheduled_at":         at.Format(time.RFC3339),
		"notes":                "integration booking",
		"duration_minutes":     30,
		"payment_amount_cents": 5000,
	}, token)
}

// slotTime returns a distinct future slot per test so bookings never collide
// across test functions.
func slotTime(offsetHours int) time.Time {
	return time.Now().Add(time.Duration(24+offsetHours) * time.Hour).Truncate(time.Hour)
}

func TestBookConsultation(t *testing.T) {
	resp := bookSlot(t, patientToken, slotTime(1))
	if !resp.IsSuccess() {
		t.Fatalf("booking failed: %s", resp.Message)
	}

	if got := resp.GetString("status"); got != "pending" {
		t.Errorf("expected status pending, got %q", got)
	}
	if got := resp.GetString("payment_status"); got != "unpaid" {
		t.Errorf("expected payment_status unpaid, got %q", got)
	}
	if link := resp.GetString("video_link"); !strings.HasPrefix(link, "https://") {
		t.Errorf("expected a meeting link, got %q", link)
	}
}

func TestDoubleBookingRejected(t *testing.T) {
	at := slotTime(2)

	resp := bookSlot(t, patientToken, at)
	if !resp.IsSuccess() {
		t.Fatalf("first booking failed: %s", resp.Message)
	}

	resp = bookSlot(t, patientToken, at)
	if resp.IsSuccess() {
		t.Fatal("expected second booking of the same slot to fail")
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected HTTP 409, got %d", resp.StatusCode)
	}
}

func TestDoctorCannotBook(t *testing.T) {
	resp := bookSlot(t, doctorToken, slotTime(3))
	if resp.IsSuccess() {
		t.Fatal("expected doctor booking to be rejected")
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected HTTP 403, got %d", resp.StatusCode)
	}
}

func TestStatusUpdateDoctorOnly(t *testing.T) {
	resp := bookSlot(t, patientToken, slotTime(4))
	if !resp.IsSuccess() {
		t.Fatalf("booking failed: %s", resp.Message)
	}
	id := resp.GetString("id")

	// The patient may not move the status.
	resp = makeRequest("PATCH", fmt.Sprintf("/consultations/%s/status/in_progress", id), nil, patientToken)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected HTTP 403 for patient status update, got %d", resp.StatusCode)
	}

	// The assigned doctor may.
	resp = makeRequest("PATCH", fmt.Sprintf("/consultations/%s/status/in_progress", id), nil, doctorToken)
	if !resp.IsSuccess() {
		t.Fatalf("doctor status update failed: %s", resp.Message)
	}
	if got := resp.GetString("status"); got != "in_progress" {
		t.Errorf("expected status in_progress, got %q", got)
	}

	// Unknown status values are rejected.
	resp = makeRequest("PATCH", fmt.Sprintf("/consultations/%s/status/cancelled", id), nil, doctorToken)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected HTTP 422 for unknown status, got %d", resp.StatusCode)
	}
}

func TestVideoLinkStable(t *testing.T) {
	resp := bookSlot(t, patientToken, slotTime(5))
	if !resp.IsSuccess() {
		t.Fatalf("booking failed: %s", resp.Message)
	}
	id := resp.GetString("id")
	link := resp.GetString("video_link")

	resp = makeRequest("PATCH", fmt.Sprintf("/consultations/%s/status/completed", id), nil, doctorToken)
	if !resp.IsSuccess() {
		t.Fatalf("status update failed: %s", resp.Message)
	}

	resp = makeRequest("GET", "/consultations/"+id, nil, patientToken)
	if !resp.IsSuccess() {
		t.Fatalf("fetch failed: %s", resp.Message)
	}
	if got := resp.GetString("video_link"); got != link {
		t.Errorf("video link changed: %q -> %q", link, got)
	}
}

func TestListConsultations(t *testing.T) {
	resp := bookSlot(t, patientToken, slotTime(6))
	if !resp.IsSuccess() {
		t.Fatalf("booking failed: %s", resp.Message)
	}

	resp = makeRequest("GET", "/consultations", nil, patientToken)
	if !resp.IsSuccess() {
		t.Fatalf("list failed: %s", resp.Message)
	}
	if len(resp.DataList) == 0 {
		t.Error("expected at least one consultation for the patient")
	}

	resp = makeRequest("GET", "/consultations", nil, doctorToken)
	if !resp.IsSuccess() {
		t.Fatalf("doctor list failed: %s", resp.Message)
	}
	if len(resp.DataList) == 0 {
		t.Error("expected at least one consultation for the doctor")
	}
}

func TestDashboards(t *testing.T) {
	resp := makeRequest("GET", "/patient/dashboard", nil, patientToken)
	if !resp.IsSuccess() {
		t.Fatalf("patient dashboard failed: %s", resp.Message)
	}
	if got := resp.GetString("role"); got != "patient" {
		t.Errorf("expected role patient, got %q", got)
	}
	if got := resp.GetString("username"); got != patientUsername {
		t.Errorf("expected username %q, got %q", patientUsername, got)
	}

	resp = makeRequest("GET", "/doctor/dashboard", nil, doctorToken)
	if !resp.IsSuccess() {
		t.Fatalf("doctor dashboard failed: %s", resp.Message)
	}
	if got := resp.GetString("role"); got != "doctor" {
		t.Errorf("expected role doctor, got %q", got)
	}

	// Cross-role access is refused.
	resp = makeRequest("GET", "/doctor/dashboard", nil, patientToken)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected HTTP 403 for patient on doctor dashboard, got %d", resp.StatusCode)
	}
	resp = makeRequest("GET", "/patient/dashboard", nil, doctorToken)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected HTTP 403 for doctor on patient dashboard, got %d", resp.StatusCode)
	}
}

func TestDoctorDirectory(t *testing.T) {
	resp := makeRequest("GET", "/doctors", nil, patientToken)
	if !resp.IsSuccess() {
		t.Fatalf("directory failed: %s", resp.Message)
	}

	found := false
	for _, entry := range resp.DataList {
		if d, ok := entry.(map[string]interface{}); ok {
			if d["username"] == doctorUsername {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("expected %q in the doctor directory", doctorUsername)
	}
}
