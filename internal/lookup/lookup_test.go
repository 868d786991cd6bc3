package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(srv *httptest.Server) *Client {
	c := NewClient(srv.URL+"/aadhaar?num=", srv.URL+"/vehicle?num=", srv.URL+"/phone?num=")
	c.HTTPClient = srv.Client()
	return c
}

func TestFetchAadhaarRationCard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"address": "Village X",
			"homeDistName": "District Y",
			"homeStateName": "State Z",
			"schemeName": "PHH",
			"rcId": "RC123",
			"memberDetailsList": [
				{"memberName": "Asha", "releationship_name": "Self"},
				{"memberName": "Ravi", "releationship_name": "Son"}
			]
		}`))
	}))
	defer srv.Close()

	res, err := testClient(srv).FetchAadhaar(context.Background(), "123456789012")
	if err != nil {
		t.Fatalf("FetchAadhaar: %v", err)
	}
	if res.Ration == nil {
		t.Fatal("expected ration-card variant")
	}
	if res.Legacy != nil {
		t.Error("legacy variant must be nil for a ration-card payload")
	}
	if len(res.Ration.Members) != 2 || res.Ration.Members[0].Name != "Asha" {
		t.Errorf("members = %+v", res.Ration.Members)
	}
	if res.Ration.RCID != "RC123" {
		t.Errorf("rcId = %q, want RC123", res.Ration.RCID)
	}
}

func TestFetchAadhaarLegacy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "Asha", "gender": "F", "dob": "1990-01-01", "address": "Street 1"}`))
	}))
	defer srv.Close()

	res, err := testClient(srv).FetchAadhaar(context.Background(), "123456789012")
	if err != nil {
		t.Fatalf("FetchAadhaar: %v", err)
	}
	if res.Legacy == nil || res.Legacy.Name != "Asha" {
		t.Fatalf("legacy = %+v", res.Legacy)
	}
	if res.Ration != nil {
		t.Error("ration variant must be nil for a legacy payload")
	}
}

func TestFetchAadhaarEmptyRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "", "address": ""}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchAadhaar(context.Background(), "123456789012")
	if !errors.Is(err, ErrNoRecord) {
		t.Errorf("err = %v, want ErrNoRecord", err)
	}
}

func TestFetchAadhaarMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchAadhaar(context.Background(), "123456789012")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestFetchNon200IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchVehicle(context.Background(), "DL01AB1234")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := testClient(srv).FetchPhone(ctx, "923001234567")
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout", err)
	}
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL+"/a?num=", srv.URL+"/v?num=", srv.URL+"/p?num=")
	_, err := c.FetchVehicle(context.Background(), "DL01AB1234")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestFetchVehicle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "success", "vehicle_no": "DL01AB1234", "owner": "Ravi Kumar", "fuel_type": "PETROL"}`))
	}))
	defer srv.Close()

	rec, err := testClient(srv).FetchVehicle(context.Background(), "DL01AB1234")
	if err != nil {
		t.Fatalf("FetchVehicle: %v", err)
	}
	if rec.Owner != "Ravi Kumar" || rec.FuelType != "PETROL" {
		t.Errorf("record = %+v", rec)
	}
}

func TestFetchVehicleNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "message": "not found"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchVehicle(context.Background(), "DL01AB1234")
	if !errors.Is(err, ErrNoRecord) {
		t.Errorf("err = %v, want ErrNoRecord", err)
	}
}

func TestFetchPhone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"success": true,
			"phone": "923001234567",
			"records": [{"Mobile": "923001234567", "Name": "Ali", "CNIC": "12345", "Address": "Lahore", "Country": "Pakistan"}]
		}`))
	}))
	defer srv.Close()

	res, err := testClient(srv).FetchPhone(context.Background(), "923001234567")
	if err != nil {
		t.Fatalf("FetchPhone: %v", err)
	}
	if len(res.Records) != 1 || res.Records[0].Name != "Ali" {
		t.Errorf("records = %+v", res.Records)
	}
}

func TestFetchPhoneNoRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "records": []}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchPhone(context.Background(), "923001234567")
	if !errors.Is(err, ErrNoRecord) {
		t.Errorf("err = %v, want ErrNoRecord", err)
	}
}

func TestValidAadhaar(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"123456789012", true},
		{"12345678901", false},
		{"1234567890123", false},
		{"12345678901a", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidAadhaar(c.in); got != c.want {
			t.Errorf("ValidAadhaar(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNormalizeVehicleNo(t *testing.T) {
	if got, ok := NormalizeVehicleNo(" dl 01 ab 1234 "); !ok || got != "DL01AB1234" {
		t.Errorf("got (%q, %v), want (DL01AB1234, true)", got, ok)
	}
	if _, ok := NormalizeVehicleNo("ab1"); ok {
		t.Error("short numbers must be rejected")
	}
}

func TestNormalizePhone(t *testing.T) {
	if got, ok := NormalizePhone("+92 300 1234567"); !ok || got != "923001234567" {
		t.Errorf("got (%q, %v), want (923001234567, true)", got, ok)
	}
	if _, ok := NormalizePhone("12345"); ok {
		t.Error("short numbers must be rejected")
	}
	if _, ok := NormalizePhone("92300abc4567"); ok {
		t.Error("non-digits must be rejected")
	}
}
