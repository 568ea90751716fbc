package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(server *httptest.Server) *Client {
	client := NewClient()
	client.SetBaseURL(server.URL)
	return client
}

func TestClient_GetSets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sets" {
			t.Errorf("Expected path /sets, got %s", r.URL.Path)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Expected Accept application/json, got %s", r.Header.Get("Accept"))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SetList{
			Object: "list",
			Data: []Set{
				{Code: "dmu", Name: "Dominaria United"},
				{Code: "neo", Name: "Kamigawa: Neon Dynasty"},
			},
		})
	}))
	defer server.Close()

	sets, err := newTestClient(server).GetSets(context.Background())
	if err != nil {
		t.Fatalf("GetSets failed: %v", err)
	}

	if len(sets.Data) != 2 {
		t.Fatalf("Expected 2 sets, got %d", len(sets.Data))
	}
	if sets.Data[0].Code != "dmu" {
		t.Errorf("Expected first set dmu, got %s", sets.Data[0].Code)
	}
}

func TestClient_GetCardByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/named" {
			t.Errorf("Expected path /cards/named, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("exact"); got != "Sol Ring" {
			t.Errorf("Expected exact=Sol Ring, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Card{
			ID:         "id1",
			Name:       "Sol Ring",
			TypeLine:   "Artifact",
			Legalities: map[string]string{"commander": "legal"},
		})
	}))
	defer server.Close()

	card, err := newTestClient(server).GetCardByName(context.Background(), "Sol Ring")
	if err != nil {
		t.Fatalf("GetCardByName failed: %v", err)
	}

	if card.Name != "Sol Ring" {
		t.Errorf("Expected Sol Ring, got %s", card.Name)
	}
	if card.Legalities["commander"] != "legal" {
		t.Errorf("Expected commander legality legal, got %q", card.Legalities["commander"])
	}
}

func TestClient_GetCardByName_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server).GetCardByName(context.Background(), "No Such Card")
	if err == nil {
		t.Fatal("Expected error for missing card")
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError, got %T: %v", err, err)
	}
}

func TestClient_RetriesTransientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SetList{Object: "list", Data: []Set{{Code: "dmu", Name: "Dominaria United"}}})
	}))
	defer server.Close()

	sets, err := newTestClient(server).GetSets(context.Background())
	if err != nil {
		t.Fatalf("GetSets failed after retry: %v", err)
	}
	if attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", attempts)
	}
	if len(sets.Data) != 1 {
		t.Errorf("Expected 1 set, got %d", len(sets.Data))
	}
}

func TestClient_APIErrorSurfacesDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(APIError{
			Object:  "error",
			Code:    "bad_request",
			Status:  400,
			Details: "Invalid set code",
		})
	}))
	defer server.Close()

	_, err := newTestClient(server).GetSets(context.Background())
	if err == nil {
		t.Fatal("Expected error")
	}
}
