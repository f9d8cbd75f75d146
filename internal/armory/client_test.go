package armory_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"auraforge/internal/armory"
)

func TestNewRequiresEndpoints(t *testing.T) {
	if _, err := armory.New("", "https://example.com/spell"); err == nil {
		t.Fatal("expected error when item url missing")
	}
	if _, err := armory.New("https://example.com/item", "  "); err == nil {
		t.Fatal("expected error when spell url missing")
	}
}

func TestFetchItemSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/item/100" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":100,"name":"Glowing Charm","spells":[10,12]}`))
	}))
	t.Cleanup(server.Close)

	client, err := armory.New(server.URL+"/item", server.URL+"/spell")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	item, err := client.FetchItem(context.Background(), 100)
	if err != nil {
		t.Fatalf("FetchItem returned error: %v", err)
	}
	if item.ID != 100 || item.Name != "Glowing Charm" {
		t.Fatalf("unexpected item: %#v", item)
	}
	if len(item.Spells) != 2 || item.Spells[0] != 10 || item.Spells[1] != 12 {
		t.Fatalf("unexpected granted spells: %v", item.Spells)
	}
}

func TestFetchSpellSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/spell/10" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":10,"name":"Haste Boost","effects":[{"grants_aura":true,"affected_spell":21}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := armory.New(server.URL+"/item", server.URL+"/spell")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	spell, err := client.FetchSpell(context.Background(), 10)
	if err != nil {
		t.Fatalf("FetchSpell returned error: %v", err)
	}
	if spell.Name != "Haste Boost" {
		t.Fatalf("unexpected spell: %#v", spell)
	}
	if len(spell.Effects) != 1 || !spell.Effects[0].GrantsAura || spell.Effects[0].AffectedSpell != 21 {
		t.Fatalf("unexpected effects: %#v", spell.Effects)
	}
}

func TestFetchSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Fatalf("expected bearer token, got %q", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`{"id":5,"name":"Dusty Idol"}`))
	}))
	t.Cleanup(server.Close)

	client, err := armory.New(server.URL+"/item", server.URL+"/spell", armory.WithAPIKey("secret"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := client.FetchItem(context.Background(), 5); err != nil {
		t.Fatalf("FetchItem returned error: %v", err)
	}
}

func TestFetchItemHTTPErrorWrapsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client, err := armory.New(server.URL+"/item", server.URL+"/spell")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.FetchItem(context.Background(), 999)
	if err == nil {
		t.Fatal("expected error when service returns 404")
	}
	if !errors.Is(err, armory.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestFetchItemDecodeErrorWrapsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	t.Cleanup(server.Close)

	client, err := armory.New(server.URL+"/item", server.URL+"/spell")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.FetchItem(context.Background(), 1)
	if !errors.Is(err, armory.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for decode failure, got %v", err)
	}
}

func TestFetchRejectsNonPositiveID(t *testing.T) {
	client, err := armory.New("https://example.com/item", "https://example.com/spell")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := client.FetchItem(context.Background(), 0); !errors.Is(err, armory.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for id 0, got %v", err)
	}
	if _, err := client.FetchSpell(context.Background(), -3); !errors.Is(err, armory.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for negative id, got %v", err)
	}
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	client, err := armory.New(server.URL+"/item", server.URL+"/spell")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.FetchItem(ctx, 1); !errors.Is(err, armory.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for cancelled context, got %v", err)
	}
}
