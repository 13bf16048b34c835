package docs

import (
	"strings"
	"testing"
)

func TestSwaggerInfoRegistered(t *testing.T) {
	if SwaggerInfo == nil {
		t.Fatal("swagger info not initialized")
	}
	if SwaggerInfo.Title != "Sol Watchtower API" {
		t.Fatalf("unexpected title: %s", SwaggerInfo.Title)
	}
}

func TestTemplateCoversRoutes(t *testing.T) {
	for _, route := range []string{"/health", "/api/status", "/api/wallets", "/api/winrate", "/api/poll"} {
		if !strings.Contains(docTemplate, `"`+route+`"`) {
			t.Errorf("template missing route %s", route)
		}
	}
}
