/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package backend

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"bennypowers.dev/mishtanim/config"
	"bennypowers.dev/mishtanim/host"
	"bennypowers.dev/mishtanim/importer"
	"bennypowers.dev/mishtanim/snapshot"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestFileKey(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		cfg     *config.Config
		want    string
		wantErr error
	}{
		{name: "flag wins over config", flag: "flagkey", cfg: &config.Config{FileKey: "cfgkey"}, want: "flagkey"},
		{name: "config fallback", cfg: &config.Config{FileKey: "cfgkey"}, want: "cfgkey"},
		{name: "nil config", flag: "flagkey", want: "flagkey"},
		{name: "nothing configured", cfg: &config.Config{}, wantErr: ErrNoFileKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			if tt.flag != "" {
				viper.Set("file-key", tt.flag)
			}
			got, err := FileKey(tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FileKey() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FileKey() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FileKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToken(t *testing.T) {
	resetViper(t)

	if _, err := Token(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Token() error = %v, want ErrNoToken", err)
	}

	viper.Set("token", "figd_abc")
	got, err := Token()
	if err != nil {
		t.Fatalf("Token() unexpected error: %v", err)
	}
	if got != "figd_abc" {
		t.Errorf("Token() = %q, want figd_abc", got)
	}
}

func TestLiveRequiresCredentials(t *testing.T) {
	resetViper(t)

	if _, _, err := Live(nil); !errors.Is(err, ErrNoFileKey) {
		t.Errorf("Live() without key: error = %v, want ErrNoFileKey", err)
	}

	viper.Set("file-key", "abc123")
	if _, _, err := Live(nil); !errors.Is(err, ErrNoToken) {
		t.Errorf("Live() without token: error = %v, want ErrNoToken", err)
	}

	viper.Set("token", "figd_abc")
	h, key, err := Live(nil)
	if err != nil {
		t.Fatalf("Live() unexpected error: %v", err)
	}
	if h == nil || key != "abc123" {
		t.Errorf("Live() = %v, %q; want host for abc123", h, key)
	}
}

func seededSnapshot() ([]*host.Collection, []*host.Variable) {
	collections := []*host.Collection{{
		ID:            "VariableCollectionId:1:2",
		Name:          "Brand",
		DefaultModeID: "1:0",
		Modes:         []host.Mode{{ID: "1:0", Name: "Mode 1"}},
	}}
	variables := []*host.Variable{{
		ID:           "VariableID:1:3",
		Name:         "color-primary",
		Type:         host.TypeColor,
		CollectionID: "VariableCollectionId:1:2",
		ValuesByMode: map[string]any{"1:0": map[string]any{"r": 1.0, "g": 0.0, "b": 0.0, "a": 1.0}},
	}}
	return collections, variables
}

func TestOffline(t *testing.T) {
	store, err := snapshot.OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt() error = %v", err)
	}
	collections, variables := seededSnapshot()
	if err := store.Put("brandfile", collections, variables); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	h, err := Offline(store, "brandfile")
	if err != nil {
		t.Fatalf("Offline() error = %v", err)
	}

	got, err := h.Collections(t.Context())
	if err != nil {
		t.Fatalf("Collections() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Brand" {
		t.Fatalf("Collections() = %+v, want one Brand collection", got)
	}
	vars, err := h.Variables(t.Context(), got[0].ID)
	if err != nil {
		t.Fatalf("Variables() error = %v", err)
	}
	if len(vars) != 1 || vars[0].Name != "color-primary" {
		t.Errorf("Variables() = %+v, want one color-primary variable", vars)
	}
}

func TestOfflineWithoutSnapshot(t *testing.T) {
	store, err := snapshot.OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt() error = %v", err)
	}

	_, err = Offline(store, "neverseen")
	if err == nil {
		t.Fatal("Offline() expected error for missing snapshot")
	}
	if !strings.Contains(err.Error(), "no snapshot") {
		t.Errorf("Offline() error = %v, want mention of missing snapshot", err)
	}
}

func TestDryRunWithoutFileKey(t *testing.T) {
	resetViper(t)
	store, err := snapshot.OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt() error = %v", err)
	}

	h, err := DryRun(t.Context(), nil, store)
	if err != nil {
		t.Fatalf("DryRun() error = %v", err)
	}
	got, err := h.Collections(t.Context())
	if err != nil {
		t.Fatalf("Collections() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Collections() = %+v, want empty host", got)
	}
}

func TestDryRunFallsBackToCache(t *testing.T) {
	resetViper(t)
	viper.Set("file-key", "brandfile")
	// No token: the live path fails and the cache seeds the host.

	store, err := snapshot.OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt() error = %v", err)
	}
	collections, variables := seededSnapshot()
	if err := store.Put("brandfile", collections, variables); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	h, err := DryRun(t.Context(), nil, store)
	if err != nil {
		t.Fatalf("DryRun() error = %v", err)
	}
	got, err := h.Collections(t.Context())
	if err != nil {
		t.Fatalf("Collections() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Brand" {
		t.Errorf("Collections() = %+v, want one Brand collection from cache", got)
	}
}

const localVariablesFixture = `{
  "error": false,
  "status": 200,
  "meta": {
    "variableCollections": {
      "VariableCollectionId:1:2": {
        "id": "VariableCollectionId:1:2",
        "name": "Brand",
        "modes": [{"modeId": "1:0", "name": "Mode 1"}],
        "defaultModeId": "1:0",
        "variableIds": ["VariableID:1:3"]
      }
    },
    "variables": {
      "VariableID:1:3": {
        "id": "VariableID:1:3",
        "name": "color-primary",
        "variableCollectionId": "VariableCollectionId:1:2",
        "resolvedType": "COLOR",
        "valuesByMode": {"1:0": {"r": 1, "g": 0, "b": 0, "a": 1}}
      }
    }
  }
}`

func TestDryRunSeedsFromLiveAndCaches(t *testing.T) {
	resetViper(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/files/brandfile/variables/local" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(localVariablesFixture))
	}))
	defer srv.Close()

	viper.Set("file-key", "brandfile")
	viper.Set("token", "figd_abc")
	viper.Set("api-url", srv.URL)

	store, err := snapshot.OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt() error = %v", err)
	}

	h, err := DryRun(t.Context(), nil, store)
	if err != nil {
		t.Fatalf("DryRun() error = %v", err)
	}
	got, err := h.Collections(t.Context())
	if err != nil {
		t.Fatalf("Collections() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Brand" {
		t.Fatalf("Collections() = %+v, want one Brand collection from the live file", got)
	}

	if _, ok, err := store.Get("brandfile"); err != nil || !ok {
		t.Errorf("Get() after dry run = ok %v, err %v; want cached snapshot", ok, err)
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, &importer.Summary{
		Set:     "Brand",
		Created: 2,
		Updated: 1,
		Skipped: 1,
		Messages: []string{
			`skipped "broken": invalid hex color`,
		},
	})

	want := "Brand: 2 created, 1 updated, 1 skipped\n  skipped \"broken\": invalid hex color\n"
	if buf.String() != want {
		t.Errorf("PrintSummary() = %q, want %q", buf.String(), want)
	}
}
