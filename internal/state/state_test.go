package state_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/blackwell-systems/dexctl/internal/catalog"
	"github.com/blackwell-systems/dexctl/internal/config"
	"github.com/blackwell-systems/dexctl/internal/kv"
	"github.com/blackwell-systems/dexctl/internal/state"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Auth.HashCost = bcrypt.MinCost
	cfg.Storage.Path = filepath.Join(t.TempDir(), "dexctl.db")
	return cfg
}

func TestOpen_RestoresAcrossRuns(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	a, err := state.Open(ctx, cfg, nil)
	require.NoError(t, err)
	require.NoError(t, a.Session.Login(ctx, "admin", "password"))
	a.Custom.Add(ctx, catalog.Fields{Name: "Zemo", Types: []string{"fire"}, SpriteURL: "u"})
	require.NoError(t, a.Close())

	b, err := state.Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer b.Close()

	assert.True(t, b.Session.IsElevated())
	list := b.Custom.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Zemo", list[0].Name)
}

func TestNew_BadPasswordHash(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.PasswordHash = "nope"
	_, err := state.New(context.Background(), cfg, nil, kv.NewMemory())
	assert.Error(t, err)
}

func TestRefresh_UsesConfiguredCatalogue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dexctl-ci", r.Header.Get("User-Agent"))
		if r.URL.Path == "/pokemon" {
			assert.Equal(t, "3", r.URL.Query().Get("limit"))
			fmt.Fprintf(w, `{"results":[{"name":"a","url":"http://%s/pokemon/1/"}]}`, r.Host)
			return
		}
		fmt.Fprint(w, `{"id":1,"name":"a","types":[{"type":{"name":"grass"}}],"sprites":{"front_default":"s"}}`)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Catalogue.APIBase = srv.URL
	cfg.Catalogue.PageSize = 3
	cfg.Catalogue.UserAgent = "dexctl-ci"
	ctx := context.Background()

	a, err := state.New(ctx, cfg, nil, kv.NewMemory())
	require.NoError(t, err)
	a.Custom.Add(ctx, catalog.Fields{Name: "Zemo", Types: []string{"fire"}, SpriteURL: "u"})

	list, err := a.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "Zemo", list[1].Name)
}
