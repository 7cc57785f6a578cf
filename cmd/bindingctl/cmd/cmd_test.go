package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/saeid-a/BindingStudio/internal/geometry"
	"github.com/saeid-a/BindingStudio/internal/models"
	"github.com/saeid-a/BindingStudio/internal/repository"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// useMemoryStore points profile commands at a fresh in-memory store.
func useMemoryStore(t *testing.T) *repository.MemoryProfileRepository {
	t.Helper()
	store := repository.NewMemoryProfileRepository()
	previous := openStore
	openStore = func(context.Context) (repository.Store, func(), error) {
		return store, func() {}, nil
	}
	t.Cleanup(func() { openStore = previous })
	return store
}

func seedProfile(t *testing.T, store repository.Store, name string) *models.BindingProfile {
	t.Helper()
	fields := models.DefaultProfileFields()
	fields.Name = name
	profile, err := store.Create(context.Background(), fields)
	require.NoError(t, err)
	return profile
}

func TestSceneCommandUsesFlags(t *testing.T) {
	out, err := runCmd(t, "scene", "--stance", "goofy", "--stance-width", "60", "--setback", "2", "--front-angle", "15")
	require.NoError(t, err)

	var scene geometry.Scene
	require.NoError(t, json.Unmarshal([]byte(out), &scene))
	require.Equal(t, 128.0, scene.Front.X)
	require.Equal(t, -112.0, scene.Back.X)
	require.Equal(t, 105.0, scene.Front.Rotation)
	require.Equal(t, "60cm", scene.StanceLabel.Text)
}

func TestSceneCommandDefaults(t *testing.T) {
	out, err := runCmd(t, "scene")
	require.NoError(t, err)

	var scene geometry.Scene
	require.NoError(t, json.Unmarshal([]byte(out), &scene))
	require.Equal(t, 100.0, scene.Front.X)
	require.Equal(t, geometry.ShapeRaster, scene.Back.Shape)
}

func TestSceneCommandRejectsOutOfRangeFlags(t *testing.T) {
	_, err := runCmd(t, "scene", "--front-angle", "50", "--stance", "switch")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--front-angle must be between -45 and 45")
	require.Contains(t, err.Error(), "--stance must be one of: regular, goofy")
}

func TestRenderCommandWritesPNG(t *testing.T) {
	output := filepath.Join(t.TempDir(), "layout.png")
	out, err := runCmd(t, "render", "--back", "vector", "-o", output)
	require.NoError(t, err)
	require.Contains(t, out, "wrote "+output)

	file, err := os.Open(output)
	require.NoError(t, err)
	defer file.Close()
	cfg, err := png.DecodeConfig(file)
	require.NoError(t, err)
	require.Equal(t, geometry.CanvasWidth, cfg.Width)
	require.Equal(t, geometry.CanvasHeight, cfg.Height)
}

func TestRenderCommandStoredProfile(t *testing.T) {
	store := useMemoryStore(t)
	profile := seedProfile(t, store, "Park")
	output := filepath.Join(t.TempDir(), "profile.png")

	_, err := runCmd(t, "render", "--profile", "1", "-o", output)
	require.NoError(t, err)
	require.FileExists(t, output)
	require.Equal(t, int64(1), profile.ID)

	_, err = runCmd(t, "render", "--profile", "99", "-o", output)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfilesListAndShow(t *testing.T) {
	store := useMemoryStore(t)
	seedProfile(t, store, "Park")
	seedProfile(t, store, "Powder")

	out, err := runCmd(t, "profiles", "list")
	require.NoError(t, err)
	require.Contains(t, out, "NAME")
	require.Contains(t, out, "Park")
	require.Contains(t, out, "Powder")

	out, err = runCmd(t, "profiles", "show", "2")
	require.NoError(t, err)
	var shown models.BindingProfile
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	require.Equal(t, "Powder", shown.Name)

	_, err = runCmd(t, "profiles", "show", "abc")
	require.EqualError(t, err, `invalid profile id "abc"`)
}

func TestExportCommandWritesNamedFile(t *testing.T) {
	store := useMemoryStore(t)
	profile := seedProfile(t, store, "Park Setup")
	dir := t.TempDir()

	out, err := runCmd(t, "export", "1", "--dir", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "Park Setup-binding-profile.json")
	require.Contains(t, out, path)

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	var exported models.BindingProfile
	require.NoError(t, json.Unmarshal(payload, &exported))
	require.Equal(t, profile.ID, exported.ID)
	require.Equal(t, "Park Setup", exported.Name)
	require.Contains(t, string(payload), "\n  \"name\": \"Park Setup\"")
}

func TestFlagName(t *testing.T) {
	require.Equal(t, "stance-width", flagName("stanceWidth"))
	require.Equal(t, "stance", flagName("stance"))
}
