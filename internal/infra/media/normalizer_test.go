package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coralpitch/pitchdeck/internal/domain/media"
)

func TestNormalizeLocalAudioPassthrough(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "pitch.mp3")
	req.NoError(os.WriteFile(path, []byte("audio-bytes"), 0o600))

	n := NewNormalizer(dir)
	res, err := n.Normalize(context.Background(), path)
	req.NoError(err)
	req.Equal(path, res.Path, "local audio is used in place, no copy")
	req.Equal(media.KindAudio, res.Kind)
	req.False(res.Temp)
}

func TestNormalizeUnsupportedExtension(t *testing.T) {
	n := NewNormalizer(t.TempDir())
	_, err := n.Normalize(context.Background(), "notes.txt")
	require.ErrorIs(t, err, media.ErrUnsupportedFormat)
}

func TestNormalizeMissingLocalFile(t *testing.T) {
	n := NewNormalizer(t.TempDir())
	_, err := n.Normalize(context.Background(), filepath.Join(t.TempDir(), "absent.mp3"))
	require.Error(t, err)
}

func TestNormalizeFetchesURL(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("downloaded-audio"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	n := NewNormalizer(dir)
	res, err := n.Normalize(context.Background(), srv.URL+"/pitch.mp3?token=abc")
	req.NoError(err)
	req.True(res.Temp)
	req.Equal(media.KindAudio, res.Kind)
	req.Equal(".mp3", filepath.Ext(res.Path), "query string must not leak into the temp extension")

	data, err := os.ReadFile(res.Path)
	req.NoError(err)
	req.Equal("downloaded-audio", string(data))
	os.Remove(res.Path)
}

func TestNormalizeFetchNon2xx(t *testing.T) {
	req := require.New(t)

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	n := NewNormalizer(t.TempDir())
	_, err := n.Normalize(context.Background(), srv.URL+"/pitch.mp3")
	req.ErrorIs(err, media.ErrFetch)
	req.Equal(1, hits, "single attempt, no retry")
}

func TestNormalizeFetchConnectionRefused(t *testing.T) {
	n := NewNormalizer(t.TempDir())
	// Closed server: dial fails immediately.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := n.Normalize(context.Background(), url+"/pitch.wav")
	require.ErrorIs(t, err, media.ErrFetch)
}
