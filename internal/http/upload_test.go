package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadMultipart(t *testing.T) {
	router := newTestRouter(t)
	_, token := registerAndLogin(t, router, "Ann", "ann@x.com", "pw1234")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range []string{"a.png", "b.jpg"} {
		part, err := writer.CreateFormFile("photos", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	names := decode[[]string](t, w)
	require.Len(t, names, 2)
	assert.True(t, strings.HasSuffix(names[0], ".png"), names[0])
	assert.True(t, strings.HasSuffix(names[1], ".jpg"), names[1])
	for _, name := range names {
		assert.True(t, strings.HasPrefix(name, "photo-"), name)
		assert.NotContains(t, name, "/")

		get := doJSON(t, router, http.MethodGet, "/uploads/"+name, nil, "")
		require.Equal(t, http.StatusOK, get.Code)
		assert.Equal(t, "fake image bytes", get.Body.String())
	}
}

func TestUploadRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(""))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadByLink(t *testing.T) {
	router := newTestRouter(t)
	_, token := registerAndLogin(t, router, "Ann", "ann@x.com", "pw1234")

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("remote image bytes"))
	}))
	defer origin.Close()

	w := doJSON(t, router, http.MethodPost, "/upload-by-link", gin.H{
		"link": origin.URL + "/pic.png",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	name := decode[string](t, w)
	assert.True(t, strings.HasPrefix(name, "photo-"), name)
	assert.True(t, strings.HasSuffix(name, ".png"), name)

	get := doJSON(t, router, http.MethodGet, "/uploads/"+name, nil, "")
	require.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, "remote image bytes", get.Body.String())
}

func TestUploadByLinkRejectsBadURL(t *testing.T) {
	router := newTestRouter(t)
	_, token := registerAndLogin(t, router, "Ann", "ann@x.com", "pw1234")

	for _, link := range []string{"ftp://x/y.png", "not a url at all", "file:///etc/passwd"} {
		w := doJSON(t, router, http.MethodPost, "/upload-by-link", gin.H{"link": link}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code, link)
	}
}

func TestServePhotoMissing(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/uploads/photo-does-not-exist.jpg", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
