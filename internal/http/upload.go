package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rental-api/internal/storage"
)

type uploadByLinkRequest struct {
	Link string `json:"link" binding:"required"`
}

// uploadByLink downloads an image from a URL into photo storage and
// returns the generated filename.
func (h *Handler) uploadByLink(c *gin.Context) {
	var req uploadByLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parsed, err := url.Parse(req.Link)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid link"})
		return
	}

	httpReq, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, parsed.String(), nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid link"})
		return
	}
	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to download image"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to download image: status %d", resp.StatusCode)})
		return
	}

	name := photoName(path.Ext(parsed.Path))
	body := io.LimitReader(resp.Body, h.maxUploadBytes)
	if err := h.storage.Save(c.Request.Context(), name, body); err != nil {
		h.logger.Errorf("save downloaded photo: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, name)
}

// upload accepts a multipart form with a "photos" field and stores each
// file under a server-generated name.
func (h *Handler) upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no photos provided"})
		return
	}
	if len(files) > h.maxPhotoCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("at most %d photos per upload", h.maxPhotoCount)})
		return
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		if file.Size > h.maxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file %s exceeds size limit", file.Filename)})
			return
		}

		src, err := file.Open()
		if err != nil {
			h.logger.Errorf("open uploaded file: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		name := photoName(path.Ext(file.Filename))
		err = h.storage.Save(c.Request.Context(), name, src)
		src.Close()
		if err != nil {
			h.logger.Errorf("save uploaded photo: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		names = append(names, name)
	}

	c.JSON(http.StatusOK, names)
}

func (h *Handler) servePhoto(c *gin.Context) {
	name := path.Base(c.Param("name"))
	if name == "" || name == "." || name == "/" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo name"})
		return
	}

	body, size, err := h.storage.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.logger.Errorf("open photo %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	defer body.Close()

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, size, contentType, body, nil)
}

// photoName builds a server-generated object name. The client-supplied
// filename only ever contributes a sanitized extension.
func photoName(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.ContainsAny(ext, "/\\") || len(ext) > 8 {
		ext = ".jpg"
	}
	return "photo-" + uuid.NewString() + ext
}
