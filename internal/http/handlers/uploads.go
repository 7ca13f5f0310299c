package handlers

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"boardinghouse-backend/internal/http/middleware"
	"boardinghouse-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 5 << 20 // 5 MiB per image

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// POST /api/admin/rooms/images — multipart upload, up to 5 images, returns
// the stored URLs for the room payload's image_urls field.
func UploadRoomImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid multipart form", err)
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "no images provided", nil)
		return
	}
	if len(files) > 5 {
		respondError(c, http.StatusBadRequest, "validation_error", "maximum 5 images allowed", nil)
		return
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := storeUpload(c, fh, "rooms")
		if err != nil {
			RespondError(c, http.StatusBadRequest, "image upload failed", err)
			return
		}
		urls = append(urls, url)
	}

	c.JSON(http.StatusOK, gin.H{"image_urls": urls})
}

// POST /api/me/avatar
func UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "avatar file missing", err)
		return
	}

	url, err := storeUpload(c, fh, "avatars")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "avatar upload failed", err)
		return
	}

	userID := middleware.GetUserID(c)
	repo := profileRepo()
	if old, err := repo.GetByID(userID); err == nil && old.AvatarURL != "" {
		removeStoredImages([]string{old.AvatarURL})
	}
	if err := repo.UpdateAvatar(userID, url); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save avatar", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "profile", "avatar", "avatar replaced")
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

func storeUpload(c *gin.Context, fh *multipart.FileHeader, subdir string) (string, error) {
	if fh.Size > maxUploadSize {
		return "", os.ErrInvalid
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		return "", os.ErrInvalid
	}

	dir := filepath.Join(env.UploadDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", err
	}
	return "/uploads/" + subdir + "/" + name, nil
}

// removeStoredImages deletes files previously produced by storeUpload.
// Best effort: a stale file is not worth failing the request over.
func removeStoredImages(urls []string) {
	for _, u := range urls {
		rel, ok := strings.CutPrefix(u, "/uploads/")
		if !ok {
			continue
		}
		rel = filepath.Clean(rel)
		if strings.HasPrefix(rel, "..") {
			continue
		}
		_ = os.Remove(filepath.Join(env.UploadDir, rel))
	}
}
