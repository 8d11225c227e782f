package services

import (
	"fmt"
	"strings"

	"github.com/Dosada05/movie-battle/models"
	"github.com/Dosada05/movie-battle/storage"
)

func populatePosterURL(movie *models.Movie, uploader storage.FileUploader) {
	if movie != nil && movie.PosterKey != nil && *movie.PosterKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*movie.PosterKey)
		if url != "" {
			movie.Poster = url
		}
	}
}

func populatePosterURLs(movies []models.Movie, uploader storage.FileUploader) {
	if uploader == nil {
		return
	}
	for i := range movies {
		populatePosterURL(&movies[i], uploader)
	}
}

func posterKey(movieID int, ext string) string {
	return fmt.Sprintf("posters/%d%s", movieID, ext)
}

// GetExtensionFromContentType maps an image content type to a file extension.
func GetExtensionFromContentType(contentType string) (string, error) {
	contentType = strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && parts[0] == "image" && parts[1] != "" {
			// image/svg+xml -> .svg
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPoster, contentType)
	}
}
