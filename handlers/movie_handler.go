package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/movie-battle/services"
)

const maxPosterSize = 10 << 20

type MovieHandler struct {
	movieService services.MovieService
}

func NewMovieHandler(ms services.MovieService) *MovieHandler {
	return &MovieHandler{
		movieService: ms,
	}
}

// ListMovies godoc
// @Summary  Movies battles are sampled from
// @Tags     movies
// @Produce  json
// @Success  200  {array}   models.Movie
// @Failure  502  {object}  map[string]string
// @Router   /movies [get]
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movieService.Pool(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"movies": movies, "count": len(movies)}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateMovie godoc
// @Summary  Add a movie to the catalog
// @Tags     admin
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    movie  body      services.CreateMovieInput  true  "Movie"
// @Success  201    {object}  models.Movie
// @Failure  409    {object}  map[string]string
// @Router   /movies [post]
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMovieInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	movie, err := h.movieService.CreateMovie(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"movie": movie}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadPoster godoc
// @Summary  Upload a poster image for a movie
// @Tags     admin
// @Accept   multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param    movieID  path      int   true  "Movie ID"
// @Param    poster   formData  file  true  "Poster image"
// @Success  200      {object}  models.Movie
// @Router   /movies/{movieID}/poster [post]
func (h *MovieHandler) UploadPoster(w http.ResponseWriter, r *http.Request) {
	movieID, err := getIDFromURL(r, "movieID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPosterSize+1<<20)
	if err := r.ParseMultipartForm(maxPosterSize); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("poster")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get poster file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for poster"))
		return
	}

	movie, err := h.movieService.UploadPoster(r.Context(), movieID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"movie": movie}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMovie godoc
// @Summary  Remove a movie from the catalog
// @Tags     admin
// @Security BearerAuth
// @Param    movieID  path  int  true  "Movie ID"
// @Success  204
// @Failure  404  {object}  map[string]string
// @Router   /movies/{movieID} [delete]
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := getIDFromURL(r, "movieID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.movieService.DeleteMovie(r.Context(), movieID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
