package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"quizgen/models"
	"quizgen/services"

	"github.com/gorilla/mux"
)

type QuizHandler struct {
	quizService    *services.QuizService
	storeService   *services.QuizStoreService
	uploadDir      string
	maxUploadBytes int64
}

func NewQuizHandler(quizService *services.QuizService, storeService *services.QuizStoreService, uploadDir string, maxUploadBytes int64) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		storeService:   storeService,
		uploadDir:      uploadDir,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *QuizHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/quizzes/generate", h.GenerateQuiz).Methods("POST")
	router.HandleFunc("/api/quizzes", h.ListQuizzes).Methods("GET")
	router.HandleFunc("/api/quizzes", h.ClearHistory).Methods("DELETE")
	router.HandleFunc("/api/quizzes/{id:[0-9]+}", h.GetQuiz).Methods("GET")
	router.HandleFunc("/api/quizzes/{id:[0-9]+}", h.DeleteQuiz).Methods("DELETE")
	router.HandleFunc("/api/quizzes/{id:[0-9]+}/question/{questionId}", h.SubmitAnswer).Methods("PATCH")
}

func (h *QuizHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received quiz generation request")

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		log.Printf("[ERROR] Failed to parse multipart form: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	amount, err := strconv.Atoi(r.FormValue("amount"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid question amount")
		return
	}

	params := services.GenerateQuizParams{
		Topic:  r.FormValue("topic"),
		Type:   models.QuizType(r.FormValue("type")),
		Amount: amount,
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		path, saveErr := h.saveUpload(file)
		if saveErr != nil {
			log.Printf("[ERROR] Failed to save uploaded file: %v", saveErr)
			h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to store uploaded file")
			return
		}
		params.FilePath = path
		params.FileName = header.Filename
		params.FileMIME = header.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile):
		// Topic-only generation.
	default:
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid file upload")
		return
	}

	quizID, err := h.quizService.GenerateQuiz(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoSourceText):
			h.writeErrorResponse(w, http.StatusBadRequest, "No text provided")
		case errors.Is(err, models.ErrInvalidQuizType), errors.Is(err, models.ErrInvalidAmount):
			h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to generate quiz")
		}
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.GenerateQuizResponse{QuizID: quizID})
}

func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	quiz, err := h.storeService.GetQuizByID(id)
	if err != nil {
		if errors.Is(err, models.ErrQuizNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Quiz not found")
		} else {
			h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve quiz")
		}
		return
	}

	h.writeJSONResponse(w, http.StatusOK, quiz)
}

func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}
	questionID := mux.Vars(r)["questionId"]

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	feedback, err := h.quizService.SubmitAnswer(id, questionID, req.UserAnswer)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrQuizNotFound), errors.Is(err, models.ErrQuestionNotFound):
			h.writeErrorResponse(w, http.StatusNotFound, err.Error())
		case errors.Is(err, models.ErrAlreadyAnswered):
			h.writeErrorResponse(w, http.StatusConflict, "Question already answered")
		default:
			h.writeErrorResponse(w, http.StatusInternalServerError, "Error updating answer")
		}
		return
	}

	h.writeJSONResponse(w, http.StatusOK, feedback)
}

func (h *QuizHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeErrorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	summaries, err := h.storeService.ListRecent(limit, r.URL.Query().Get("q"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve quizzes")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, summaries)
}

func (h *QuizHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	if err := h.storeService.DeleteQuiz(id); err != nil {
		if errors.Is(err, models.ErrQuizNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Quiz not found")
		} else {
			h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to delete quiz")
		}
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Quiz deleted"})
}

func (h *QuizHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.storeService.ClearHistory()
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to clear history")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Deleted %d quizzes", deleted),
	})
}

func (h *QuizHandler) saveUpload(file io.Reader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	tmp, err := os.CreateTemp(h.uploadDir, "upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return tmp.Name(), nil
}

func (h *QuizHandler) pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

func (h *QuizHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *QuizHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
