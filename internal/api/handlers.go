package api

import (
	"net/http"

	"github.com/vytor/pandaschool/internal/logger"
	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/services"
)

type signupRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	ParentName string `json:"parentName" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type childProfileRequest struct {
	ChildName string `json:"childName" validate:"required"`
	ChildAge  int    `json:"childAge" validate:"gte=5"`
	Avatar    int    `json:"avatar" validate:"gte=0,lte=5"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := s.Validator.DecodeAndValidate(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	userID, err := s.AuthService.Signup(r.Context(), services.SignupInput{
		Email:      req.Email,
		Password:   req.Password,
		ParentName: req.ParentName,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"userId":  userID,
		"message": "account created",
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.Validator.DecodeAndValidate(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"accessToken": res.AccessToken,
		"userId":      res.UserID,
	})
}

func (s *Server) handleSaveChild(w http.ResponseWriter, r *http.Request) {
	var req childProfileRequest
	if err := s.Validator.DecodeAndValidate(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	child := models.ChildProfile{ChildName: req.ChildName, ChildAge: req.ChildAge, Avatar: req.Avatar}
	if err := s.StoreService.SaveChild(r.Context(), userIDFromContext(r.Context()), child); err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "child profile saved"})
}

func (s *Server) handleSaveProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var record models.ProgressRecord
	if err := decodeJSON(w, r, &record); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.StoreService.SaveProgress(r.Context(), userIDFromContext(r.Context()), record); err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("progress saved: lessons=%d", record.LessonsCompleted)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "progress saved"})
}

func (s *Server) handleUserData(w http.ResponseWriter, r *http.Request) {
	data, err := s.StoreService.UserData(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.StoreService.Summary(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": summary})
}
