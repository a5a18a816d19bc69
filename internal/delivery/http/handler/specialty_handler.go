package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/fielderr"
	"clinic-backend/pkg/response"
	"clinic-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type SpecialtyHandler struct {
	specialtyUsecase usecase.SpecialtyUsecase
	validator        *validator.CustomValidator
}

func NewSpecialtyHandler(specialtyUsecase usecase.SpecialtyUsecase, validator *validator.CustomValidator) *SpecialtyHandler {
	return &SpecialtyHandler{
		specialtyUsecase: specialtyUsecase,
		validator:        validator,
	}
}

func (h *SpecialtyHandler) CreateSpecialty(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSpecialtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.FieldErrors(w, h.validator.FormatValidationErrors(err))
		return
	}

	specialty, err := h.specialtyUsecase.CreateSpecialty(r.Context(), &req)
	if err != nil {
		if fe, ok := fielderr.AsErrors(err); ok {
			response.FieldErrors(w, fe)
			return
		}
		response.InternalServerError(w, "Failed to create specialty")
		return
	}

	response.Success(w, http.StatusCreated, "Specialty created successfully", specialty)
}

func (h *SpecialtyHandler) GetSpecialty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid specialty id", nil)
		return
	}

	specialty, err := h.specialtyUsecase.GetSpecialty(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		default:
			response.InternalServerError(w, "Failed to get specialty")
		}
		return
	}

	response.Success(w, http.StatusOK, "Specialty retrieved successfully", specialty)
}

func (h *SpecialtyHandler) GetAllSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.specialtyUsecase.GetAllSpecialties(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

func (h *SpecialtyHandler) UpdateSpecialty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid specialty id", nil)
		return
	}

	var req dto.UpdateSpecialtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.FieldErrors(w, h.validator.FormatValidationErrors(err))
		return
	}

	specialty, err := h.specialtyUsecase.UpdateSpecialty(r.Context(), id, &req)
	if err != nil {
		if fe, ok := fielderr.AsErrors(err); ok {
			response.FieldErrors(w, fe)
			return
		}
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		default:
			response.InternalServerError(w, "Failed to update specialty")
		}
		return
	}

	response.Success(w, http.StatusOK, "Specialty updated successfully", specialty)
}

func (h *SpecialtyHandler) DeactivateSpecialty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid specialty id", nil)
		return
	}

	specialty, err := h.specialtyUsecase.DeactivateSpecialty(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		case usecase.ErrSpecialtyInactive:
			response.Conflict(w, "Specialty is already inactive")
		default:
			response.InternalServerError(w, "Failed to deactivate specialty")
		}
		return
	}

	response.Success(w, http.StatusOK, "Specialty deactivated successfully", specialty)
}
