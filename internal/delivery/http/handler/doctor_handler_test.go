package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/fielderr"
	"clinic-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDoctorUsecase scripts the usecase behind the handler.
type fakeDoctorUsecase struct {
	checkCreateErr error
	checkUpdateErr error
	created        bool
	updated        bool
}

func (f *fakeDoctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	f.created = true
	return &dto.DoctorResponse{}, nil
}

func (f *fakeDoctorUsecase) GetDoctor(ctx context.Context, personID uuid.UUID) (*dto.DoctorResponse, error) {
	return nil, usecase.ErrDoctorNotFound
}

func (f *fakeDoctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	return &dto.DoctorListResponse{}, nil
}

func (f *fakeDoctorUsecase) UpdateDoctor(ctx context.Context, personID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	f.updated = true
	return &dto.DoctorResponse{}, nil
}

func (f *fakeDoctorUsecase) DeactivateDoctor(ctx context.Context, personID uuid.UUID) (*dto.DoctorResponse, error) {
	return nil, usecase.ErrDoctorNotFound
}

func (f *fakeDoctorUsecase) CheckCreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) error {
	return f.checkCreateErr
}

func (f *fakeDoctorUsecase) CheckUpdateDoctor(ctx context.Context, personID uuid.UUID, req *dto.UpdateDoctorRequest) error {
	return f.checkUpdateErr
}

func decodeErrorMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var resp struct {
		Error map[string]string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func TestCreateDoctor_ReportsFormatAndConflictTogether(t *testing.T) {
	uc := &fakeDoctorUsecase{
		checkCreateErr: fielderr.Errors{"dni": "the DNI is already registered"},
	}
	h := NewDoctorHandler(uc, validator.NewValidator())

	body, err := json.Marshal(map[string]interface{}{
		"person": map[string]interface{}{"dni": "12345678"},
		"cmp":    "not valid!!!",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.CreateDoctor(rec, httptest.NewRequest(http.MethodPost, "/doctors", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, uc.created)

	errs := decodeErrorMap(t, rec)
	assert.Contains(t, errs, "cmp")
	assert.Contains(t, errs, "dni")
}

func TestUpdateDoctor_NotFoundWinsOverFormat(t *testing.T) {
	uc := &fakeDoctorUsecase{checkUpdateErr: usecase.ErrDoctorNotFound}
	h := NewDoctorHandler(uc, validator.NewValidator())

	body, err := json.Marshal(map[string]interface{}{"cmp": "not valid!!!"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/doctors/"+uuid.NewString(), bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()
	h.UpdateDoctor(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, uc.updated)
}

func TestCreateDoctor_FormatErrorIsNotOverwritten(t *testing.T) {
	uc := &fakeDoctorUsecase{
		checkCreateErr: fielderr.Errors{"cmp": "the CMP is already registered"},
	}
	h := NewDoctorHandler(uc, validator.NewValidator())

	body, err := json.Marshal(map[string]interface{}{"cmp": "not valid!!!"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.CreateDoctor(rec, httptest.NewRequest(http.MethodPost, "/doctors", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeErrorMap(t, rec)
	assert.Equal(t, "cmp must be at most 12 alphanumeric characters", errs["cmp"])
}
