package http

import (
	"errors"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"elitepainters/infrastructure/storage"
	"elitepainters/internal/entity"
	"elitepainters/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// multipart bodies carry at most one image plus a few text fields
const maxUploadBody = storage.MaxImageSize + 1<<20

type EmployeeHandler struct {
	employeeUc usecase.EmployeeUsecase
	logger     zerolog.Logger
}

func NewEmployeeHandler(employeeUc usecase.EmployeeUsecase, logger zerolog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeUc: employeeUc,
		logger:     logger,
	}
}

// formFile returns the optional file under field, nil when absent.
func formFile(w http.ResponseWriter, r *http.Request, field string) (*multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		return nil, errors.New("invalid multipart form")
	}

	_, fileHeader, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New("invalid file upload")
	}
	return fileHeader, nil
}

func employeeFromForm(r *http.Request) (entity.Employee, error) {
	employee := entity.Employee{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Role:    strings.TrimSpace(r.FormValue("role")),
		Contact: strings.TrimSpace(r.FormValue("contact")),
		Doj:     strings.TrimSpace(r.FormValue("doj")),
	}

	if raw := strings.TrimSpace(r.FormValue("salary")); raw != "" {
		salary, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(salary) || math.IsInf(salary, 0) {
			return entity.Employee{}, errors.New("salary must be a number")
		}
		employee.Salary = salary
	}
	return employee, nil
}

// Method Get /admin/employees?search=
func (h *EmployeeHandler) Index(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeUc.Index(r.Context(), entity.EmployeeIndexFilter{
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

// Method Get /admin/employees/{id}
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	employee, err := h.employeeUc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

// Method Post /admin/employees (multipart, optional "photo")
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	photo, err := formFile(w, r, "photo")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	employee, err := employeeFromForm(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.employeeUc.Create(r.Context(), employee, photo)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Method Put /admin/employees/{id} (multipart, optional "photo")
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	photo, err := formFile(w, r, "photo")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	employee, err := employeeFromForm(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	employee.Id = chi.URLParam(r, "id")

	updated, err := h.employeeUc.Update(r.Context(), employee, photo)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Method Delete /admin/employees/{id}
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeUc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "employee deleted")
}

// SetActive returns the POST /admin/employees/{id}/activate|deactivate handler.
func (h *EmployeeHandler) SetActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.employeeUc.SetActive(r.Context(), chi.URLParam(r, "id"), active); err != nil {
			writeError(w, h.logger, err)
			return
		}

		status := entity.EmployeeInactive
		if active {
			status = entity.EmployeeActive
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": status})
	}
}
