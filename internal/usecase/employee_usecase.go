package usecase

import (
	"context"
	"errors"
	"math"
	"mime/multipart"
	"strings"

	"elitepainters/infrastructure/storage"
	"elitepainters/internal/entity"
	"elitepainters/internal/repository"

	"github.com/rs/zerolog"
)

type EmployeeUsecase interface {
	Index(ctx context.Context, filter entity.EmployeeIndexFilter) ([]entity.Employee, error)
	Get(ctx context.Context, employeeId string) (entity.Employee, error)
	Create(ctx context.Context, employee entity.Employee, photo *multipart.FileHeader) (entity.Employee, error)
	Update(ctx context.Context, employee entity.Employee, photo *multipart.FileHeader) (entity.Employee, error)
	SetActive(ctx context.Context, employeeId string, active bool) error
	Delete(ctx context.Context, employeeId string) error
	CountActive(ctx context.Context) (int64, error)
}

type employeeUsecase struct {
	employeeRepo repository.EmployeeRepository
	images       storage.ImageStorage
	logger       zerolog.Logger
}

func NewEmployeeUsecase(employeeRepo repository.EmployeeRepository, images storage.ImageStorage, logger zerolog.Logger) EmployeeUsecase {
	return &employeeUsecase{
		employeeRepo: employeeRepo,
		images:       images,
		logger:       logger,
	}
}

func (u *employeeUsecase) Index(ctx context.Context, filter entity.EmployeeIndexFilter) ([]entity.Employee, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	employees, err := u.employeeRepo.Index(ctx, filter)
	if err != nil {
		return nil, storeError(err)
	}

	for i := range employees {
		u.withPhotoURL(ctx, &employees[i])
	}
	return employees, nil
}

func (u *employeeUsecase) Get(ctx context.Context, employeeId string) (entity.Employee, error) {
	employee, err := u.employeeRepo.Get(ctx, employeeId)
	if err != nil {
		return entity.Employee{}, employeeError(err)
	}

	u.withPhotoURL(ctx, &employee)
	return employee, nil
}

func (u *employeeUsecase) Create(ctx context.Context, employee entity.Employee, photo *multipart.FileHeader) (entity.Employee, error) {
	if err := validateEmployee(employee); err != nil {
		return entity.Employee{}, err
	}

	if photo != nil {
		key, err := u.savePhoto(ctx, photo)
		if err != nil {
			return entity.Employee{}, err
		}
		employee.Photo = key
	}

	employee.Id = ""
	employee.Status = ""
	id, err := u.employeeRepo.Create(ctx, employee)
	if err != nil {
		u.discard(ctx, employee.Photo)
		return entity.Employee{}, storeError(err)
	}

	return u.Get(ctx, id)
}

// Update replaces the editable fields. The previous photo is removed from
// storage only after the new one is recorded.
func (u *employeeUsecase) Update(ctx context.Context, employee entity.Employee, photo *multipart.FileHeader) (entity.Employee, error) {
	if err := validateEmployee(employee); err != nil {
		return entity.Employee{}, err
	}

	current, err := u.employeeRepo.Get(ctx, employee.Id)
	if err != nil {
		return entity.Employee{}, employeeError(err)
	}

	employee.Photo = current.Photo
	if photo != nil {
		key, err := u.savePhoto(ctx, photo)
		if err != nil {
			return entity.Employee{}, err
		}
		employee.Photo = key
	}

	if err := u.employeeRepo.Update(ctx, employee); err != nil {
		if photo != nil {
			u.discard(ctx, employee.Photo)
		}
		return entity.Employee{}, employeeError(err)
	}
	if photo != nil {
		u.discard(ctx, current.Photo)
	}

	return u.Get(ctx, employee.Id)
}

func (u *employeeUsecase) SetActive(ctx context.Context, employeeId string, active bool) error {
	status := entity.EmployeeInactive
	if active {
		status = entity.EmployeeActive
	}

	if err := u.employeeRepo.SetStatus(ctx, employeeId, status); err != nil {
		return employeeError(err)
	}
	return nil
}

func (u *employeeUsecase) Delete(ctx context.Context, employeeId string) error {
	employee, err := u.employeeRepo.Delete(ctx, employeeId)
	if err != nil {
		return employeeError(err)
	}

	u.discard(ctx, employee.Photo)
	return nil
}

func (u *employeeUsecase) CountActive(ctx context.Context) (int64, error) {
	count, err := u.employeeRepo.CountByStatus(ctx, entity.EmployeeActive)
	if err != nil {
		return 0, storeError(err)
	}
	return count, nil
}

func (u *employeeUsecase) savePhoto(ctx context.Context, photo *multipart.FileHeader) (string, error) {
	if err := storage.ValidateImage(photo); err != nil {
		return "", validationError("%s", err.Error())
	}

	key, err := u.images.Save(ctx, photo)
	if err != nil {
		return "", storeError(err)
	}
	return key, nil
}

func (u *employeeUsecase) withPhotoURL(ctx context.Context, employee *entity.Employee) {
	if employee.Photo == "" {
		return
	}

	url, err := u.images.URL(ctx, employee.Photo)
	if err != nil {
		u.logger.Warn().Err(err).Str("employee_id", employee.Id).Msg("resolve photo url")
		return
	}
	employee.PhotoURL = url
}

func (u *employeeUsecase) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := u.images.Delete(ctx, key); err != nil {
		u.logger.Warn().Err(err).Str("key", key).Msg("delete stored photo")
	}
}

func validateEmployee(employee entity.Employee) error {
	if strings.TrimSpace(employee.Name) == "" || strings.TrimSpace(employee.Role) == "" {
		return validationError("name and role are required")
	}
	if employee.Salary < 0 || math.IsNaN(employee.Salary) || math.IsInf(employee.Salary, 0) {
		return validationError("salary must be a non-negative number")
	}
	return nil
}

func employeeError(err error) error {
	if errors.Is(err, repository.ErrEmployeeNotFound) {
		return notFoundError(err)
	}
	return storeError(err)
}
