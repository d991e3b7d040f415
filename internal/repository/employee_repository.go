package repository

import (
	"context"
	"errors"
	"regexp"

	"elitepainters/internal/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type EmployeeRepository interface {
	Index(ctx context.Context, filter entity.EmployeeIndexFilter) ([]entity.Employee, error)
	Get(ctx context.Context, employeeId string) (entity.Employee, error)
	Create(ctx context.Context, employee entity.Employee) (string, error)
	Update(ctx context.Context, employee entity.Employee) error
	SetStatus(ctx context.Context, employeeId, status string) error
	Delete(ctx context.Context, employeeId string) (entity.Employee, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type employeeRepository struct {
	db mongo.Database
}

func NewEmployeeRepository(db mongo.Database) EmployeeRepository {
	return &employeeRepository{
		db: db,
	}
}

// Index matches Search case-insensitively against name or role.
func (r *employeeRepository) Index(ctx context.Context, filter entity.EmployeeIndexFilter) ([]entity.Employee, error) {
	collection := r.db.Collection("employees")

	bsonFilter := bson.M{}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		bsonFilter = bson.M{
			"$or": bson.A{
				bson.M{"name": pattern},
				bson.M{"role": pattern},
			},
		}
	}

	cursor, err := collection.Find(ctx, bsonFilter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	employees := make([]entity.Employee, 0)
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *employeeRepository) Get(ctx context.Context, employeeId string) (entity.Employee, error) {
	collection := r.db.Collection("employees")

	var employee entity.Employee
	err := collection.FindOne(ctx, bson.M{"_id": employeeId}).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entity.Employee{}, ErrEmployeeNotFound
		}
		return entity.Employee{}, err
	}

	return employee, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee entity.Employee) (string, error) {
	collection := r.db.Collection("employees")
	employee.Id = uuid.New().String()
	if employee.Status == "" {
		employee.Status = entity.EmployeeActive
	}

	_, err := collection.InsertOne(ctx, employee)
	if err != nil {
		return "", err
	}

	return employee.Id, nil
}

func (r *employeeRepository) Update(ctx context.Context, employee entity.Employee) error {
	collection := r.db.Collection("employees")
	filter := bson.M{"_id": employee.Id}
	update := bson.M{
		"$set": bson.M{
			"name":    employee.Name,
			"role":    employee.Role,
			"salary":  employee.Salary,
			"contact": employee.Contact,
			"doj":     employee.Doj,
			"photo":   employee.Photo,
		},
	}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) SetStatus(ctx context.Context, employeeId, status string) error {
	collection := r.db.Collection("employees")
	filter := bson.M{"_id": employeeId}
	update := bson.M{
		"$set": bson.M{
			"status": status,
		},
	}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

// Delete removes the employee and returns the deleted document so the caller
// can release its photo.
func (r *employeeRepository) Delete(ctx context.Context, employeeId string) (entity.Employee, error) {
	collection := r.db.Collection("employees")

	var employee entity.Employee
	err := collection.FindOneAndDelete(ctx, bson.M{"_id": employeeId}).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entity.Employee{}, ErrEmployeeNotFound
		}
		return entity.Employee{}, err
	}

	return employee, nil
}

func (r *employeeRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	collection := r.db.Collection("employees")
	return collection.CountDocuments(ctx, bson.M{"status": status})
}
