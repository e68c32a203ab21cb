package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/internal/domains/serviceusage/model"
	gDto "atrium/shared/dto"
	gRepo "atrium/shared/repository"
)

type ServiceUsage interface {
	Insert(ctx context.Context, model model.ServiceUsage) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ServiceUsage, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ServiceUsage, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ServiceUsage]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) ServiceUsage {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ServiceUsage](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
