package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/internal/domains/prebooking/model"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/logger"
	gRepo "atrium/shared/repository"
)

type PreBooking interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.PreBooking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PreBooking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PreBooking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.PreBooking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.PreBooking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) PreBooking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PreBooking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const getForUpdateQuery = `
	SELECT pre_bookings.id, pre_bookings.guest_id, pre_bookings.branch_id,
	       pre_bookings.room_type_id, pre_bookings.room_id, pre_bookings.capacity,
	       pre_bookings.method, pre_bookings.expected_check_in, pre_bookings.expected_check_out,
	       pre_bookings.num_adults, pre_bookings.num_children, pre_bookings.special_requests,
	       pre_bookings.created_at, pre_bookings.modified_at, pre_bookings.created_by,
	       pre_bookings.modified_by, rooms.room_number AS room_number
	FROM pre_bookings
	LEFT JOIN rooms ON rooms.id = pre_bookings.room_id
	WHERE pre_bookings.id = $1
	FOR UPDATE OF pre_bookings`

// GetForUpdateTx locks the pre-booking row for the rest of the transaction,
// closing the check-then-act window between the conversion check and the
// booking insert. Returns a zero model when the row does not exist.
func (repo *repositoryImpl) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (res model.PreBooking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".pre_booking.GetForUpdateTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, getForUpdateQuery)

	err = tx.GetContext(ctx, &res, getForUpdateQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PreBooking{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.PreBooking{}, fmt.Errorf("failed to lock pre-booking: %w", err)
	}

	return res, nil
}
