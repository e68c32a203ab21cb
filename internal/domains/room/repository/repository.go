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
	"atrium/internal/domains/room/model"
	"atrium/shared/constant"
	"atrium/shared/daterange"
	gDto "atrium/shared/dto"
	"atrium/shared/logger"
	gRepo "atrium/shared/repository"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	FindAvailableTx(ctx context.Context, tx *sqlx.Tx, roomTypeID, branchID string, stay daterange.Range) (model.Room, error)
	PlaceHoldTx(ctx context.Context, tx *sqlx.Tx, roomID string, stay daterange.Range) error
	ReleaseHoldTx(ctx context.Context, tx *sqlx.Tx, roomID string) error
	ReleaseHoldIfOverlapsTx(ctx context.Context, tx *sqlx.Tx, roomID string, stay daterange.Range) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// findAvailableQuery picks the lowest-numbered free room of the requested type
// and branch and locks it for the rest of the transaction. A room qualifies when
// its status is Available, no tentative hold overlaps the stay and no live
// booking overlaps the stay. Overlap on inclusive day intervals:
// aStart <= bEnd AND aEnd >= bStart.
const findAvailableQuery = `
	SELECT rooms.id, rooms.branch_id, rooms.room_type_id, rooms.room_number,
	       rooms.status, rooms.future_status, rooms.unavailable_from, rooms.unavailable_to,
	       rooms.image, rooms.created_at, rooms.modified_at, rooms.created_by, rooms.modified_by
	FROM rooms
	WHERE rooms.room_type_id = $1
	  AND rooms.branch_id = $2
	  AND rooms.status = $3
	  AND (rooms.future_status IS NULL
	       OR rooms.unavailable_from > $5
	       OR rooms.unavailable_to < $4)
	  AND NOT EXISTS (
	        SELECT 1 FROM bookings
	        WHERE bookings.room_id = rooms.id
	          AND bookings.status NOT IN ($6, $7)
	          AND bookings.check_in_date <= $5
	          AND bookings.check_out_date >= $4
	  )
	ORDER BY rooms.room_number ASC
	LIMIT 1
	FOR UPDATE`

func (repo *repositoryImpl) FindAvailableTx(ctx context.Context, tx *sqlx.Tx, roomTypeID, branchID string, stay daterange.Range) (res model.Room, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.FindAvailableTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, findAvailableQuery)

	err = tx.GetContext(ctx, &res, findAvailableQuery,
		roomTypeID,
		branchID,
		constant.RoomStatusAvailable,
		stay.Start,
		stay.End,
		constant.BookingStatusCancelled,
		constant.BookingStatusCheckedOut,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.Room{}, fmt.Errorf("failed to find available room: %w", err)
	}

	return res, nil
}

const placeHoldQuery = `
	UPDATE rooms
	SET future_status = $2, unavailable_from = $3, unavailable_to = $4
	WHERE id = $1`

func (repo *repositoryImpl) PlaceHoldTx(ctx context.Context, tx *sqlx.Tx, roomID string, stay daterange.Range) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.PlaceHoldTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, placeHoldQuery)

	_, err = tx.ExecContext(ctx, placeHoldQuery, roomID, constant.RoomStatusUnavailable, stay.Start, stay.End)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to place room hold: %w", err)
	}

	return nil
}

const releaseHoldQuery = `
	UPDATE rooms
	SET future_status = NULL, unavailable_from = NULL, unavailable_to = NULL
	WHERE id = $1`

func (repo *repositoryImpl) ReleaseHoldTx(ctx context.Context, tx *sqlx.Tx, roomID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.ReleaseHoldTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, releaseHoldQuery)

	_, err = tx.ExecContext(ctx, releaseHoldQuery, roomID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to release room hold: %w", err)
	}

	return nil
}

const releaseHoldIfOverlapsQuery = `
	UPDATE rooms
	SET future_status = NULL, unavailable_from = NULL, unavailable_to = NULL
	WHERE id = $1
	  AND future_status = $2
	  AND unavailable_from <= $4
	  AND unavailable_to >= $3`

func (repo *repositoryImpl) ReleaseHoldIfOverlapsTx(ctx context.Context, tx *sqlx.Tx, roomID string, stay daterange.Range) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.ReleaseHoldIfOverlapsTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, releaseHoldIfOverlapsQuery)

	_, err = tx.ExecContext(ctx, releaseHoldIfOverlapsQuery, roomID, constant.RoomStatusUnavailable, stay.Start, stay.End)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to release room hold: %w", err)
	}

	return nil
}
