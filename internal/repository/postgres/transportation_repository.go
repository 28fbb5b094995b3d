package postgres

import (
	"context"
	"database/sql"
	"errors"

	"crewline/internal/common"
	"crewline/internal/domain/transportation"
)

type TransportationRepository struct {
	db *sql.DB
}

func NewTransportationRepository(db *sql.DB) *TransportationRepository {
	return &TransportationRepository{db: db}
}

func (r *TransportationRepository) Upsert(ctx context.Context, t transportation.Transportation) (*transportation.Transportation, error) {
	_, err := r.db.ExecContext(ctx, `INSERT INTO transportation (application_id, event_id, vehicle_capacity, pickup_location, departure_time, return_time, payment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (application_id) DO UPDATE SET
			vehicle_capacity = EXCLUDED.vehicle_capacity,
			pickup_location = EXCLUDED.pickup_location,
			departure_time = EXCLUDED.departure_time,
			return_time = EXCLUDED.return_time,
			payment = EXCLUDED.payment`,
		t.ApplicationID, t.EventID, t.VehicleCapacity, t.PickupLocation, t.DepartureTime, t.ReturnTime, t.Payment)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to save transportation", err)
	}
	return &t, nil
}

func (r *TransportationRepository) GetByApplication(ctx context.Context, applicationID common.UUID) (*transportation.Transportation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT application_id, event_id, vehicle_capacity, pickup_location, departure_time, return_time, payment
		FROM transportation WHERE application_id = $1`, applicationID)
	var t transportation.Transportation
	var returnTime sql.NullTime
	if err := row.Scan(&t.ApplicationID, &t.EventID, &t.VehicleCapacity, &t.PickupLocation, &t.DepartureTime, &returnTime, &t.Payment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "transportation not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load transportation", err)
	}
	if returnTime.Valid {
		at := returnTime.Time
		t.ReturnTime = &at
	}
	return &t, nil
}

func (r *TransportationRepository) Delete(ctx context.Context, applicationID common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transportation WHERE application_id = $1`, applicationID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete transportation", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "transportation not found", nil)
	}
	return nil
}
