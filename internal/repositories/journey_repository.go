package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/sync/errgroup"

	"isafari/internal/models"
)

var journeysTable = newTable("multi_trip_journeys",
	"id", "user_id", "journey_name", "total_destinations", "start_date", "end_date", "travelers",
	"budget", "total_cost", "status", "created_at", "updated_at",
)

var destinationsTable = newTable("multi_trip_destinations",
	"id", "journey_id", "destination_order", "country", "region", "district", "sublocation",
	"is_starting_point", "is_ending_point", "created_at",
)

type JourneyRepository struct {
	DB *sql.DB
}

func scanJourney(row scanner) (models.Journey, error) {
	var j models.Journey
	var total sql.NullFloat64
	var status sql.NullString
	var travelers, destinations sql.NullInt64
	err := row.Scan(&j.ID, &j.UserID, &j.JourneyName, &destinations, &j.StartDate, &j.EndDate, &travelers,
		&j.Budget, &total, &status, &j.CreatedAt, &j.UpdatedAt)
	j.TotalDestinations = int(destinations.Int64)
	j.Travelers = int(travelers.Int64)
	j.TotalCost = total.Float64
	j.Status = status.String
	j.Destinations = []models.JourneyDestination{}
	j.Services = []models.JourneyService{}
	return j, err
}

func scanDestination(row scanner) (models.JourneyDestination, error) {
	var d models.JourneyDestination
	err := row.Scan(&d.ID, &d.JourneyID, &d.DestinationOrder, &d.Country, &d.Region, &d.District,
		&d.Sublocation, &d.IsStartingPoint, &d.IsEndingPoint, &d.CreatedAt)
	return d, err
}

func scanJourneyService(row scanner) (models.JourneyService, error) {
	var s models.JourneyService
	var quantity sql.NullInt64
	var price sql.NullFloat64
	err := row.Scan(&s.ID, &s.JourneyID, &s.DestinationID, &s.ServiceID, &quantity, &price, &s.AddedAt,
		&s.Title, &s.Category)
	s.Quantity = int(quantity.Int64)
	s.Price = price.Float64
	return s, err
}

// Create inserts the journey as a draft and then all of its destinations
// concurrently on the same transaction. Either every row is committed or
// none is.
func (r *JourneyRepository) Create(ctx context.Context, j models.Journey, dests []models.DestinationInput) (models.Journey, error) {
	if len(dests) < models.MinJourneyDestinations || len(dests) > models.MaxJourneyDestinations {
		return models.Journey{}, models.ErrDestinationCount
	}
	travelers := j.Travelers
	if travelers < 1 {
		travelers = 1
	}

	var created models.Journey
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		b, err := journeysTable.insert(Fields{
			"user_id":            j.UserID,
			"journey_name":       nullIfBlankPtr(j.JourneyName),
			"total_destinations": len(dests),
			"start_date":         j.StartDate,
			"end_date":           j.EndDate,
			"travelers":          travelers,
			"budget":             nullIfBlankPtr(j.Budget),
			"status":             models.JourneyDraft,
		})
		if err != nil {
			return err
		}
		if created, err = queryOne(ctx, tx, b, scanJourney); err != nil {
			return err
		}

		// every insert runs to completion so the rollback sees a settled tx
		var g errgroup.Group
		for i, d := range dests {
			g.Go(func() error {
				if err := insertDestination(ctx, tx, created.ID, i, len(dests), d); err != nil {
					return fmt.Errorf("insert destination %d: %w", i+1, err)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		created.Destinations, err = listDestinations(ctx, tx, created.ID)
		return err
	})
	if err != nil {
		return models.Journey{}, err
	}
	return created, nil
}

// insertDestination uses Exec so the statement is fully consumed before the
// shared transaction connection is handed to the next goroutine.
func insertDestination(ctx context.Context, tx DBTX, journeyID, index, count int, d models.DestinationInput) error {
	b := psql.Insert("multi_trip_destinations").
		Columns("journey_id", "destination_order", "country", "region", "district", "sublocation",
			"is_starting_point", "is_ending_point").
		Values(journeyID, index+1, nullIfBlank(d.Country), nullIfBlank(d.Region), nullIfBlank(d.District),
			nullIfBlank(d.Sublocation), index == 0, index == count-1)
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

func listDestinations(ctx context.Context, db DBTX, journeyID int) ([]models.JourneyDestination, error) {
	b, err := destinationsTable.selectAll(Where("journey_id", journeyID))
	if err != nil {
		return nil, err
	}
	return queryAll(ctx, db, b.OrderBy("destination_order"), scanDestination)
}

func listJourneyServices(ctx context.Context, db DBTX, journeyID int) ([]models.JourneyService, error) {
	b := psql.Select("mts.id", "mts.journey_id", "mts.destination_id", "mts.service_id", "mts.quantity",
		"mts.price", "mts.added_at", "s.title", "s.category").
		From("multi_trip_services mts").
		Join("services s ON s.id = mts.service_id").
		Where(sq.Eq{"mts.journey_id": journeyID}).
		OrderBy("mts.added_at")
	return queryAll(ctx, db, b, scanJourneyService)
}

func (r *JourneyRepository) hydrate(ctx context.Context, j *models.Journey) error {
	var err error
	if j.Destinations, err = listDestinations(ctx, r.DB, j.ID); err != nil {
		return err
	}
	j.Services, err = listJourneyServices(ctx, r.DB, j.ID)
	return err
}

func (r *JourneyRepository) ListByUser(ctx context.Context, userID int) ([]models.Journey, error) {
	b, err := journeysTable.selectAll(Where("user_id", userID))
	if err != nil {
		return nil, err
	}
	journeys, err := queryAll(ctx, r.DB, b.OrderBy("created_at DESC"), scanJourney)
	if err != nil {
		return nil, err
	}
	for i := range journeys {
		if err := r.hydrate(ctx, &journeys[i]); err != nil {
			return nil, err
		}
	}
	return journeys, nil
}

// GetByID returns the user's journey with destinations and services.
func (r *JourneyRepository) GetByID(ctx context.Context, id, userID int) (models.Journey, error) {
	b, err := journeysTable.selectAll(Where("id", id).And("user_id", userID))
	if err != nil {
		return models.Journey{}, err
	}
	j, err := queryOne(ctx, r.DB, b, scanJourney)
	if err != nil {
		return models.Journey{}, err
	}
	if err := r.hydrate(ctx, &j); err != nil {
		return models.Journey{}, err
	}
	return j, nil
}

func lockJourney(ctx context.Context, tx *sql.Tx, id, userID int) error {
	var found int
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM multi_trip_journeys WHERE id = $1 AND user_id = $2 FOR UPDATE`, id, userID).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrJourneyNotFound
	}
	return err
}

func updateJourneyTotal(ctx context.Context, tx DBTX, journeyID int) (float64, error) {
	var total sql.NullFloat64
	err := tx.QueryRowContext(ctx, `UPDATE multi_trip_journeys
		SET total_cost = (SELECT COALESCE(SUM(price * COALESCE(quantity, 1)), 0) FROM multi_trip_services WHERE journey_id = $1)
		WHERE id = $1 RETURNING total_cost`, journeyID).Scan(&total)
	return total.Float64, err
}

// AddService adds or reprices a service on the journey and refreshes the
// journey's total cost.
func (r *JourneyRepository) AddService(ctx context.Context, journeyID, userID int, in models.JourneyServiceRequest) (models.JourneyService, float64, error) {
	quantity := in.Quantity
	if quantity < 1 {
		quantity = 1
	}
	var added models.JourneyService
	var total float64
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if err := lockJourney(ctx, tx, journeyID, userID); err != nil {
			return err
		}
		if in.DestinationID != nil {
			var ok bool
			if err := tx.QueryRowContext(ctx,
				`SELECT EXISTS(SELECT 1 FROM multi_trip_destinations WHERE id = $1 AND journey_id = $2)`,
				*in.DestinationID, journeyID).Scan(&ok); err != nil {
				return err
			}
			if !ok {
				return models.ErrNoRecord
			}
		}

		var id int
		err := tx.QueryRowContext(ctx, `UPDATE multi_trip_services SET price = $4, quantity = $5
			WHERE journey_id = $1 AND service_id = $2 AND destination_id IS NOT DISTINCT FROM $3
			RETURNING id`, journeyID, in.ServiceID, in.DestinationID, in.Price, quantity).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			err = tx.QueryRowContext(ctx, `INSERT INTO multi_trip_services (journey_id, destination_id, service_id, quantity, price)
				VALUES ($1, $2, $3, $5, $4)
				ON CONFLICT (journey_id, destination_id, service_id) DO UPDATE SET price = EXCLUDED.price, quantity = EXCLUDED.quantity
				RETURNING id`, journeyID, in.DestinationID, in.ServiceID, in.Price, quantity).Scan(&id)
		}
		if err != nil {
			return err
		}

		if added, err = queryOne(ctx, tx, psql.Select("mts.id", "mts.journey_id", "mts.destination_id", "mts.service_id",
			"mts.quantity", "mts.price", "mts.added_at", "s.title", "s.category").
			From("multi_trip_services mts").Join("services s ON s.id = mts.service_id").
			Where(sq.Eq{"mts.id": id}), scanJourneyService); err != nil {
			return err
		}
		total, err = updateJourneyTotal(ctx, tx, journeyID)
		return err
	})
	if err != nil {
		return models.JourneyService{}, 0, err
	}
	return added, total, nil
}

// RemoveService drops every entry of the service from the journey.
func (r *JourneyRepository) RemoveService(ctx context.Context, journeyID, userID, serviceID int) (float64, error) {
	var total float64
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if err := lockJourney(ctx, tx, journeyID, userID); err != nil {
			return err
		}
		if err := execOne(ctx, tx, psql.Delete("multi_trip_services").
			Where(sq.Eq{"journey_id": journeyID, "service_id": serviceID})); err != nil {
			return err
		}
		var err error
		total, err = updateJourneyTotal(ctx, tx, journeyID)
		return err
	})
	return total, err
}

func (r *JourneyRepository) UpdateStatus(ctx context.Context, id, userID int, status string) (models.Journey, error) {
	b := psql.Update("multi_trip_journeys").Set("status", status).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + joinColumns(journeysTable.columns))
	return queryOne(ctx, r.DB, b, scanJourney)
}

func (r *JourneyRepository) Delete(ctx context.Context, id, userID int) error {
	return execOne(ctx, r.DB, psql.Delete("multi_trip_journeys").Where(sq.Eq{"id": id, "user_id": userID}))
}
