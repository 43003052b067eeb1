package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"isafari/internal/models"
)

type CartRepository struct {
	DB *sql.DB
}

const cartSelect = `SELECT ci.id, ci.user_id, ci.service_id, ci.quantity, ci.added_at, ci.updated_at,
	s.title, COALESCE(s.description, ''), COALESCE(s.price, 0), s.category, COALESCE(s.location, ''),
	s.images, s.provider_id, COALESCE(sp.business_name, '')
	FROM cart_items ci
	JOIN services s ON s.id = ci.service_id
	LEFT JOIN service_providers sp ON sp.id = s.provider_id`

func scanCartItem(row scanner) (models.CartItem, error) {
	var c models.CartItem
	err := row.Scan(&c.ID, &c.UserID, &c.ServiceID, &c.Quantity, &c.AddedAt, &c.UpdatedAt,
		&c.Title, &c.Description, &c.Price, &c.Category, &c.Location, pq.Array(&c.Images),
		&c.ProviderID, &c.BusinessName)
	if c.Images == nil {
		c.Images = []string{}
	}
	return c, err
}

func (r *CartRepository) List(ctx context.Context, userID int) ([]models.CartItem, error) {
	return queryAll(ctx, r.DB, sq.Expr(cartSelect+` WHERE ci.user_id = $1 ORDER BY ci.added_at DESC`, userID), scanCartItem)
}

func (r *CartRepository) get(ctx context.Context, db DBTX, id, userID int) (models.CartItem, error) {
	return queryOne(ctx, db, sq.Expr(cartSelect+` WHERE ci.id = $1 AND ci.user_id = $2`, id, userID), scanCartItem)
}

// Add puts quantity units of the service in the cart, adding to any
// quantity already there.
func (r *CartRepository) Add(ctx context.Context, userID, serviceID, quantity int) (models.CartItem, error) {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM services WHERE id = $1)`, serviceID).Scan(&exists); err != nil {
		return models.CartItem{}, err
	}
	if !exists {
		return models.CartItem{}, models.ErrServiceNotFound
	}

	var id int
	err := r.DB.QueryRowContext(ctx, `INSERT INTO cart_items (user_id, service_id, quantity) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, service_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id`, userID, serviceID, quantity).Scan(&id)
	if err != nil {
		return models.CartItem{}, err
	}
	return r.get(ctx, r.DB, id, userID)
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, id, userID, quantity int) (models.CartItem, error) {
	err := execOne(ctx, r.DB, psql.Update("cart_items").Set("quantity", quantity).
		Where(sq.Eq{"id": id, "user_id": userID}))
	if err != nil {
		return models.CartItem{}, err
	}
	return r.get(ctx, r.DB, id, userID)
}

func (r *CartRepository) Remove(ctx context.Context, id, userID int) error {
	return execOne(ctx, r.DB, psql.Delete("cart_items").Where(sq.Eq{"id": id, "user_id": userID}))
}

func (r *CartRepository) Clear(ctx context.Context, userID int) (int64, error) {
	return execAffected(ctx, r.DB, psql.Delete("cart_items").Where(sq.Eq{"user_id": userID}))
}

// Checkout turns every cart item into a pending booking for bookingDate and
// empties the cart, all in one transaction. A deactivated service in the cart
// aborts the whole checkout.
func (r *CartRepository) Checkout(ctx context.Context, userID int, bookingDate time.Time, specialRequests string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT ci.service_id, ci.quantity, COALESCE(s.price, 0), s.provider_id, COALESCE(s.is_active, FALSE)
			FROM cart_items ci JOIN services s ON s.id = ci.service_id
			WHERE ci.user_id = $1 ORDER BY ci.added_at FOR UPDATE OF ci`, userID)
		if err != nil {
			return err
		}
		type line struct {
			serviceID, quantity int
			price               float64
			providerID          sql.NullInt64
			active              bool
		}
		var lines []line
		for rows.Next() {
			var l line
			if err := rows.Scan(&l.serviceID, &l.quantity, &l.price, &l.providerID, &l.active); err != nil {
				rows.Close()
				return err
			}
			lines = append(lines, l)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(lines) == 0 {
			return models.ErrEmptyCart
		}

		for _, l := range lines {
			if !l.active {
				return models.ErrServiceNotFound
			}
			if !l.providerID.Valid {
				return models.ErrProviderNotFound
			}
		}

		for _, l := range lines {
			b, err := insertBooking(ctx, tx, NewBooking{
				TravelerID:      userID,
				ServiceID:       l.serviceID,
				BookingDate:     bookingDate,
				Participants:    l.quantity,
				SpecialRequests: specialRequests,
			}, int(l.providerID.Int64), l.price)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE services SET bookings_count = bookings_count + 1, total_bookings = total_bookings + 1 WHERE id = $1`,
				l.serviceID); err != nil {
				return err
			}
			bookings = append(bookings, b)
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// IsNoRecord reports whether err means the row does not exist.
func IsNoRecord(err error) bool {
	return errors.Is(err, models.ErrNoRecord) || errors.Is(err, sql.ErrNoRows)
}
