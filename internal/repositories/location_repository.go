package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// LocationRepository serves the location maintenance commands over the
// services and service_providers tables.
type LocationRepository struct {
	DB *sql.DB
}

type LocationIssue struct {
	ServiceID int
	Title     string
	Region    string
	District  string
	Area      string
	Problem   string
}

// Audit lists services whose location the journey planner cannot match or
// only matches by accident.
func (r *LocationRepository) Audit(ctx context.Context) ([]LocationIssue, error) {
	return queryAll(ctx, r.DB, sq.Expr(`SELECT id, title, region, district, area, problem FROM (
		SELECT id, title, COALESCE(region, '') AS region, COALESCE(district, '') AS district, COALESCE(area, '') AS area,
		CASE
			WHEN region IS NULL OR TRIM(region) = '' THEN 'missing region'
			WHEN (area IS NOT NULL AND TRIM(area) <> '') AND (district IS NULL OR TRIM(district) = '') THEN 'area without district'
			WHEN region <> TRIM(region) OR district <> TRIM(district) OR area <> TRIM(area) THEN 'untrimmed location'
			WHEN EXISTS (SELECT 1 FROM services o WHERE LOWER(o.region) = LOWER(s.region) AND o.region <> s.region) THEN 'region spelled differently elsewhere'
			WHEN EXISTS (SELECT 1 FROM services o WHERE LOWER(o.district) = LOWER(s.district) AND o.district <> s.district) THEN 'district spelled differently elsewhere'
		END AS problem
		FROM services s
		WHERE is_active
	) audit WHERE problem IS NOT NULL ORDER BY id`), func(row scanner) (LocationIssue, error) {
		var li LocationIssue
		var problem sql.NullString
		err := row.Scan(&li.ServiceID, &li.Title, &li.Region, &li.District, &li.Area, &problem)
		li.Problem = problem.String
		return li, err
	})
}

// Normalize trims location columns and turns blanks into NULL. With dryRun
// it only counts the rows that would change.
func (r *LocationRepository) Normalize(ctx context.Context, dryRun bool) (map[string]int64, error) {
	tables := []struct {
		name string
		cols []string
	}{
		{"services", []string{"country", "region", "district", "area"}},
		{"service_providers", []string{"country", "region", "district", "area", "ward"}},
	}
	changed := make(map[string]int64, len(tables))

	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		for _, t := range tables {
			tbl, cols := t.name, t.cols
			var n int64
			for _, col := range cols {
				where := fmt.Sprintf("%[1]s IS NOT NULL AND (%[1]s <> TRIM(%[1]s) OR TRIM(%[1]s) = '')", col)
				var query string
				if dryRun {
					query = fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", tbl, where)
					var c int64
					if err := tx.QueryRowContext(ctx, query).Scan(&c); err != nil {
						return err
					}
					n += c
					continue
				}
				query = fmt.Sprintf("UPDATE %s SET %[2]s = NULLIF(TRIM(%[2]s), '') WHERE %[3]s", tbl, col, where)
				res, err := tx.ExecContext(ctx, query)
				if err != nil {
					return err
				}
				c, err := res.RowsAffected()
				if err != nil {
					return err
				}
				n += c
			}
			changed[tbl] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changed, nil
}
