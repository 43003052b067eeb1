package services

import (
	"context"
	"strings"
	"time"

	"isafari/internal/models"
	"isafari/internal/repositories"
)

type PlanRepository interface {
	List(ctx context.Context, userID int) ([]models.TripPlan, error)
	Upsert(ctx context.Context, userID, serviceID int, planDate, notes interface{}) (models.TripPlan, error)
	Update(ctx context.Context, id, userID int, fields repositories.Fields) (models.TripPlan, error)
	Remove(ctx context.Context, id, userID int) error
	Clear(ctx context.Context, userID int) (int64, error)
}

type PlanService struct {
	PlanRepo PlanRepository
}

type PlanList struct {
	Plans []models.TripPlan `json:"plans"`
	Total int               `json:"total"`
}

func (s *PlanService) List(ctx context.Context, userID int) (PlanList, error) {
	plans, err := s.PlanRepo.List(ctx, userID)
	if err != nil {
		return PlanList{}, err
	}
	if plans == nil {
		plans = []models.TripPlan{}
	}
	return PlanList{Plans: plans, Total: len(plans)}, nil
}

func (s *PlanService) Add(ctx context.Context, userID int, req models.PlanRequest) (models.TripPlan, error) {
	date, err := planDate(req.PlanDate)
	if err != nil {
		return models.TripPlan{}, err
	}
	return s.PlanRepo.Upsert(ctx, userID, req.ServiceID, date, planNotes(req.Notes))
}

func (s *PlanService) Update(ctx context.Context, userID, id int, req models.PlanUpdateRequest) (models.TripPlan, error) {
	fields := repositories.Fields{}
	if req.PlanDate != nil {
		date, err := planDate(req.PlanDate)
		if err != nil {
			return models.TripPlan{}, err
		}
		fields["plan_date"] = date
	}
	if req.Notes != nil {
		fields["notes"] = planNotes(req.Notes)
	}
	return s.PlanRepo.Update(ctx, id, userID, fields)
}

func (s *PlanService) Remove(ctx context.Context, userID, id int) error {
	return s.PlanRepo.Remove(ctx, id, userID)
}

func (s *PlanService) Clear(ctx context.Context, userID int) (int64, error) {
	return s.PlanRepo.Clear(ctx, userID)
}

// planDate parses an optional YYYY-MM-DD date; blank means no date.
func planDate(v *string) (interface{}, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*v))
	if err != nil {
		return nil, err
	}
	return t, nil
}

func planNotes(v *string) interface{} {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return strings.TrimSpace(*v)
}
