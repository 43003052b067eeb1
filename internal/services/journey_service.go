package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"isafari/internal/models"
)

type JourneyRepository interface {
	Create(ctx context.Context, j models.Journey, dests []models.DestinationInput) (models.Journey, error)
	ListByUser(ctx context.Context, userID int) ([]models.Journey, error)
	GetByID(ctx context.Context, id, userID int) (models.Journey, error)
	AddService(ctx context.Context, journeyID, userID int, in models.JourneyServiceRequest) (models.JourneyService, float64, error)
	RemoveService(ctx context.Context, journeyID, userID, serviceID int) (float64, error)
	UpdateStatus(ctx context.Context, id, userID int, status string) (models.Journey, error)
	Delete(ctx context.Context, id, userID int) error
}

type JourneyService struct {
	JourneyRepo JourneyRepository
}

type JourneyServiceResult struct {
	Service   models.JourneyService `json:"service"`
	TotalCost float64               `json:"total_cost"`
}

// Create stores the journey with its 2 to 4 destinations atomically.
func (s *JourneyService) Create(ctx context.Context, userID int, req models.JourneyRequest) (models.Journey, error) {
	n := len(req.Destinations)
	if n < models.MinJourneyDestinations || n > models.MaxJourneyDestinations {
		return models.Journey{}, models.ErrDestinationCount
	}

	j := models.Journey{
		UserID:    userID,
		Travelers: req.Travelers,
		Budget:    optionalStr(req.Budget),
	}
	if j.Travelers == 0 {
		j.Travelers = 1
	}
	name := strings.TrimSpace(req.JourneyName)
	if name == "" {
		name = defaultJourneyName(req.Destinations)
	}
	j.JourneyName = &name

	var err error
	if j.StartDate, err = optionalDate(req.StartDate); err != nil {
		return models.Journey{}, err
	}
	if j.EndDate, err = optionalDate(req.EndDate); err != nil {
		return models.Journey{}, err
	}
	return s.JourneyRepo.Create(ctx, j, req.Destinations)
}

func defaultJourneyName(dests []models.DestinationInput) string {
	var stops []string
	for _, d := range dests {
		if r := strings.TrimSpace(d.Region); r != "" {
			stops = append(stops, r)
		}
	}
	if len(stops) == 0 {
		return "Multi-destination journey"
	}
	return strings.Join(stops, " → ")
}

func optionalDate(v *string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*v))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *JourneyService) List(ctx context.Context, userID int) ([]models.Journey, error) {
	js, err := s.JourneyRepo.ListByUser(ctx, userID)
	if js == nil && err == nil {
		js = []models.Journey{}
	}
	return js, err
}

func (s *JourneyService) Get(ctx context.Context, userID, id int) (models.Journey, error) {
	j, err := s.JourneyRepo.GetByID(ctx, id, userID)
	if errors.Is(err, models.ErrNoRecord) {
		return models.Journey{}, models.ErrJourneyNotFound
	}
	return j, err
}

func (s *JourneyService) AddService(ctx context.Context, userID, id int, req models.JourneyServiceRequest) (JourneyServiceResult, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	svc, total, err := s.JourneyRepo.AddService(ctx, id, userID, req)
	if err != nil {
		return JourneyServiceResult{}, err
	}
	return JourneyServiceResult{Service: svc, TotalCost: total}, nil
}

func (s *JourneyService) RemoveService(ctx context.Context, userID, id, serviceID int) (float64, error) {
	return s.JourneyRepo.RemoveService(ctx, id, userID, serviceID)
}

func (s *JourneyService) UpdateStatus(ctx context.Context, userID, id int, status string) (models.Journey, error) {
	if !slices.Contains(models.JourneyStatuses, status) {
		return models.Journey{}, models.ErrInvalidStatus
	}
	j, err := s.JourneyRepo.UpdateStatus(ctx, id, userID, status)
	if errors.Is(err, models.ErrNoRecord) {
		return models.Journey{}, models.ErrJourneyNotFound
	}
	return j, err
}

func (s *JourneyService) Delete(ctx context.Context, userID, id int) error {
	err := s.JourneyRepo.Delete(ctx, id, userID)
	if errors.Is(err, models.ErrNoRecord) {
		return models.ErrJourneyNotFound
	}
	return err
}
