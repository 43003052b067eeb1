package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isafari/internal/models"
	"isafari/internal/repositories"
	"isafari/internal/services"
)

func withAdmin(r *http.Request, id int) *http.Request {
	return r.WithContext(WithClaims(r.Context(), &models.Claims{UserID: id, UserType: models.UserTypeAdmin}))
}

type adminUserRepo struct {
	services.AdminUserRepository
	user models.User
}

func (a *adminUserRepo) UpdateByID(_ context.Context, id int, fields repositories.Fields) (models.User, error) {
	if id != a.user.ID {
		return models.User{}, models.ErrNoRecord
	}
	if v, ok := fields["is_active"].(bool); ok {
		a.user.IsActive = v
	}
	return a.user, nil
}

func (a *adminUserRepo) DeleteByID(_ context.Context, id int) error {
	if id != a.user.ID {
		return models.ErrNoRecord
	}
	return nil
}

type adminPromotionRepo struct {
	services.PromotionReviewRepository
	promo  models.ServicePromotion
	reason string
}

func (a *adminPromotionRepo) Approve(_ context.Context, id, _ int, now time.Time) (models.ServicePromotion, error) {
	if id != a.promo.ID {
		return models.ServicePromotion{}, models.ErrNoRecord
	}
	if a.promo.Status != models.PromotionPending {
		return models.ServicePromotion{}, models.ErrPromotionReviewed
	}
	a.promo.Status = models.PromotionApproved
	a.promo.StartedAt = &now
	return a.promo, nil
}

func (a *adminPromotionRepo) Reject(_ context.Context, id int, reason string) (models.ServicePromotion, error) {
	if id != a.promo.ID {
		return models.ServicePromotion{}, models.ErrNoRecord
	}
	a.reason = reason
	a.promo.Status = models.PromotionRejected
	return a.promo, nil
}

func newAdminHandler() (*AdminHandler, *adminUserRepo, *adminPromotionRepo) {
	users := &adminUserRepo{user: models.User{ID: 12, Email: "neema@example.com", IsActive: true}}
	promos := &adminPromotionRepo{promo: models.ServicePromotion{ID: 7, ServiceID: 4, PromotionType: "featured",
		Status: models.PromotionPending}}
	return &AdminHandler{Service: &services.AdminService{UserRepo: users, PromotionRepo: promos}}, users, promos
}

func TestAdminHandlerSetUserStatus(t *testing.T) {
	h, _, _ := newAdminHandler()

	rec := httptest.NewRecorder()
	h.SetUserStatus(rec, withAdmin(httptest.NewRequest(http.MethodPut, "/api/admin/users/12/status?:id=12",
		strings.NewReader(`{"is_active":false}`)), 1))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "User deactivated successfully", env.Message)
	var u models.User
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.False(t, u.IsActive)

	rec = httptest.NewRecorder()
	h.SetUserStatus(rec, withAdmin(httptest.NewRequest(http.MethodPut, "/api/admin/users/12/status?:id=12",
		strings.NewReader(`{}`)), 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.SetUserStatus(rec, withAdmin(httptest.NewRequest(http.MethodPut, "/api/admin/users/13/status?:id=13",
		strings.NewReader(`{"is_active":true}`)), 1))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeEnvelope(t, rec).Message)
}

func TestAdminHandlerDeleteUser(t *testing.T) {
	h, _, _ := newAdminHandler()

	rec := httptest.NewRecorder()
	h.DeleteUser(rec, withAdmin(httptest.NewRequest(http.MethodDelete, "/api/admin/users/1?:id=1", nil), 1))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.DeleteUser(rec, withAdmin(httptest.NewRequest(http.MethodDelete, "/api/admin/users/12?:id=12", nil), 1))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", decodeEnvelope(t, rec).Message)

	rec = httptest.NewRecorder()
	h.DeleteUser(rec, withAdmin(httptest.NewRequest(http.MethodDelete, "/api/admin/users/x?:id=x", nil), 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminHandlerPromotionReview(t *testing.T) {
	h, _, promos := newAdminHandler()

	rec := httptest.NewRecorder()
	h.ApprovePromotion(rec, withAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/promotions/7/approve?:id=7", nil), 1))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Promotion approved successfully. Service is now promoted!", decodeEnvelope(t, rec).Message)

	rec = httptest.NewRecorder()
	h.ApprovePromotion(rec, withAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/promotions/7/approve?:id=7", nil), 1))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Promotion already reviewed", decodeEnvelope(t, rec).Message)

	rec = httptest.NewRecorder()
	h.RejectPromotion(rec, withAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/promotions/7/reject?:id=7", nil), 1))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "No reason provided", promos.reason)

	rec = httptest.NewRecorder()
	h.RejectPromotion(rec, withAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/promotions/7/reject?:id=7",
		strings.NewReader(`{"reason":"Wrong category"}`)), 1))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Wrong category", promos.reason)

	rec = httptest.NewRecorder()
	h.RejectPromotion(rec, withAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/promotions/9/reject?:id=9", nil), 1))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
