package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"isafari/internal/handlers"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders)
	optionalAuth := standardMiddleware.Append(app.optionalAuth)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))
	providerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("provider"))
	adminMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()
	mux.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.Fail(w, http.StatusNotFound, "Route not found")
	})

	mux.Get("/api/health", standardMiddleware.ThenFunc(app.healthHandler.Health))

	// Auth
	mux.Post("/api/auth/register", standardMiddleware.ThenFunc(app.authHandler.Register))
	mux.Post("/api/auth/login", standardMiddleware.ThenFunc(app.authHandler.Login))
	mux.Get("/api/auth/me", authMiddleware.ThenFunc(app.authHandler.Me))
	mux.Post("/api/auth/forgot-password", standardMiddleware.ThenFunc(app.authHandler.ForgotPassword))
	mux.Post("/api/auth/reset-password", standardMiddleware.ThenFunc(app.authHandler.ResetPassword))

	// Users
	mux.Get("/api/users/profile", authMiddleware.ThenFunc(app.userHandler.Profile))
	mux.Put("/api/users/profile", authMiddleware.ThenFunc(app.userHandler.UpdateProfile))
	mux.Post("/api/users/change-password", authMiddleware.ThenFunc(app.userHandler.ChangePassword))
	mux.Put("/api/users/device-token", authMiddleware.ThenFunc(app.userHandler.SetDeviceToken))

	// Services; fixed paths go before /:id
	mux.Get("/api/services", standardMiddleware.ThenFunc(app.serviceHandler.List))
	mux.Get("/api/services/featured", standardMiddleware.ThenFunc(app.serviceHandler.Featured))
	mux.Get("/api/services/trending", standardMiddleware.ThenFunc(app.serviceHandler.Trending))
	mux.Get("/api/services/categories", standardMiddleware.ThenFunc(app.serviceHandler.Categories))
	mux.Get("/api/services/destinations", standardMiddleware.ThenFunc(app.serviceHandler.Destinations))
	mux.Get("/api/services/by-location", standardMiddleware.ThenFunc(app.serviceHandler.ByLocation))
	mux.Get("/api/services/provider/mine", providerMiddleware.ThenFunc(app.serviceHandler.Mine))
	mux.Get("/api/services/:id/promotions", providerMiddleware.ThenFunc(app.serviceHandler.Promotions))
	mux.Get("/api/services/:id", standardMiddleware.ThenFunc(app.serviceHandler.Get))
	mux.Post("/api/services", providerMiddleware.ThenFunc(app.serviceHandler.Create))
	mux.Put("/api/services/:id", providerMiddleware.ThenFunc(app.serviceHandler.Update))
	mux.Patch("/api/services/:id/status", providerMiddleware.ThenFunc(app.serviceHandler.SetStatus))
	mux.Post("/api/services/:id/promote", providerMiddleware.ThenFunc(app.serviceHandler.Promote))
	mux.Del("/api/services/:id", providerMiddleware.ThenFunc(app.serviceHandler.Delete))

	// Providers
	mux.Get("/api/providers", standardMiddleware.ThenFunc(app.providerHandler.List))
	mux.Get("/api/providers/search", standardMiddleware.ThenFunc(app.providerHandler.Search))
	mux.Get("/api/providers/:id", standardMiddleware.ThenFunc(app.providerHandler.Get))
	mux.Put("/api/providers/profile", providerMiddleware.ThenFunc(app.providerHandler.UpdateProfile))

	// Bookings
	mux.Get("/api/bookings", authMiddleware.ThenFunc(app.bookingHandler.List))
	mux.Get("/api/bookings/provider", providerMiddleware.ThenFunc(app.bookingHandler.ListForProvider))
	mux.Post("/api/bookings", authMiddleware.ThenFunc(app.bookingHandler.Create))
	mux.Patch("/api/bookings/:id/status", providerMiddleware.ThenFunc(app.bookingHandler.UpdateStatus))
	mux.Del("/api/bookings/:id", authMiddleware.ThenFunc(app.bookingHandler.Delete))

	// Reviews
	mux.Get("/api/reviews/service/:id", standardMiddleware.ThenFunc(app.reviewHandler.ByService))
	mux.Get("/api/reviews/provider/:id", standardMiddleware.ThenFunc(app.reviewHandler.ByProvider))
	mux.Get("/api/reviews/mine", authMiddleware.ThenFunc(app.reviewHandler.Mine))
	mux.Post("/api/reviews", authMiddleware.ThenFunc(app.reviewHandler.Create))
	mux.Put("/api/reviews/:id", authMiddleware.ThenFunc(app.reviewHandler.Update))
	mux.Del("/api/reviews/:id", authMiddleware.ThenFunc(app.reviewHandler.Delete))

	// Payments
	mux.Get("/api/payments", authMiddleware.ThenFunc(app.paymentHandler.List))
	mux.Post("/api/payments", authMiddleware.ThenFunc(app.paymentHandler.Create))

	// Notifications
	mux.Get("/api/notifications", authMiddleware.ThenFunc(app.notificationHandler.List))
	mux.Patch("/api/notifications/:id/read", authMiddleware.ThenFunc(app.notificationHandler.MarkRead))
	mux.Post("/api/notifications/mark-all-read", authMiddleware.ThenFunc(app.notificationHandler.MarkAllRead))
	mux.Get("/ws/notifications", alice.New(app.recoverPanic).ThenFunc(app.NotificationsWS))

	// Cart
	mux.Get("/api/cart", authMiddleware.ThenFunc(app.cartHandler.Get))
	mux.Post("/api/cart/checkout", authMiddleware.ThenFunc(app.cartHandler.Checkout))
	mux.Post("/api/cart", authMiddleware.ThenFunc(app.cartHandler.Add))
	mux.Put("/api/cart/:id", authMiddleware.ThenFunc(app.cartHandler.UpdateQuantity))
	mux.Del("/api/cart/:id", authMiddleware.ThenFunc(app.cartHandler.Remove))
	mux.Del("/api/cart", authMiddleware.ThenFunc(app.cartHandler.Clear))

	// Trip plans
	mux.Get("/api/plans", authMiddleware.ThenFunc(app.planHandler.List))
	mux.Post("/api/plans/add", authMiddleware.ThenFunc(app.planHandler.Add))
	mux.Put("/api/plans/:id", authMiddleware.ThenFunc(app.planHandler.Update))
	mux.Del("/api/plans/:id", authMiddleware.ThenFunc(app.planHandler.Remove))
	mux.Del("/api/plans", authMiddleware.ThenFunc(app.planHandler.Clear))

	// Favorites
	mux.Get("/api/favorites", authMiddleware.ThenFunc(app.favoriteHandler.List))
	mux.Get("/api/favorites/check/:provider_id", authMiddleware.ThenFunc(app.favoriteHandler.Check))
	mux.Post("/api/favorites", authMiddleware.ThenFunc(app.favoriteHandler.Add))
	mux.Del("/api/favorites/:provider_id", authMiddleware.ThenFunc(app.favoriteHandler.Remove))

	// Multi-trip journeys
	mux.Post("/api/multi-trip/create", authMiddleware.ThenFunc(app.journeyHandler.Create))
	mux.Get("/api/multi-trip", authMiddleware.ThenFunc(app.journeyHandler.List))
	mux.Get("/api/multi-trip/:id", authMiddleware.ThenFunc(app.journeyHandler.Get))
	mux.Post("/api/multi-trip/:id/services", authMiddleware.ThenFunc(app.journeyHandler.AddService))
	mux.Del("/api/multi-trip/:id/services/:service_id", authMiddleware.ThenFunc(app.journeyHandler.RemoveService))
	mux.Put("/api/multi-trip/:id/status", authMiddleware.ThenFunc(app.journeyHandler.UpdateStatus))
	mux.Del("/api/multi-trip/:id", authMiddleware.ThenFunc(app.journeyHandler.Delete))

	// Traveler stories
	mux.Get("/api/traveler-stories", standardMiddleware.ThenFunc(app.storyHandler.List))
	mux.Get("/api/traveler-stories/featured", standardMiddleware.ThenFunc(app.storyHandler.Featured))
	mux.Get("/api/traveler-stories/my-stories", authMiddleware.ThenFunc(app.storyHandler.Mine))
	mux.Get("/api/traveler-stories/:id", optionalAuth.ThenFunc(app.storyHandler.Get))
	mux.Post("/api/traveler-stories", authMiddleware.ThenFunc(app.storyHandler.Create))
	mux.Post("/api/traveler-stories/:id/like", authMiddleware.ThenFunc(app.storyHandler.Like))
	mux.Del("/api/traveler-stories/:id/like", authMiddleware.ThenFunc(app.storyHandler.Unlike))
	mux.Post("/api/traveler-stories/:id/comment", authMiddleware.ThenFunc(app.storyHandler.Comment))

	// Story moderation
	mux.Get("/api/admin/stories", adminMiddleware.ThenFunc(app.storyHandler.ModerationList))
	mux.Post("/api/admin/stories/:id/approve", adminMiddleware.ThenFunc(app.storyHandler.Approve))
	mux.Post("/api/admin/stories/:id/reject", adminMiddleware.ThenFunc(app.storyHandler.Reject))
	mux.Post("/api/admin/stories/:id/feature", adminMiddleware.ThenFunc(app.storyHandler.Feature))
	mux.Del("/api/admin/stories/:id", adminMiddleware.ThenFunc(app.storyHandler.Delete))

	// Admin
	mux.Put("/api/admin/users/:id/status", adminMiddleware.ThenFunc(app.adminHandler.SetUserStatus))
	mux.Post("/api/admin/users/:id/verify", adminMiddleware.ThenFunc(app.adminHandler.VerifyUser))
	mux.Post("/api/admin/users/:id/suspend", adminMiddleware.ThenFunc(app.adminHandler.SuspendUser))
	mux.Del("/api/admin/users/:id", adminMiddleware.ThenFunc(app.adminHandler.DeleteUser))
	mux.Post("/api/admin/services/:id/approve", adminMiddleware.ThenFunc(app.adminHandler.ApproveService))
	mux.Post("/api/admin/services/:id/reject", adminMiddleware.ThenFunc(app.adminHandler.RejectService))
	mux.Del("/api/admin/services/:id", adminMiddleware.ThenFunc(app.adminHandler.DeleteService))
	mux.Post("/api/admin/providers/:id/verify-badge", adminMiddleware.ThenFunc(app.adminHandler.AddProviderBadge))
	mux.Post("/api/admin/providers/:id/remove-badge", adminMiddleware.ThenFunc(app.adminHandler.RemoveProviderBadge))
	mux.Post("/api/admin/bookings/:id/cancel", adminMiddleware.ThenFunc(app.adminHandler.CancelBooking))
	mux.Get("/api/admin/promotions", adminMiddleware.ThenFunc(app.adminHandler.Promotions))
	mux.Post("/api/admin/promotions/:id/approve", adminMiddleware.ThenFunc(app.adminHandler.ApprovePromotion))
	mux.Post("/api/admin/promotions/:id/reject", adminMiddleware.ThenFunc(app.adminHandler.RejectPromotion))

	// Uploads
	mux.Post("/api/uploads", authMiddleware.ThenFunc(app.uploadHandler.Upload))

	return mux
}
