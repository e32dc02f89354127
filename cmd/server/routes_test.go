package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"ykri.backend/internal/interfaces/http/handlers"
)

func TestRegisterAPIV1Routes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	registerAPIV1Routes(r, routeDeps{
		authHandler:            &handlers.AuthHandler{},
		userHandler:            &handlers.UserHandler{},
		demandHandler:          &handlers.DemandHandler{},
		offerHandler:           &handlers.OfferHandler{},
		proposalHandler:        &handlers.ProposalHandler{},
		reservationHandler:     &handlers.ReservationHandler{},
		messageHandler:         &handlers.MessageHandler{},
		machineTemplateHandler: &handlers.MachineTemplateHandler{},
		vipRequestHandler:      &handlers.VIPRequestHandler{},
		authMiddleware: func(c *gin.Context) {
			c.Next()
		},
	})

	routes := r.Routes()
	if len(routes) < 35 {
		t.Fatalf("expected many routes registered, got %d", len(routes))
	}

	expects := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/auth/register"},
		{"POST", "/api/v1/auth/login"},
		{"GET", "/api/v1/auth/me"},
		{"GET", "/api/v1/users/nearby"},
		{"POST", "/api/v1/demands"},
		{"GET", "/api/v1/demands/:id/contract"},
		{"GET", "/api/v1/offers/:id/availability"},
		{"PATCH", "/api/v1/proposals/:id"},
		{"PATCH", "/api/v1/reservations/:id"},
		{"GET", "/api/v1/reservations/:id/contract"},
		{"GET", "/api/v1/messages/conversations"},
		{"POST", "/api/v1/machine-templates"},
		{"POST", "/api/v1/vip-requests/:id/resolve"},
	}

	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}

func TestRegisterAPIV1Routes_RouteResponds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:            &handlers.AuthHandler{},
		userHandler:            &handlers.UserHandler{},
		demandHandler:          &handlers.DemandHandler{},
		offerHandler:           &handlers.OfferHandler{},
		proposalHandler:        &handlers.ProposalHandler{},
		reservationHandler:     &handlers.ReservationHandler{},
		messageHandler:         &handlers.MessageHandler{},
		machineTemplateHandler: &handlers.MachineTemplateHandler{},
		vipRequestHandler:      &handlers.VIPRequestHandler{},
		authMiddleware:         func(c *gin.Context) { c.Next() },
	})

	// Smoke: unrelated helper route still works after route registration.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
