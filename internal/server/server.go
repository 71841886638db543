// Package server exposes the application services over HTTP for the admin
// dashboard: a JSON API plus a websocket event feed.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	"github.com/example/studiodesk/internal/app"
	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/ports/secondary"
)

// Services bundles the primary ports the server exposes.
type Services struct {
	Clients      primary.ClientService
	Affiliates   primary.AffiliateService
	Leads        primary.LeadService
	Packages     primary.PackageService
	Submissions  primary.SubmissionService
	Comments     primary.CommentService
	WorkSessions primary.WorkSessionService
	Reports      primary.ReportService
}

// Server is the HTTP surface of the dashboard backend.
type Server struct {
	services Services
	hub      *app.Hub
	logger   secondary.Logger
	httpSrv  *http.Server
}

// New creates a server listening on addr.
func New(addr string, services Services, hub *app.Hub, logger secondary.Logger) *Server {
	s := &Server{
		services: services,
		hub:      hub,
		logger:   logger,
	}
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the route table. Exposed separately so tests can drive the
// handlers without a listener.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			m := httpsnoop.CaptureMetrics(handler, writer, request)
			s.logger.Info("handled", "method", request.Method, "url", request.URL.Path, "duration", m.Duration, "status", m.Code)
		})
	})

	api := r.PathPrefix("/api").Subrouter()

	api.Methods(http.MethodPost).Path("/clients").HandlerFunc(s.createClient)
	api.Methods(http.MethodGet).Path("/clients").HandlerFunc(s.listClients)
	api.Methods(http.MethodGet).Path("/clients/{id}").HandlerFunc(s.getClient)
	api.Methods(http.MethodPut).Path("/clients/{id}").HandlerFunc(s.updateClient)
	api.Methods(http.MethodDelete).Path("/clients/{id}").HandlerFunc(s.deleteClient)
	api.Methods(http.MethodPost).Path("/clients/{id}/adjust/{counter}").HandlerFunc(s.adjustClientCounter)
	api.Methods(http.MethodPost).Path("/clients/{id}/assign-package").HandlerFunc(s.assignClientPackage)
	api.Methods(http.MethodPost).Path("/clients/{id}/quick-assign").HandlerFunc(s.quickAssignClientPackage)

	api.Methods(http.MethodPost).Path("/affiliates").HandlerFunc(s.createAffiliate)
	api.Methods(http.MethodGet).Path("/affiliates").HandlerFunc(s.listAffiliates)
	api.Methods(http.MethodGet).Path("/affiliates/{id}").HandlerFunc(s.getAffiliate)
	api.Methods(http.MethodPut).Path("/affiliates/{id}").HandlerFunc(s.updateAffiliate)
	api.Methods(http.MethodDelete).Path("/affiliates/{id}").HandlerFunc(s.deleteAffiliate)
	api.Methods(http.MethodPost).Path("/affiliates/{id}/adjust/{counter}").HandlerFunc(s.adjustAffiliateCounter)
	api.Methods(http.MethodPost).Path("/affiliates/{id}/assign-package").HandlerFunc(s.assignAffiliatePackage)
	api.Methods(http.MethodPost).Path("/affiliates/{id}/quick-assign").HandlerFunc(s.quickAssignAffiliatePackage)

	api.Methods(http.MethodPost).Path("/leads").HandlerFunc(s.createLead)
	api.Methods(http.MethodGet).Path("/leads").HandlerFunc(s.listLeads)
	api.Methods(http.MethodGet).Path("/leads/{id}").HandlerFunc(s.getLead)
	api.Methods(http.MethodPut).Path("/leads/{id}").HandlerFunc(s.updateLead)
	api.Methods(http.MethodDelete).Path("/leads/{id}").HandlerFunc(s.deleteLead)
	api.Methods(http.MethodPost).Path("/leads/{id}/convert").HandlerFunc(s.convertLead)

	api.Methods(http.MethodPost).Path("/packages").HandlerFunc(s.createPackage)
	api.Methods(http.MethodGet).Path("/packages").HandlerFunc(s.listPackages)
	api.Methods(http.MethodGet).Path("/packages/{id}").HandlerFunc(s.getPackage)
	api.Methods(http.MethodPut).Path("/packages/{id}").HandlerFunc(s.updatePackage)
	api.Methods(http.MethodDelete).Path("/packages/{id}").HandlerFunc(s.deletePackage)

	api.Methods(http.MethodPost).Path("/submissions").HandlerFunc(s.createSubmission)
	api.Methods(http.MethodGet).Path("/submissions").HandlerFunc(s.listSubmissions)
	api.Methods(http.MethodGet).Path("/submissions/{id}").HandlerFunc(s.getSubmission)
	api.Methods(http.MethodDelete).Path("/submissions/{id}").HandlerFunc(s.deleteSubmission)
	api.Methods(http.MethodPut).Path("/submissions/{id}/status").HandlerFunc(s.updateSubmissionStatus)
	api.Methods(http.MethodPost).Path("/submissions/{id}/images").HandlerFunc(s.addProcessedImages)
	api.Methods(http.MethodDelete).Path("/submissions/{id}/images").HandlerFunc(s.removeProcessedImage)

	api.Methods(http.MethodPost).Path("/submissions/{id}/comments").HandlerFunc(s.createComment)
	api.Methods(http.MethodGet).Path("/submissions/{id}/comments").HandlerFunc(s.listComments)
	api.Methods(http.MethodDelete).Path("/comments/{id}").HandlerFunc(s.deleteComment)

	api.Methods(http.MethodPost).Path("/timers/{ownerType}/{ownerID}/start").HandlerFunc(s.startTimer)
	api.Methods(http.MethodPost).Path("/timers/{ownerType}/{ownerID}/stop").HandlerFunc(s.stopTimer)
	api.Methods(http.MethodPost).Path("/sessions").HandlerFunc(s.logSession)
	api.Methods(http.MethodGet).Path("/sessions").HandlerFunc(s.listSessions)

	api.Methods(http.MethodGet).Path("/reports/cost").HandlerFunc(s.costReport)

	r.Methods(http.MethodGet).Path("/events").HandlerFunc(s.events)
	r.Methods(http.MethodGet).Path("/healthz").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

// ListenAndServe blocks until the server stops. http.ErrServerClosed is
// swallowed so a clean Shutdown returns nil.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server listening", "addr", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server listen failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// statusFor maps a service error to an HTTP status. Rejected intents and
// validation failures are client errors; a missing row is 404; everything
// else is a remote-write failure surfaced as 502.
func statusFor(err error) int {
	switch {
	case errors.Is(err, app.ErrMutationInFlight):
		return http.StatusConflict
	case errors.Is(err, app.ErrValidation):
		return http.StatusUnprocessableEntity
	case strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
