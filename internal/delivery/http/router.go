package http

import (
	"net/http"

	"hospital-appointment-service/internal/delivery/http/handler"
	"hospital-appointment-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router              *mux.Router
	doctorHandler       *handler.DoctorHandler
	slotHandler         *handler.SlotHandler
	appointmentHandler  *handler.AppointmentHandler
	prescriptionHandler *handler.PrescriptionHandler
	auditLogHandler     *handler.AuditLogHandler
	pageHandler         *handler.PageHandler
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
	recoveryMiddleware  *middleware.RecoveryMiddleware
	metricsMiddleware   *middleware.MetricsMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
	gatherer            prometheus.Gatherer
}

type RouterDeps struct {
	DoctorHandler       *handler.DoctorHandler
	SlotHandler         *handler.SlotHandler
	AppointmentHandler  *handler.AppointmentHandler
	PrescriptionHandler *handler.PrescriptionHandler
	AuditLogHandler     *handler.AuditLogHandler
	PageHandler         *handler.PageHandler
	CORSMiddleware      *middleware.CORSMiddleware
	LoggingMiddleware   *middleware.LoggingMiddleware
	RecoveryMiddleware  *middleware.RecoveryMiddleware
	MetricsMiddleware   *middleware.MetricsMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
	Gatherer            prometheus.Gatherer
}

func NewRouter(deps RouterDeps) *Router {
	return &Router{
		router:              mux.NewRouter(),
		doctorHandler:       deps.DoctorHandler,
		slotHandler:         deps.SlotHandler,
		appointmentHandler:  deps.AppointmentHandler,
		prescriptionHandler: deps.PrescriptionHandler,
		auditLogHandler:     deps.AuditLogHandler,
		pageHandler:         deps.PageHandler,
		corsMiddleware:      deps.CORSMiddleware,
		loggingMiddleware:   deps.LoggingMiddleware,
		recoveryMiddleware:  deps.RecoveryMiddleware,
		metricsMiddleware:   deps.MetricsMiddleware,
		rateLimitMiddleware: deps.RateLimitMiddleware,
		gatherer:            deps.Gatherer,
	}
}

// Setup registers every route and returns the full handler chain.
// Fixed paths are registered before the {param} routes sharing their prefix.
func (r *Router) Setup() http.Handler {
	// Health check and metrics
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Doctor directory (receptionist)
	r.router.HandleFunc("/doctors/pending", r.doctorHandler.GetPendingDoctors).Methods(http.MethodGet)
	r.router.HandleFunc("/doctors/approved", r.doctorHandler.GetApprovedDoctors).Methods(http.MethodGet)
	r.router.HandleFunc("/doctors/{id}/approve", r.doctorHandler.ApproveDoctor).Methods(http.MethodPut)
	r.router.HandleFunc("/doctors/{id}/appointments", r.appointmentHandler.GetDoctorAppointments).Methods(http.MethodGet)
	r.router.HandleFunc("/doctors/{specialization}", r.doctorHandler.GetDoctorsBySpecialization).Methods(http.MethodGet)

	// Slot ledger
	r.router.HandleFunc("/slots/{doctorId}", r.slotHandler.GetFreeSlots).Methods(http.MethodGet)
	r.router.HandleFunc("/slots/{doctorId}", r.slotHandler.AddSlots).Methods(http.MethodPost)

	// Appointments
	r.router.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	r.router.HandleFunc("/appointments/confirmed", r.appointmentHandler.GetConfirmedAppointments).Methods(http.MethodGet)
	r.router.HandleFunc("/appointments/completed", r.appointmentHandler.GetCompletedAppointments).Methods(http.MethodGet)
	r.router.HandleFunc("/appointments/{id}/checkin", r.appointmentHandler.CheckIn).Methods(http.MethodPut)
	r.router.HandleFunc("/appointments/{id}/checkout", r.appointmentHandler.CheckOut).Methods(http.MethodPut)
	r.router.HandleFunc("/appointments/{patientId}", r.appointmentHandler.GetPatientAppointments).Methods(http.MethodGet)
	r.router.HandleFunc("/appointments/{appointmentId}", r.appointmentHandler.CancelAppointment).Methods(http.MethodDelete)

	// Prescriptions and bills
	r.router.HandleFunc("/prescriptions", r.prescriptionHandler.WritePrescription).Methods(http.MethodPost)
	r.router.HandleFunc("/prescriptions/bill/{patientId}", r.prescriptionHandler.GetPatientBills).Methods(http.MethodGet)
	r.router.HandleFunc("/prescriptions/{patientId}", r.prescriptionHandler.GetPatientPrescriptions).Methods(http.MethodGet)

	// Audit trail
	r.router.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)

	// Static pages
	r.router.HandleFunc("/", r.pageHandler.Page("landing.html")).Methods(http.MethodGet)
	r.router.HandleFunc("/login", r.pageHandler.Page("login.html")).Methods(http.MethodGet)
	r.router.HandleFunc("/doctor", r.pageHandler.Page("doctor.html")).Methods(http.MethodGet)
	r.router.HandleFunc("/patient", r.pageHandler.Page("patient.html")).Methods(http.MethodGet)
	r.router.HandleFunc("/receptionist", r.pageHandler.Page("receptionist.html")).Methods(http.MethodGet)

	// Route-aware middleware runs after matching
	r.router.Use(r.metricsMiddleware.Handle)
	r.router.Use(r.rateLimitMiddleware.Handle)

	// CORS wraps the router so preflight requests never hit method matching
	var h http.Handler = r.router
	h = r.corsMiddleware.Handle(h)
	h = r.recoveryMiddleware.Handle(h)
	h = r.loggingMiddleware.Handle(h)
	return h
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
