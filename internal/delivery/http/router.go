package http

import (
	"net/http"

	"clinic-backend/internal/delivery/http/handler"
	"clinic-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

// accessPolicy is declared per route in the table below, so the whole access
// surface of the API can be reviewed in one place.
type accessPolicy int

const (
	policyPublic accessPolicy = iota
	policyAuthenticated
	policyAdmin
)

type route struct {
	method  string
	path    string
	handler http.HandlerFunc
	policy  accessPolicy
}

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	patientHandler     *handler.PatientHandler
	doctorHandler      *handler.DoctorHandler
	specialtyHandler   *handler.SpecialtyHandler
	scheduleHandler    *handler.ScheduleHandler
	appointmentHandler *handler.AppointmentHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	specialtyHandler *handler.SpecialtyHandler,
	scheduleHandler *handler.ScheduleHandler,
	appointmentHandler *handler.AppointmentHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		userHandler:        userHandler,
		patientHandler:     patientHandler,
		doctorHandler:      doctorHandler,
		specialtyHandler:   specialtyHandler,
		scheduleHandler:    scheduleHandler,
		appointmentHandler: appointmentHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) routes() []route {
	return []route{
		// Auth
		{http.MethodPost, "/auth/register", r.authHandler.Register, policyPublic},
		{http.MethodPost, "/auth/login", r.authHandler.Login, policyPublic},
		{http.MethodPost, "/auth/logout", r.authHandler.Logout, policyAuthenticated},
		{http.MethodGet, "/auth/profile", r.authHandler.GetProfile, policyAuthenticated},
		{http.MethodPut, "/auth/profile", r.authHandler.UpdateProfile, policyAuthenticated},
		{http.MethodPost, "/auth/change-password", r.authHandler.ChangePassword, policyAuthenticated},
		{http.MethodPost, "/auth/reset-password", r.authHandler.RequestPasswordReset, policyPublic},
		{http.MethodPost, "/auth/reset-password/{uid}/{token}", r.authHandler.ConfirmPasswordReset, policyPublic},

		// User management
		{http.MethodPost, "/users", r.userHandler.CreateUser, policyAdmin},
		{http.MethodGet, "/users", r.userHandler.GetAllUsers, policyAdmin},
		{http.MethodGet, "/users/{id}", r.userHandler.GetUser, policyAdmin},
		{http.MethodPut, "/users/{id}", r.userHandler.UpdateUser, policyAdmin},
		{http.MethodDelete, "/users/{id}", r.userHandler.DeactivateUser, policyAdmin},

		// Patients
		{http.MethodPost, "/patients", r.patientHandler.CreatePatient, policyAuthenticated},
		{http.MethodGet, "/patients", r.patientHandler.GetAllPatients, policyAuthenticated},
		{http.MethodGet, "/patients/{id}", r.patientHandler.GetPatient, policyAuthenticated},
		{http.MethodPut, "/patients/{id}", r.patientHandler.UpdatePatient, policyAuthenticated},
		{http.MethodDelete, "/patients/{id}", r.patientHandler.DeactivatePatient, policyAdmin},

		// Doctors
		{http.MethodPost, "/doctors", r.doctorHandler.CreateDoctor, policyAdmin},
		{http.MethodGet, "/doctors", r.doctorHandler.GetAllDoctors, policyAuthenticated},
		{http.MethodGet, "/doctors/{id}", r.doctorHandler.GetDoctor, policyAuthenticated},
		{http.MethodPut, "/doctors/{id}", r.doctorHandler.UpdateDoctor, policyAdmin},
		{http.MethodDelete, "/doctors/{id}", r.doctorHandler.DeactivateDoctor, policyAdmin},

		// Specialties
		{http.MethodPost, "/specialties", r.specialtyHandler.CreateSpecialty, policyAdmin},
		{http.MethodGet, "/specialties", r.specialtyHandler.GetAllSpecialties, policyPublic},
		{http.MethodGet, "/specialties/{id}", r.specialtyHandler.GetSpecialty, policyPublic},
		{http.MethodPut, "/specialties/{id}", r.specialtyHandler.UpdateSpecialty, policyAdmin},
		{http.MethodDelete, "/specialties/{id}", r.specialtyHandler.DeactivateSpecialty, policyAdmin},

		// Schedules
		{http.MethodPost, "/schedules", r.scheduleHandler.CreateSchedule, policyAdmin},
		{http.MethodGet, "/schedules", r.scheduleHandler.GetAllSchedules, policyAuthenticated},
		{http.MethodGet, "/schedules/{id}", r.scheduleHandler.GetSchedule, policyAuthenticated},
		{http.MethodPut, "/schedules/{id}", r.scheduleHandler.UpdateSchedule, policyAdmin},
		{http.MethodDelete, "/schedules/{id}", r.scheduleHandler.DeactivateSchedule, policyAdmin},
		{http.MethodGet, "/doctors/{doctor_id}/schedules", r.scheduleHandler.GetSchedulesByDoctor, policyAuthenticated},

		// Appointments
		{http.MethodPost, "/appointments", r.appointmentHandler.CreateAppointment, policyAuthenticated},
		{http.MethodGet, "/appointments", r.appointmentHandler.GetAllAppointments, policyAuthenticated},
		{http.MethodGet, "/appointments/{id}", r.appointmentHandler.GetAppointment, policyAuthenticated},
		{http.MethodPut, "/appointments/{id}", r.appointmentHandler.UpdateAppointment, policyAuthenticated},
		{http.MethodPost, "/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment, policyAuthenticated},
		{http.MethodGet, "/patients/{patient_id}/appointments", r.appointmentHandler.GetAppointmentsByPatient, policyAuthenticated},
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	for _, rt := range r.routes() {
		var h http.Handler = rt.handler
		switch rt.policy {
		case policyAuthenticated:
			h = r.authMiddleware.Authenticate(h)
		case policyAdmin:
			h = r.authMiddleware.Authenticate(middleware.RequireAdmin(h))
		}
		api.Handle(rt.path, h).Methods(rt.method)
	}

	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
