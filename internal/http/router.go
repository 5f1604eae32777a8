package http

import (
	"net/http"

	"school-backend/internal/handlers"
	"school-backend/internal/middleware"
	"school-backend/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	studentHandler *handlers.StudentHandler,
	teacherHandler *handlers.TeacherHandler,
	feeStructureHandler *handlers.FeeStructureHandler,
	paymentHandler *handlers.PaymentHandler,
	razorpayHandler *handlers.RazorpayHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/verify-otp", authHandler.VerifyOTP).Methods("POST")

	// Razorpay webhook authenticates itself via the signature header
	r.HandleFunc("/api/razorpay/webhook", razorpayHandler.Webhook).Methods("POST")
	r.HandleFunc("/api/razorpay/status", razorpayHandler.Status).Methods("GET")

	adminOnly := authMiddleware.RequireRole(models.RoleAdmin)
	staff := authMiddleware.RequireRole(models.RoleAdmin, models.RoleTeacher)

	// Account management
	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Handle("/admins", adminOnly(http.HandlerFunc(authHandler.CreateAdmin))).Methods("POST")
	authAPI.Handle("/teacher-accounts", adminOnly(http.HandlerFunc(authHandler.CreateTeacherAccount))).Methods("POST")
	authAPI.Handle("/change-password", authMiddleware.Authenticate(http.HandlerFunc(authHandler.ChangePassword))).Methods("POST")
	authAPI.Handle("/2fa/setup", authMiddleware.Authenticate(http.HandlerFunc(authHandler.Setup2FA))).Methods("POST")
	authAPI.Handle("/2fa/enable", authMiddleware.Authenticate(http.HandlerFunc(authHandler.Enable2FA))).Methods("POST")

	// Teachers (admin manages, staff read)
	teachersAPI := r.PathPrefix("/api/teachers").Subrouter()
	teachersAPI.Handle("", staff(http.HandlerFunc(teacherHandler.List))).Methods("GET")
	teachersAPI.Handle("", adminOnly(http.HandlerFunc(teacherHandler.Create))).Methods("POST")
	teachersAPI.Handle("/{teacherId}", staff(http.HandlerFunc(teacherHandler.Get))).Methods("GET")
	teachersAPI.Handle("/{teacherId}", adminOnly(http.HandlerFunc(teacherHandler.Update))).Methods("PUT")
	teachersAPI.Handle("/{teacherId}", adminOnly(http.HandlerFunc(teacherHandler.Delete))).Methods("DELETE")

	// Students (admin manages, staff read)
	studentsAPI := r.PathPrefix("/api/students").Subrouter()
	studentsAPI.Handle("", staff(http.HandlerFunc(studentHandler.List))).Methods("GET")
	studentsAPI.Handle("", adminOnly(http.HandlerFunc(studentHandler.Create))).Methods("POST")
	studentsAPI.Handle("/bulk/class", adminOnly(http.HandlerFunc(studentHandler.BulkUpdateClass))).Methods("PUT")
	studentsAPI.Handle("/{studentId}", staff(http.HandlerFunc(studentHandler.Get))).Methods("GET")
	studentsAPI.Handle("/{studentId}", adminOnly(http.HandlerFunc(studentHandler.Update))).Methods("PUT")
	studentsAPI.Handle("/{studentId}", adminOnly(http.HandlerFunc(studentHandler.Delete))).Methods("DELETE")
	studentsAPI.Handle("/{studentId}/photo", adminOnly(http.HandlerFunc(studentHandler.UploadPhoto))).Methods("POST")
	studentsAPI.Handle("/{studentId}/image", staff(http.HandlerFunc(studentHandler.GetPhoto))).Methods("GET")

	// Fee positions and history per student
	studentsAPI.Handle("/{studentId}/payments", staff(http.HandlerFunc(paymentHandler.GetStudentPayments))).Methods("GET")
	studentsAPI.Handle("/{studentId}/payments/export", staff(http.HandlerFunc(paymentHandler.ExportHistoryCSV))).Methods("GET")
	studentsAPI.Handle("/{studentId}/fees", staff(http.HandlerFunc(paymentHandler.GetFeeSummary))).Methods("GET")

	// Fee structures (admin only)
	feesAPI := r.PathPrefix("/api/fee-structures").Subrouter()
	feesAPI.Handle("", adminOnly(http.HandlerFunc(feeStructureHandler.List))).Methods("GET")
	feesAPI.Handle("", adminOnly(http.HandlerFunc(feeStructureHandler.Save))).Methods("POST")
	feesAPI.Handle("/{className}", adminOnly(http.HandlerFunc(feeStructureHandler.Get))).Methods("GET")
	feesAPI.Handle("/{className}", adminOnly(http.HandlerFunc(feeStructureHandler.Delete))).Methods("DELETE")

	// Payments (admin records office payments; staff read receipts)
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Handle("", adminOnly(http.HandlerFunc(paymentHandler.ProcessPayment))).Methods("POST")
	paymentsAPI.Handle("/{paymentId}", staff(http.HandlerFunc(paymentHandler.GetPayment))).Methods("GET")
	paymentsAPI.Handle("/{paymentId}/receipt", staff(http.HandlerFunc(paymentHandler.GetReceipt))).Methods("GET")

	// Online payments
	razorpayAPI := r.PathPrefix("/api/razorpay").Subrouter()
	razorpayAPI.Handle("/orders", adminOnly(http.HandlerFunc(razorpayHandler.CreateOrder))).Methods("POST")
	razorpayAPI.Handle("/orders/{orderId}", staff(http.HandlerFunc(razorpayHandler.GetTransaction))).Methods("GET")

	return r
}
