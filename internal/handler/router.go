package handler

import "github.com/gin-gonic/gin"

// Router wires every entity's CRUD routes onto a gin engine.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api/v1")

	users := api.Group("/users")
	users.POST("", h.CreateUser)
	users.GET("", h.ListUsers)
	users.GET("/:id", h.GetUser)
	users.PATCH("/:id", h.UpdateUser)
	users.POST("/:id/password", h.ChangeUserPassword)
	users.POST("/:id/deactivate", h.DeactivateUser)
	users.POST("/:id/reactivate", h.ReactivateUser)

	patients := api.Group("/patients")
	patients.POST("", h.CreatePatient)
	patients.GET("", h.ListPatients)
	patients.GET("/:id", h.GetPatient)
	patients.PATCH("/:id", h.UpdatePatient)
	patients.POST("/:id/doctors", h.AssignPatientDoctor)
	patients.DELETE("/:id/doctors/:doctorID", h.RemovePatientDoctor)
	patients.GET("/:id/doctors", h.ListPatientDoctors)
	patients.GET("/:id/appointments", h.ListPatientAppointments)
	patients.GET("/:id/invoices", h.ListPatientInvoices)

	doctors := api.Group("/doctors")
	doctors.POST("", h.CreateDoctor)
	doctors.GET("", h.ListDoctors)
	doctors.GET("/:id", h.GetDoctor)
	doctors.PATCH("/:id", h.UpdateDoctor)
	doctors.DELETE("/:id", h.DeleteDoctor)
	doctors.POST("/:id/specialties", h.AddDoctorSpecialty)
	doctors.DELETE("/:id/specialties/:specialtyID", h.RemoveDoctorSpecialty)
	doctors.GET("/:id/specialties", h.ListDoctorSpecialties)
	doctors.GET("/:id/appointments", h.ListDoctorAppointments)

	specialties := api.Group("/specialties")
	specialties.POST("", h.CreateSpecialty)
	specialties.GET("", h.ListSpecialties)
	specialties.DELETE("/:id", h.DeleteSpecialty)

	rooms := api.Group("/rooms")
	rooms.POST("", h.CreateRoom)
	rooms.GET("", h.ListRooms)
	rooms.DELETE("/:id", h.DeleteRoom)

	services := api.Group("/services")
	services.POST("", h.CreateService)
	services.GET("", h.ListServices)
	services.GET("/:id", h.GetService)
	services.PATCH("/:id", h.UpdateService)
	services.DELETE("/:id", h.DeleteService)

	medications := api.Group("/medications")
	medications.POST("", h.CreateMedication)
	medications.GET("", h.ListMedications)
	medications.GET("/:id", h.GetMedication)
	medications.DELETE("/:id", h.DeleteMedication)
	medications.PUT("/:id/inventory", h.UpsertInventory)
	medications.GET("/:id/inventory", h.GetInventory)
	medications.POST("/:id/restock", h.Restock)

	api.GET("/inventory/reorder", h.ListBelowReorder)

	appointments := api.Group("/appointments")
	appointments.POST("", h.BookAppointment)
	appointments.GET("/:id", h.GetAppointment)
	appointments.PATCH("/:id/status", h.UpdateAppointmentStatus)
	appointments.POST("/:id/cancel", h.CancelAppointment)
	appointments.PUT("/:id/services", h.ReplaceAppointmentServices)
	appointments.GET("/:id/services", h.ListAppointmentServices)
	appointments.POST("/:id/prescription", h.IssuePrescription)
	appointments.GET("/:id/prescription", h.GetAppointmentPrescription)
	appointments.POST("/:id/invoice", h.InvoiceAppointment)

	prescriptions := api.Group("/prescriptions")
	prescriptions.GET("/:id", h.GetPrescription)
	prescriptions.POST("/:id/dispense", h.DispensePrescription)

	invoices := api.Group("/invoices")
	invoices.POST("", h.CreateInvoice)
	invoices.GET("/:id", h.GetInvoice)
	invoices.POST("/:id/pay", h.MarkInvoicePaid)
	invoices.POST("/:id/void", h.VoidInvoice)
	invoices.POST("/:id/recompute", h.RecomputeInvoiceTotal)

	return r
}
