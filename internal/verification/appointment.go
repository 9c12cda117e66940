package verification

import (
	"math/rand/v2"
	"time"

	"passportal/internal/application/models"
)

// Biometric enrollment runs from fixed offices with fixed slots; the mock
// picks uniformly instead of consulting a real scheduling system.
var (
	appointmentSlots = []string{
		"09:00 AM - 10:00 AM",
		"10:00 AM - 11:00 AM",
		"11:00 AM - 12:00 PM",
		"02:00 PM - 03:00 PM",
	}
	appointmentOffices = []string{
		"Dhaka Regional Passport Office",
		"Chittagong Regional Passport Office",
		"Sylhet Regional Passport Office",
	}
)

const (
	appointmentMinDays = 7
	appointmentMaxDays = 14
	appointmentLayout  = "2006-01-02"
)

// GenerateAppointment picks a slot 7 to 14 days after now.
func GenerateAppointment(now time.Time) *models.Appointment {
	days := appointmentMinDays + rand.IntN(appointmentMaxDays-appointmentMinDays+1)
	return &models.Appointment{
		Date:   now.AddDate(0, 0, days).Format(appointmentLayout),
		Slot:   appointmentSlots[rand.IntN(len(appointmentSlots))],
		Office: appointmentOffices[rand.IntN(len(appointmentOffices))],
	}
}
