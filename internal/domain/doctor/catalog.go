package doctor

import "github.com/BruksfildServices01/clinic-booking/internal/models"

// Catalog returns a fresh copy of the static doctor list seeded at start.
func Catalog() []models.Doctor {
	out := make([]models.Doctor, len(staticDoctors))
	for i, d := range staticDoctors {
		d.AvailableTimes = append([]string(nil), d.AvailableTimes...)
		out[i] = d
	}
	return out
}

var staticDoctors = []models.Doctor{
	{
		ID:             "1",
		Name:           "Dr. Sarah Johnson",
		Specialization: "Cardiologist",
		Photo:          "/female-doctor-stethoscope.png",
		Rating:         4.9,
		Experience:     "15 years",
		Bio:            "Specialized in heart disease prevention and treatment with extensive experience in cardiac surgery.",
		AvailableTimes: []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"},
	},
	{
		ID:             "2",
		Name:           "Dr. Michael Chen",
		Specialization: "Neurologist",
		Photo:          "/male-doctor-glasses.png",
		Rating:         4.8,
		Experience:     "12 years",
		Bio:            "Expert in treating neurological disorders including epilepsy, stroke, and neurodegenerative diseases.",
		AvailableTimes: []string{"08:00", "09:00", "10:00", "13:00", "14:00", "15:00"},
	},
	{
		ID:             "3",
		Name:           "Dr. Emily Rodriguez",
		Specialization: "Pediatrician",
		Photo:          "/friendly-female-pediatric-doctor.jpg",
		Rating:         4.9,
		Experience:     "10 years",
		Bio:            "Dedicated to providing comprehensive healthcare for children from infancy through adolescence.",
		AvailableTimes: []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"},
	},
	{
		ID:             "4",
		Name:           "Dr. James Wilson",
		Specialization: "Orthopedic Surgeon",
		Photo:          "/confident-male-orthopedic-surgeon.jpg",
		Rating:         4.7,
		Experience:     "18 years",
		Bio:            "Specializes in joint replacement surgery and sports medicine with a focus on minimally invasive techniques.",
		AvailableTimes: []string{"08:00", "09:00", "10:00", "14:00", "15:00"},
	},
	{
		ID:             "5",
		Name:           "Dr. Lisa Thompson",
		Specialization: "Dermatologist",
		Photo:          "/professional-female-dermatologist.jpg",
		Rating:         4.8,
		Experience:     "8 years",
		Bio:            "Expert in skin health, cosmetic dermatology, and treatment of skin conditions including acne and eczema.",
		AvailableTimes: []string{"10:00", "11:00", "13:00", "14:00", "15:00", "16:00"},
	},
	{
		ID:             "6",
		Name:           "Dr. Robert Kumar",
		Specialization: "General Practitioner",
		Photo:          "/friendly-male-family-doctor.jpg",
		Rating:         4.6,
		Experience:     "20 years",
		Bio:            "Providing comprehensive primary care for patients of all ages with a focus on preventive medicine.",
		AvailableTimes: []string{"08:00", "09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"},
	},
}
