package models

// Doctor is a bookable practitioner with a fixed daily slot menu.
type Doctor struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	Photo          string   `json:"photo"`
	Rating         float64  `json:"rating"`
	Experience     string   `json:"experience"`
	Bio            string   `json:"bio"`
	AvailableTimes []string `json:"availableTimes"`
}

func (d Doctor) OffersTime(slot string) bool {
	for _, t := range d.AvailableTimes {
		if t == slot {
			return true
		}
	}
	return false
}
