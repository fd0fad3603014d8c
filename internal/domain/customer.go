package domain

// Customer has no lifecycle beyond creation and is never mutated by
// scheduling.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}
