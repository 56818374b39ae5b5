package api

// Auth
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type LoginResponse struct {
	Token string `json:"token"`
}

// Reservation
type CreateReservationResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}
