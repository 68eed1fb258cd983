package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{DB: db}
	locationsHandler := &LocationsHandler{DB: db}
	movementsHandler := &MovementsHandler{DB: db}
	activityHandler := &ActivityHandler{DB: db}
	sharesHandler := &SharesHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: account creation and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Session and profile.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("PUT /api/auth/profile", authMW(http.HandlerFunc(authHandler.UpdateProfile)))
	mux.Handle("DELETE /api/auth/account", authMW(http.HandlerFunc(authHandler.DeactivateAccount)))

	// Items.
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("PUT /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.UploadImage)))
	mux.Handle("GET /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.GetImage)))
	mux.Handle("GET /api/items/{id}/history", authMW(http.HandlerFunc(itemsHandler.GetHistory)))

	// Locations.
	mux.Handle("GET /api/locations", authMW(http.HandlerFunc(locationsHandler.List)))
	mux.Handle("POST /api/locations", authMW(http.HandlerFunc(locationsHandler.Create)))
	mux.Handle("PUT /api/locations/{id}", authMW(http.HandlerFunc(locationsHandler.Update)))
	mux.Handle("DELETE /api/locations/{id}", authMW(http.HandlerFunc(locationsHandler.Delete)))

	// Movements and the activity log.
	mux.Handle("POST /api/movements", authMW(http.HandlerFunc(movementsHandler.Create)))
	mux.Handle("GET /api/activity", authMW(http.HandlerFunc(activityHandler.List)))

	// Shares.
	mux.Handle("GET /api/shares", authMW(http.HandlerFunc(sharesHandler.ListMine)))
	mux.Handle("GET /api/shares/pending", authMW(http.HandlerFunc(sharesHandler.ListPending)))
	mux.Handle("POST /api/shares", authMW(http.HandlerFunc(sharesHandler.Create)))
	mux.Handle("POST /api/shares/{id}/accept", authMW(http.HandlerFunc(sharesHandler.Accept)))
	mux.Handle("POST /api/shares/{id}/decline", authMW(http.HandlerFunc(sharesHandler.Decline)))
	mux.Handle("DELETE /api/shares/{id}", authMW(http.HandlerFunc(sharesHandler.Revoke)))

	return mux
}
