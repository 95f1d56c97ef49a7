package router

import (
	"net/http"

	"github.com/senyabanana/shift-market/internal/handlers"
)

func InitRoutes(tenderHandler *handlers.TenderHandler, inviteHandler *handlers.InviteHandler, userHandler *handlers.UserHandler, contactHandler *handlers.ContactHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)

	mux.HandleFunc("/api/users/new", userHandler.RegisterUser)
	mux.HandleFunc("/api/users/by-phone", userHandler.GetUserByPhone)
	mux.HandleFunc("POST /api/users/{userId}/credits/deduct", userHandler.DeductCredit)
	mux.HandleFunc("POST /api/users/{userId}/credits/add", userHandler.AddCredits)
	mux.HandleFunc("DELETE /api/users/{userId}", userHandler.DeleteUser)

	mux.HandleFunc("/api/tenders", tenderHandler.GetTenders)
	mux.HandleFunc("/api/tenders/new", tenderHandler.CreateTender)
	mux.HandleFunc("/api/tenders/my", tenderHandler.GetOrganizerTenders)
	mux.HandleFunc("/api/tenders/feed", tenderHandler.GetParticipantFeed)
	mux.HandleFunc("GET /api/tenders/{tenderId}", tenderHandler.GetTenderByID)
	mux.HandleFunc("GET /api/tenders/{tenderId}/status", tenderHandler.GetTenderStatus)
	mux.HandleFunc("PUT /api/tenders/{tenderId}/close", tenderHandler.CloseTender)
	mux.HandleFunc("PUT /api/tenders/{tenderId}/invites/{userId}/status", inviteHandler.UpdateInviteStatus)

	mux.HandleFunc("GET /api/contacts", contactHandler.GetContacts)
	mux.HandleFunc("POST /api/contacts", contactHandler.CreateContact)
	mux.HandleFunc("POST /api/contacts/import", contactHandler.ImportContacts)
	mux.HandleFunc("PATCH /api/contacts/{contactId}", contactHandler.UpdateContact)
	mux.HandleFunc("DELETE /api/contacts/{contactId}", contactHandler.DeleteContact)
	mux.HandleFunc("GET /api/groups", contactHandler.GetGroups)

	return mux
}
