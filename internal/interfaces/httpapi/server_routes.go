package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedTeamRoutes(mux, handler, verifier)
	registerAuthorizedBookRoutes(mux, handler, verifier)
	registerAuthorizedChapterRoutes(mux, handler, verifier)
	registerAuthorizedPickRoutes(mux, handler, verifier)
	registerAuthorizedStandingsRoutes(mux, handler, verifier)
}

func registerAuthorizedTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.SearchTeams)))
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
}

func registerAuthorizedBookRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/books", RequireAuth(verifier, http.HandlerFunc(handler.CreateBook)))
	mux.Handle("GET /v1/books", RequireAuth(verifier, http.HandlerFunc(handler.ListMyBooks)))
	mux.Handle("GET /v1/books/{bookID}/members", RequireAuth(verifier, http.HandlerFunc(handler.ListMembers)))
	mux.Handle("POST /v1/books/{bookID}/members", RequireAuth(verifier, http.HandlerFunc(handler.AddMember)))
	mux.Handle("DELETE /v1/books/{bookID}/members/{userID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveMember)))
	mux.Handle("PUT /v1/books/{bookID}/members/{userID}/role", RequireAuth(verifier, http.HandlerFunc(handler.ChangeMemberRole)))
}

func registerAuthorizedChapterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/books/{bookID}/chapters", RequireAuth(verifier, http.HandlerFunc(handler.CreateChapter)))
	mux.Handle("GET /v1/books/{bookID}/chapters", RequireAuth(verifier, http.HandlerFunc(handler.ListChapters)))
	mux.Handle("GET /v1/books/{bookID}/chapters/{chapterID}", RequireAuth(verifier, http.HandlerFunc(handler.GetChapter)))
	mux.Handle("PATCH /v1/books/{bookID}/chapters/{chapterID}/status", RequireAuth(verifier, http.HandlerFunc(handler.UpdateChapterStatus)))
	mux.Handle("DELETE /v1/books/{bookID}/chapters/{chapterID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteChapter)))
	mux.Handle("POST /v1/books/{bookID}/chapters/{chapterID}/answers", RequireAuth(verifier, http.HandlerFunc(handler.RecordAnswers)))
}

func registerAuthorizedPickRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/books/{bookID}/chapters/{chapterID}/picks", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPicks)))
	mux.Handle("GET /v1/books/{bookID}/chapters/{chapterID}/picks/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyPicks)))
}

func registerAuthorizedStandingsRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/books/{bookID}/chapters/{chapterID}/standings", RequireAuth(verifier, http.HandlerFunc(handler.GetChapterTotals)))
	mux.Handle("GET /v1/books/{bookID}/chapters/{chapterID}/table", RequireAuth(verifier, http.HandlerFunc(handler.GetChapterTable)))
	mux.Handle("GET /v1/books/{bookID}/standings", RequireAuth(verifier, http.HandlerFunc(handler.GetBookLeaderboard)))
	mux.Handle("POST /v1/books/{bookID}/recalculate", RequireAuth(verifier, http.HandlerFunc(handler.RecalculateBook)))
}
