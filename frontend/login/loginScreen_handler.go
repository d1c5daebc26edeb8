package login

import (
	"net/http"
	"strings"

	"logidash/infrastructure/config"
)

// LoginScreenQueryHandler renders the Google sign-in screen.
func LoginScreenQueryHandler(auth config.AuthConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ScreenData{
			GoogleClientID: auth.GoogleClientID,
			AllowedDomain:  auth.AllowedEmailDomain,
			ServiceEmail:   auth.ServiceAccountEmail,
			ServiceEnabled: strings.TrimSpace(auth.ServiceAccountHash) != "",
			ErrorMessage:   r.URL.Query().Get("error"),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := LoginScreen(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render login screen", http.StatusInternalServerError)
			return
		}
	}
}
