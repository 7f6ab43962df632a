package mux

import (
	"net/http"

	"callbreak-server/pkg/game"
	"callbreak-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

// nameCookie marks that the player has picked a display name
const nameCookie = "cardsPlayerName"

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
	engine  *game.Engine
}

// NewMux returns a new HTTP mux
func NewMux(version string, engine *game.Engine, pitBoss *room.PitBoss) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		engine:  engine,
	}

	this.Router.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())

	rr := this.Router.PathPrefix("/room/{id}").Subrouter()
	rr.Methods(http.MethodGet).Path("/ws").Handler(this.getRoomWS())

	// the room view requires a previously chosen display name
	rr.Methods(http.MethodGet).Path("").Handler(this.nameGuard(this.getRoom()))

	return this
}

// nameGuard redirects to the entry view unless the display-name cookie is set
func (m *Mux) nameGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(nameCookie); err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getRoom acknowledges the room exists server-side; page rendering is the
// frontend's job
func (m *Mux) getRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, roomResponse{
			RoomID: gmux.Vars(r)["id"],
		})
	}
}

type roomResponse struct {
	RoomID string `json:"roomId"`
}
