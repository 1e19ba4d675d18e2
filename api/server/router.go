package apiserver

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stakewise/dvt-relayer/service"
)

// NewRouter builds the gorilla/mux router for every endpoint in §4.9.
func NewRouter(svc *service.Service) *mux.Router {
	h := New(svc)
	r := mux.NewRouter()
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/fund", h.Fund).Methods(http.MethodPost)
	r.HandleFunc("/withdraw", h.Withdraw).Methods(http.MethodPost)
	r.HandleFunc("/consolidate", h.Consolidate).Methods(http.MethodPost)
	r.HandleFunc("/exit-signature", h.ExitSignature).Methods(http.MethodPost)
	r.HandleFunc("/exits", h.Exits).Methods(http.MethodGet)
	return r
}
