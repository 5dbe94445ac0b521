package app

import (
	"context"
	"net/http"

	"github.com/suaimp/github-mktplace-v1-sub008/internal/handler"
)

type Server struct {
	httpServer *http.Server
}

func NewServer(paymentHandler *handler.PaymentHandler) *Server {
	router := handler.NewRouter(paymentHandler)

	return &Server{
		httpServer: &http.Server{
			Handler: router,
		},
	}
}

func (s *Server) Run(addr string) error {
	s.httpServer.Addr = addr
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
