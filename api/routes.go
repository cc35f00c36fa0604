package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api/v1")
	{
		quote := api.Group("/quote")
		quote.Use(TracingMiddleware(s.requestDuration))
		{
			quote.GET("/swap", s.handleQuoteSwap)
			quote.GET("/reverse", s.handleQuoteReverse)
			quote.GET("/provide", s.handleQuoteProvide)
			quote.GET("/withdraw", s.handleQuoteWithdraw)
		}
	}
}
