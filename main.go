package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set properties of the predefined Logger, including
	// the log entry prefix and a flag to disable printing
	// the time, source file, and line number.
	log.SetPrefix("lg/weight-plan-go-api: ")
	log.SetFlags(0)

	h := &Handler{db: getDBPool()}
	defer h.db.Close()

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = "localhost:3000"
	}
	router.Run(addr)
}
