// Command accounts runs the FlowMerce accounts service: registration,
// activation, sessions, password reset, profiles and merchant verification.
package main

import (
	"log"

	"github.com/flowmerce/accounts/internal/accounts/app"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("accounts: config: %v", err)
	}

	svc, err := app.New(cfg)
	if err != nil {
		log.Fatalf("accounts: startup: %v", err)
	}

	if err := svc.Run(); err != nil {
		log.Fatalf("accounts: %v", err)
	}
}
