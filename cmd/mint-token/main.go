// Command mint-token creates a bearer token for the read API.
//
// Usage:
//
//	mint-token -subject ops@example.com [-forms contact,careers] [-ttl 720h]
//
// Requires AUTH_JWT_SECRET to be set to the same value the server runs with.
// An empty -forms mints an unscoped token valid for every form.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/formsink/formsink/internal/auth"
	"github.com/formsink/formsink/internal/config"
)

func main() {
	subject := flag.String("subject", "", "token subject (required)")
	formsFlag := flag.String("forms", "", "comma-separated form ids the token may read (empty = all forms)")
	ttl := flag.Duration("ttl", 0, "token lifetime (default: AUTH_TOKEN_TTL)")
	flag.Parse()

	if *subject == "" {
		log.Fatal("-subject is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	tokenTTL := cfg.Auth.TokenTTL
	if *ttl > 0 {
		tokenTTL = *ttl
	}

	var forms []string
	for _, f := range strings.Split(*formsFlag, ",") {
		if f = strings.TrimSpace(f); f != "" {
			forms = append(forms, f)
		}
	}

	manager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, tokenTTL)
	token, err := manager.Generate(*subject, forms)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Println(token)
}
