// Command token mints a bearer token for an actor. There is no login
// flow: operators issue tokens out of band and hand them to curators and
// loaders, who send them as "Authorization: Bearer <token>".
//
// Usage:
//
//	token --actor=curator-alice [--ttl=720h]
//
// Requires AUTH_JWT_SECRET; AUTH_JWT_ISSUER defaults to "corpus-catalog".
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bhashasetu/corpus-catalog/internal/auth"
)

func main() {
	actor := flag.String("actor", "", "actor identity to embed in the token")
	ttl := flag.Duration("ttl", 720*time.Hour, "token lifetime")
	flag.Parse()

	if *actor == "" {
		fmt.Fprintln(os.Stderr, "Usage: token --actor=curator-alice [--ttl=720h]")
		os.Exit(1)
	}

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		log.Fatal("AUTH_JWT_SECRET environment variable is required")
	}

	issuer := os.Getenv("AUTH_JWT_ISSUER")
	if issuer == "" {
		issuer = "corpus-catalog"
	}

	tokens := auth.NewTokenManager(secret, issuer, *ttl)

	token, err := tokens.GenerateToken(*actor)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Println(token)
}
