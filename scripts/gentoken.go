// One-off: go run scripts/gentoken.go <user-uuid> [email] [username]
package main

import (
	"fmt"
	"os"
	"time"

	"Pulse/internal/auth"

	"github.com/google/uuid"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gentoken <user-uuid> [email] [username]")
		os.Exit(1)
	}
	id, err := uuid.Parse(os.Args[1])
	if err != nil {
		panic(err)
	}
	p := auth.Principal{ID: id, Email: "dev@example.com", Username: "dev"}
	if len(os.Args) > 2 {
		p.Email = os.Args[2]
	}
	if len(os.Args) > 3 {
		p.Username = os.Args[3]
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is required")
		os.Exit(1)
	}
	tokens := auth.NewTokenManager(secret, 24*time.Hour)
	token, err := tokens.Issue(p)
	if err != nil {
		panic(err)
	}
	fmt.Print(token)
}
