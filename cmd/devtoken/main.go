// Command devtoken prints a bearer token accepted by the server when it runs
// without Firebase credentials.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/anonto42/gif-feed/backend/internal/auth"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	uid := flag.String("uid", "", "user id (token subject)")
	email := flag.String("email", "", "email claim")
	name := flag.String("name", "", "display name claim")
	admin := flag.Bool("admin", false, "grant the admin claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logrus.Fatal("JWT_SECRET is not set")
	}
	if *uid == "" || *email == "" {
		logrus.Fatal("-uid and -email are required")
	}

	token, err := auth.NewJWTVerifier(secret).Issue(auth.Principal{
		UserID:  *uid,
		Email:   *email,
		Name:    *name,
		IsAdmin: *admin,
	}, *ttl)
	if err != nil {
		logrus.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}
