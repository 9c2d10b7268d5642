// Command mkadmin bootstraps a confirmed account directly in the database.
// It is meant for the first deployment, before any user exists to log in
// and invite others. Database settings come from the usual configuration
// flags and JSON file.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/myhome-soft/myhome/internal/server/config"
	"github.com/myhome-soft/myhome/internal/server/models"
	"github.com/myhome-soft/myhome/internal/server/repositories"
)

func main() {
	cfg := config.LoadConfig()

	reader := bufio.NewReader(os.Stdin)
	name := prompt(reader, "Display name")
	email := prompt(reader, "Email")

	fmt.Println("Password")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("reading password: %v", err)
	}
	if len(password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hashing password: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	manager := repositories.NewPostgresRepositoryManager()
	if err := manager.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	user := &models.User{
		UserID:            uuid.NewString(),
		Name:              name,
		Email:             email,
		EncryptedPassword: string(hash),
	}

	user, err = manager.Users(db).Create(ctx, user)
	if err != nil {
		log.Fatalf("creating user: %v", err)
	}
	if err := manager.Users(db).ConfirmEmail(ctx, user.UserID); err != nil {
		log.Fatalf("confirming user: %v", err)
	}

	fmt.Printf("created confirmed account %s (%s)\n", user.UserID, user.Email)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Println(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}
	return strings.TrimSpace(line)
}
