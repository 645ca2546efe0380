// Command create-user provisions an account that can log in through POST /token.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nilecare/advisory-backend/internal/builder"
	"github.com/nilecare/advisory-backend/internal/entity"
	"go.uber.org/zap"
)

func main() {
	// Flags must be registered before the builder parses the command line.
	email := flag.String("email", "", "login email of the new user")
	password := flag.String("password", "", "password of the new user")
	fullName := flag.String("name", "", "full name of the new user")
	isAdmin := flag.Bool("admin", false, "grant administrator rights")

	authUC, logger, cleanup, err := builder.BuildUserAdmin()
	if err != nil {
		log.Fatal("failed to build user admin: ", err)
	}
	defer cleanup()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: create-user -email EMAIL -password PASSWORD [-name NAME] [-admin]")
		cleanup()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := authUC.CreateUser(ctx, *email, *fullName, *password, *isAdmin)
	if err != nil {
		if errors.Is(err, entity.ErrUserExists) {
			logger.Error("user already exists", zap.String("email", *email))
		} else {
			logger.Error("failed to create user", zap.Error(err))
		}
		cancel()
		cleanup()
		os.Exit(1)
	}

	logger.Info("user created",
		zap.String("id", user.ID),
		zap.String("email", user.Email),
		zap.Bool("admin", user.IsAdmin),
	)
}
