// One-shot admin bootstrap: creates the dashboard user.
//
//	go run ./folio/cmd/setup-admin <username> <password>
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"folio/folio/config"
	"folio/folio/sources/psql"
	"folio/folio/sources/psql/dao"
	"folio/folio/utils/logging"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	if len(os.Args) != 3 {
		fmt.Println("usage: setup-admin <username> <password>")
		os.Exit(1)
	}
	username, password := os.Args[1], os.Args[2]

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	userDAO := dao.NewAdminUserDAO(db.DB)
	if existing, err := userDAO.GetByUsername(ctx, username); err != nil {
		logging.ErrorLogger.Error("lookup failed", zap.Error(err))
		os.Exit(1)
	} else if existing != nil {
		fmt.Println("admin user already exists:", username)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logging.ErrorLogger.Error("hash failed", zap.Error(err))
		os.Exit(1)
	}
	user, err := userDAO.Create(ctx, username, string(hash))
	if err != nil {
		logging.ErrorLogger.Error("create failed", zap.Error(err))
		os.Exit(1)
	}
	fmt.Printf("created admin user %s (id %d)\n", user.Username, user.ID)
}
