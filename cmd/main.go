package main

import (
	"context"
	"log"

	infra "github.com/pot-code/course-platform/internal/infrastructure"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
	"github.com/pot-code/course-platform/internal/infrastructure/logging"
	"github.com/pot-code/course-platform/internal/infrastructure/uuid"
	"github.com/pot-code/course-platform/internal/interfaces/rest"
	"github.com/pot-code/course-platform/internal/payment"
	"go.uber.org/zap"
)

func main() {
	log.SetFlags(log.Lshortfile | log.Ldate | log.Ltime)
	option, err := infra.InitConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(&logging.Config{
		FilePath: option.Logging.FilePath,
		Level:    option.Logging.Level,
		AppID:    option.AppID,
		Env:      option.Env,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %s\n", err)
	}
	defer logger.Sync()

	dbConn, err := driver.GetDBConnection(&driver.DBConfig{
		User:     option.Database.User,
		Password: option.Database.Password,
		MaxConn:  option.Database.MaxConn,
		Protocol: option.Database.Protocol,
		Driver:   option.Database.Driver,
		Host:     option.Database.Host,
		Port:     option.Database.Port,
		Query:    option.Database.Query,
		Schema:   option.Database.Schema,
	})
	if err != nil {
		logger.Fatal("Failed to create DB connection", zap.Error(err))
	}
	defer dbConn.Close(context.Background())
	logger.Debug("Created DB connection", zap.String("db.driver", option.Database.Driver),
		zap.String("db.schema", option.Database.Schema),
		zap.String("db.host", option.Database.Host),
	)

	rdb := driver.NewRedisClient(option.KVStore.Host, option.KVStore.Port, option.KVStore.Password)
	defer rdb.Close()

	UseCases := rest.NewUseCases(
		dbConn,
		uuid.NewNanoIDGenerator(option.Security.IDLength),
		payment.NewTossGateway(option.Payment.BaseURL, option.Payment.SecretKey, option.Payment.Timeout),
		option.Progress.Fanout,
	)
	if err := rest.Serve(dbConn, rdb, option, UseCases, logger); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
