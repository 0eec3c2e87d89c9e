package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/spf13/pflag"

	"gotrace/config"
	"gotrace/internal/pkg/database"
	"gotrace/internal/pkg/logger"
)

// gooseLogger direciona as mensagens do goose para o logger estruturado.
type gooseLogger struct {
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info(fmt.Sprintf(format, v...), map[string]interface{}{"component": "goose"})
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Fatal(fmt.Sprintf(format, v...), nil)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: Arquivo .env não encontrado. Usando apenas o ambiente do sistema: %v", err)
	}

	var migrationsDir, logLevel string
	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flagSet.StringVarP(&migrationsDir, "dir", "d", "./sql", "diretório com as migrações")
	flagSet.StringVar(&logLevel, "log-level", "info", "nível de log")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		log.Fatalf("migrate: %v", err)
	}

	appLog := logger.NewLogger(logLevel)
	goose.SetLogger(gooseLogger{log: appLog})
	if err := goose.SetDialect("postgres"); err != nil {
		appLog.Fatal("goose: dialeto não suportado", err)
	}

	db, err := database.NewPostgresDB(config.LoadDatabaseURL())
	if err != nil {
		appLog.Fatal("goose: falha ao conectar ao banco", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLog.Error("goose: falha ao fechar o banco", err)
		}
	}()

	arguments := flagSet.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	command := arguments[0]
	args := arguments[1:]

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		appLog.Fatal(fmt.Sprintf("goose %s", command), err)
	}

	appLog.Info(fmt.Sprintf("goose %s concluído", command), nil)
}
