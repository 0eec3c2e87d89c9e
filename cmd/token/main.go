// Comando token emite um JWT de operador para chamar /v1/sscc/generate e
// /v1/quota/add-on. Usa apenas JWT_SECRET_KEY e JWT_EXPIRY_MIN do ambiente.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"gotrace/config"
	"gotrace/internal/domain"
	"gotrace/internal/pkg/token"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Usando apenas o ambiente do sistema.")
	}

	var userID, companyID, role string
	flagSet := pflag.NewFlagSet("token", pflag.ContinueOnError)
	flagSet.StringVarP(&userID, "user", "u", "", "identificador do usuário (obrigatório)")
	flagSet.StringVarP(&companyID, "company", "c", "", "empresa dona das cotas e regras de embalagem (obrigatório)")
	flagSet.StringVarP(&role, "role", "r", string(domain.RoleOperator), "papel: admin, operator ou viewer")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		log.Fatalf("token: %v", err)
	}

	if !domain.UserRole(role).Valid() {
		log.Fatalf("token: papel inválido %q", role)
	}

	cfg := config.LoadTokenConfig()
	tok, err := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry).GenerateToken(userID, companyID, role)
	if err != nil {
		log.Fatalf("token: %v", err)
	}
	fmt.Println(tok)
}
