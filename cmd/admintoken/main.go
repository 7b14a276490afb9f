// Command admintoken prints a signed admin JWT for the /admin routes.
package main

import (
	"flag"
	"fmt"
	"os"

	"datenight/internal/config"
	"datenight/internal/logging"
	"datenight/pkg/utils"
)

func main() {
	subject := flag.String("subject", "ops", "token subject")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	tokens := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	token, err := tokens.CreateToken(*subject, utils.RoleAdmin)
	if err != nil {
		logging.Fatal().Err(err).Msg("create token")
	}
	fmt.Fprintln(os.Stdout, token)
}
