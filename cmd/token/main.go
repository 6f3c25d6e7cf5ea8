// token 为指定认证主体签发调试用 JWT
package main

import (
	"Keystone/internal/api/config"
	"Keystone/internal/pkg/security"
	"flag"
	"fmt"
	log "log/slog"
	"os"
)

func main() {
	principal := flag.String("principal", "", "caller principal carried in the token")
	flag.Parse()

	if err := config.LoadConfig(); err != nil {
		log.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	cfg := config.Cfg
	security.Init(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	token, err := security.GenerateToken(*principal)
	if err != nil {
		log.Error("failed to generate token", "err", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
