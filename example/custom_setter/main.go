package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/envcfg/envcfg"
)

type config struct {
	Port      string `env:"PORT"`
	JWTSecret string `env:"JWT_SECRET"`
	Roles     roles  `env:"ROLES"`
}

type roles []string

func (r *roles) SetValue(s string) error {
	if s == "" {
		return fmt.Errorf("field value can't be empty")
	}

	*r = append(*r, strings.Split(s, " ")...)
	return nil
}

func main() {
	err := setEnvValues()
	if err != nil {
		panic(err)
	}

	var cfg config
	err = envcfg.ReadEnv(&cfg)
	if err != nil {
		panic(err)
	}

	log.Println("Parsed Configuration")
	log.Println(cfg)
}

func setEnvValues() error {
	err := os.Setenv("PORT", "8080")
	if err != nil {
		return fmt.Errorf("Error setting port, err = %v", err)
	}

	err = os.Setenv("JWT_SECRET", "random_secret")
	if err != nil {
		return fmt.Errorf("Error setting jwt secret, err = %v", err)
	}

	err = os.Setenv("ROLES", "admin user guest")
	if err != nil {
		return fmt.Errorf("Error setting roles, err = %v", err)
	}

	return nil
}
