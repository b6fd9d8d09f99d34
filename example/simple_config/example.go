package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/envcfg/envcfg"
)

// Config is an application configuration structure
type Config struct {
	Database struct {
		Host     string `yaml:"host" env:"DB_HOST" env-description:"Database host" env-default:"localhost"`
		Port     string `yaml:"port" env:"DB_PORT" env-description:"Database port" env-default:"5432"`
		Username string `yaml:"username" env:"DB_USER" env-description:"Database user name" env-default:"postgres"`
		Password *string `env:"DB_PASSWORD" env-description:"Database user password"`
		Name     string `yaml:"db-name" env:"DB_NAME" env-description:"Database name" env-default:"postgres"`
	} `yaml:"database"`
	Server struct {
		Host string `yaml:"host" env:"SRV_HOST,HOST" env-description:"Server host" env-default:"localhost"`
		Port string `yaml:"port" env:"SRV_PORT,PORT" env-description:"Server port" env-default:"8080"`
	} `yaml:"server"`
	Greeting string `env:"GREETING" env-description:"Greeting phrase" env-default:"Hello!"`
}

// Args command-line parameters
type Args struct {
	ConfigPath string
}

func main() {
	var cfg Config

	args := ProcessArgs(&cfg)

	// read configuration from the file and environment variables
	if err := envcfg.ReadConfig(args.ConfigPath, &cfg); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	fmt.Printf("%s server starts at %s:%s\n", cfg.Greeting, cfg.Server.Host, cfg.Server.Port)
}

// ProcessArgs processes and handles CLI arguments
func ProcessArgs(cfg interface{}) Args {
	var a Args

	f := flag.NewFlagSet("Example server", 1)
	f.StringVar(&a.ConfigPath, "c", "config.yml", "Path to configuration file")

	fu := f.Usage
	f.Usage = func() {
		fu()
		envHelp, _ := envcfg.GetDescription(cfg, nil)
		fmt.Fprintln(f.Output())
		fmt.Fprintln(f.Output(), envHelp)
	}

	f.Parse(os.Args[1:])
	return a
}
