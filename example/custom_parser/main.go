package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/envcfg/envcfg"
)

type point struct {
	X, Y float64
}

type config struct {
	Position point  `env-parse:"point"` // CONFIG_POSITION
	Target   *point `env-parse:"point"` // CONFIG_TARGET (optional)
}

func init() {
	envcfg.RegisterParser("point", parsePoint)
}

func parsePoint(s string) (point, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return point{}, fmt.Errorf("invalid point %q", s)
	}

	var p point
	var err error
	if p.X, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return point{}, err
	}
	if p.Y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return point{}, err
	}
	return p, nil
}

func main() {
	os.Setenv("CONFIG_POSITION", "42.43, 893.2123")

	var cfg config
	if err := envcfg.ReadEnv(&cfg); err != nil {
		log.Fatal(err)
	}

	log.Printf("position %+v", cfg.Position)
	if cfg.Target == nil {
		log.Print("no target set")
	}
}
