package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"flatmate/config"
	"flatmate/internal/model"
	"flatmate/internal/repository"
	dbPkg "flatmate/pkg/db"
	redisPkg "flatmate/pkg/redis"
)

// Seeds the college directory from a JSON file with pre-geocoded entries.
// Upserts on (name, city) so re-running is safe.

type collegeInput struct {
	Name      string  `json:"name"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func main() {
	path := "tools/seed_colleges/colleges.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}

	var colleges []collegeInput
	if err := json.Unmarshal(data, &colleges); err != nil {
		log.Fatalf("parse %s: %v", path, err)
	}

	cfg := config.LoadConfig()
	db, err := dbPkg.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer dbPkg.CloseDB()

	if err := dbPkg.AutoMigrate(&model.College{}); err != nil {
		log.Fatalf("migrate college table: %v", err)
	}

	repo := repository.NewCollegeRepository(db)
	seeded := 0
	for _, c := range colleges {
		if c.Name == "" || c.City == "" {
			continue
		}
		err := repo.Upsert(&model.College{
			Name:      c.Name,
			City:      c.City,
			State:     c.State,
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
		})
		if err != nil {
			fmt.Printf("skip %s: %v\n", c.Name, err)
			continue
		}
		seeded++
		fmt.Printf("seeded: %s (%s)\n", c.Name, c.City)
	}

	// drop the stale directory cache if redis is around
	if err := redisPkg.InitRedis(cfg.Redis); err == nil {
		_ = redisPkg.InvalidateColleges()
		_ = redisPkg.Close()
	}

	fmt.Printf("\n%d colleges seeded\n", seeded)
}
