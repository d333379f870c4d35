package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN renders the pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Sim stores simulation tuning knobs.
type Sim struct {
	TickInterval           time.Duration
	UserSeedInterval       time.Duration
	VehicleEnsureInterval  time.Duration
	ShipmentCreateInterval time.Duration
	AdvanceInterval        time.Duration

	TargetCustomers int
	TargetDrivers   int
	TargetManagers  int

	MaxOpenShipments    int
	MaxShipmentsPerTick int

	MinStepMeters    float64
	MaxStepMeters    float64
	DeliveryFailRate float64

	// RandomSeed pins the fake data source; 0 means seed from time.
	RandomSeed uint64
}

// Ops stores the ops side-server settings.
type Ops struct {
	Port int
}

// Config is the full engine configuration.
type Config struct {
	DB  DB
	Sim Sim
	Ops Ops
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		DB:  DefaultDB(),
		Sim: DefaultSim(),
		Ops: DefaultOps(),
	}

	readEnv(cfg)

	fs := pflag.NewFlagSet("logistics-sim", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.IntVarP(&cfg.Ops.Port, "ops-port", "p", cfg.Ops.Port, "ops server port (healthz, metrics, pprof)")
	fs.DurationVar(&cfg.Sim.TickInterval, "tick", cfg.Sim.TickInterval, "scheduler tick interval")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readEnv(cfg *Config) {
	envString(&cfg.DB.Host, "DB_HOST")
	envString(&cfg.DB.Port, "DB_PORT")
	envString(&cfg.DB.User, "DB_USER")
	envString(&cfg.DB.Pass, "DB_PASS")
	envString(&cfg.DB.Name, "DB_NAME")

	envDuration(&cfg.Sim.TickInterval, "SIM_TICK_INTERVAL")
	envDuration(&cfg.Sim.UserSeedInterval, "SIM_USER_SEED_INTERVAL")
	envDuration(&cfg.Sim.VehicleEnsureInterval, "SIM_VEHICLE_ENSURE_INTERVAL")
	envDuration(&cfg.Sim.ShipmentCreateInterval, "SIM_SHIPMENT_CREATE_INTERVAL")
	envDuration(&cfg.Sim.AdvanceInterval, "SIM_ADVANCE_INTERVAL")

	envInt(&cfg.Sim.TargetCustomers, "SIM_TARGET_CUSTOMERS")
	envInt(&cfg.Sim.TargetDrivers, "SIM_TARGET_DRIVERS")
	envInt(&cfg.Sim.TargetManagers, "SIM_TARGET_MANAGERS")
	envInt(&cfg.Sim.MaxOpenShipments, "SIM_MAX_OPEN_SHIPMENTS")
	envInt(&cfg.Sim.MaxShipmentsPerTick, "SIM_MAX_SHIPMENTS_PER_TICK")

	envFloat(&cfg.Sim.MinStepMeters, "SIM_MIN_STEP_METERS")
	envFloat(&cfg.Sim.MaxStepMeters, "SIM_MAX_STEP_METERS")
	envFloat(&cfg.Sim.DeliveryFailRate, "SIM_DELIVERY_FAIL_RATE")
	envUint64(&cfg.Sim.RandomSeed, "SIM_RANDOM_SEED")

	envInt(&cfg.Ops.Port, "OPS_PORT")
}

func (c *Config) validate() error {
	if c.Ops.Port <= 0 || c.Ops.Port > 65535 {
		return fmt.Errorf("invalid ops port: %d", c.Ops.Port)
	}
	if c.Sim.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", c.Sim.TickInterval)
	}
	if c.Sim.TargetCustomers < 0 || c.Sim.TargetDrivers < 0 || c.Sim.TargetManagers < 0 {
		return fmt.Errorf("role targets must be non-negative")
	}
	if c.Sim.MaxOpenShipments <= 0 {
		return fmt.Errorf("max open shipments must be positive, got %d", c.Sim.MaxOpenShipments)
	}
	if c.Sim.MaxShipmentsPerTick <= 0 {
		return fmt.Errorf("max shipments per tick must be positive, got %d", c.Sim.MaxShipmentsPerTick)
	}
	if c.Sim.MinStepMeters <= 0 || c.Sim.MaxStepMeters < c.Sim.MinStepMeters {
		return fmt.Errorf("invalid step range [%v, %v]", c.Sim.MinStepMeters, c.Sim.MaxStepMeters)
	}
	if c.Sim.DeliveryFailRate < 0 || c.Sim.DeliveryFailRate > 1 {
		return fmt.Errorf("delivery fail rate must be within [0, 1], got %v", c.Sim.DeliveryFailRate)
	}
	return nil
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envUint64(dst *uint64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func envFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func envDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
