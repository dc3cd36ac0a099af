package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Role is one row of the join-order table: spawn corner, color and the
// starting stats a player receives when seated at that index.
type Role struct {
	Name          string `toml:"name" json:"name" validate:"required"`
	Color         string `toml:"color" json:"color" validate:"required"`
	Corner        int    `toml:"corner" json:"corner" validate:"gte=0,lte=3"`
	CapacityBonus int    `toml:"capacity_bonus" json:"capacityBonus" validate:"gte=0"`
	RangeBonus    int    `toml:"range_bonus" json:"rangeBonus" validate:"gte=0"`
	Policy        string `toml:"policy" json:"policy" validate:"oneof=normal speed_boost slow super_fast"`
}

type Game struct {
	BoardWidth         int     `toml:"board_width" json:"boardWidth" validate:"gte=5,lte=63,odd"`
	BoardHeight        int     `toml:"board_height" json:"boardHeight" validate:"gte=5,lte=63,odd"`
	DestructibleChance float64 `toml:"destructible_chance" json:"destructibleChance" validate:"gte=0,lte=1"`
	MaxPlayers         int     `toml:"max_players" json:"maxPlayers" validate:"gte=2,lte=8"`
	MinPlayers         int     `toml:"min_players" json:"minPlayers" validate:"gte=1,ltefield=MaxPlayers"`
	FuseMs             int     `toml:"fuse_ms" json:"fuseMs" validate:"gte=100"`
	BlastMs            int     `toml:"blast_ms" json:"blastMs" validate:"gte=1"`
	TickMs             int     `toml:"tick_ms" json:"tickMs" validate:"gte=1"`
	DropChance         float64 `toml:"drop_chance" json:"dropChance" validate:"gte=0,lte=1"`
	DefaultCapacity    int     `toml:"default_capacity" json:"defaultCapacity" validate:"gte=1"`
	DefaultRange       int     `toml:"default_range" json:"defaultRange" validate:"gte=1"`
	FinishedRoomTTLSec int     `toml:"finished_room_ttl_sec" json:"finishedRoomTtlSec" validate:"gte=0"`
	Seed               int64   `toml:"seed" json:"seed"`
	Roles              []Role  `toml:"roles" json:"roles" validate:"min=1,dive"`
}

type Server struct {
	HTTPAddr    string `toml:"http_addr" json:"httpAddr" validate:"required"`
	Debug       bool   `toml:"debug" json:"debug"`
	EventBuffer int    `toml:"event_buffer" json:"eventBuffer" validate:"gte=1"`
}

type Config struct {
	Server Server `toml:"server" json:"server"`
	Game   Game   `toml:"game" json:"game"`
}

// DefaultRoles mirrors the four classic corner roles.
var DefaultRoles = []Role{
	{Name: "power", Color: "#ff0000", Corner: 0, RangeBonus: 2, Policy: "slow"},
	{Name: "speed", Color: "#00ff00", Corner: 1, Policy: "speed_boost"},
	{Name: "bomber", Color: "#ffff00", Corner: 2, CapacityBonus: 1, Policy: "normal"},
	{Name: "balanced", Color: "#0000ff", Corner: 3, CapacityBonus: 1, RangeBonus: 1, Policy: "normal"},
}

func Default() Config {
	roles := make([]Role, len(DefaultRoles))
	copy(roles, DefaultRoles)
	return Config{
		Server: Server{
			HTTPAddr:    ":8080",
			EventBuffer: 1024,
		},
		Game: Game{
			BoardWidth:         15,
			BoardHeight:        13,
			DestructibleChance: 0.6,
			MaxPlayers:         4,
			MinPlayers:         2,
			FuseMs:             3000,
			BlastMs:            1000,
			TickMs:             100,
			DropChance:         0.3,
			DefaultCapacity:    1,
			DefaultRange:       2,
			FinishedRoomTTLSec: 300,
			Roles:              roles,
		},
	}
}

func (g Game) Fuse() time.Duration         { return time.Duration(g.FuseMs) * time.Millisecond }
func (g Game) BlastLifetime() time.Duration { return time.Duration(g.BlastMs) * time.Millisecond }
func (g Game) TickInterval() time.Duration  { return time.Duration(g.TickMs) * time.Millisecond }

func (g Game) FinishedRoomTTL() time.Duration {
	return time.Duration(g.FinishedRoomTTLSec) * time.Second
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Load builds the configuration from defaults, then the optional TOML file
// named by ARENA_CONFIG, then individual environment overrides.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("ARENA_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if cfg, err = Decode(data); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	cfg.Server.HTTPAddr = getenvString("HTTP_ADDR", cfg.Server.HTTPAddr)
	cfg.Server.Debug = getenvBool("ARENA_DEBUG", cfg.Server.Debug)
	cfg.Server.EventBuffer = getenvInt("EVENT_BUFFER", cfg.Server.EventBuffer)

	g := &cfg.Game
	g.BoardWidth = getenvInt("BOARD_WIDTH", g.BoardWidth)
	g.BoardHeight = getenvInt("BOARD_HEIGHT", g.BoardHeight)
	g.DestructibleChance = getenvFloat("DESTRUCTIBLE_CHANCE", g.DestructibleChance)
	g.MaxPlayers = getenvInt("MAX_PLAYERS", g.MaxPlayers)
	g.MinPlayers = getenvInt("MIN_PLAYERS", g.MinPlayers)
	g.FuseMs = getenvInt("FUSE_MS", g.FuseMs)
	g.BlastMs = getenvInt("BLAST_MS", g.BlastMs)
	g.TickMs = getenvInt("TICK_MS", g.TickMs)
	g.DropChance = getenvFloat("DROP_CHANCE", g.DropChance)
	g.DefaultCapacity = getenvInt("DEFAULT_CAPACITY", g.DefaultCapacity)
	g.DefaultRange = getenvInt("DEFAULT_RANGE", g.DefaultRange)
	g.FinishedRoomTTLSec = getenvInt("FINISHED_ROOM_TTL_SEC", g.FinishedRoomTTLSec)
	g.Seed = int64(getenvInt("ARENA_SEED", int(g.Seed)))

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode parses a TOML document on top of the defaults. Keys absent from the
// document keep their default values.
func Decode(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = newValidator()

// newValidator adds "odd", which board dimensions need so the far spawn
// corners fall off the wall lattice.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("odd", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 != 0
	})
	return v
}

func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
