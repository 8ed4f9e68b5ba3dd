// Package config reads the key=value configuration files of the binaries (godotenv format) and the
// process environment (envconfig).
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"seatrouter/domain"

	"github.com/joho/godotenv"
)

// Configuration file keys.
const (
	KeyIP                   = "IP"
	KeyPort                 = "Port"
	KeyMaxWorkers           = "MaxWorkers"
	KeyProbeIntervalMs      = "ProbeIntervalMs"
	KeyProbeTimeoutMs       = "ProbeTimeoutMs"
	KeyProbeMode            = "ProbeMode"
	KeyAdminPort            = "AdminPort"
	KeyResponseAnnotation   = "ResponseAnnotation"
	KeyStoreDriver          = "StoreDriver"
	KeyStoreDSN             = "StoreDSN"
	KeyRoomsFile            = "RoomsFile"
	KeyRoomCount            = "RoomCount"
	KeyDispatcherServerIP   = "DispatcherServerIP"
	KeyDispatcherServerPort = "DispatcherServerPort"
)

// Seat store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

const (
	DefaultMaxWorkers    = 10
	DefaultProbeInterval = time.Second
	DefaultProbeTimeout  = time.Second
	DefaultProbeMode     = "connectivity"
	DefaultRoomCount     = 10

	// MaxServerCount bounds <Tier>ServerCount.
	MaxServerCount = 1024
)

// KeyError reports a missing or malformed configuration key.
type KeyError struct {
	Key    string
	Reason string
}

func (e KeyError) Error() string {
	return fmt.Sprintf("config key %s: %s", e.Key, e.Reason)
}

// IsKeyError reports whether err is (or wraps) a KeyError for key.
func IsKeyError(err error, key string) bool {
	var e KeyError
	return errors.As(err, &e) && e.Key == key
}

// Config is the configuration of a server binary (dispatcher, reservation or seat manager).
// Tiers holds the backend addresses of every tier the binary was asked to load, in configuration
// order.
type Config struct {
	Listen             domain.Address
	Tiers              map[domain.Tier][]domain.Address
	MaxWorkers         int
	ProbeInterval      time.Duration
	ProbeTimeout       time.Duration
	ProbeMode          string
	AdminPort          int
	ResponseAnnotation string
	StoreDriver        string
	StoreDSN           string
	RoomsFile          string
	RoomCount          int
}

// ClientConfig is the configuration of the client CLI.
type ClientConfig struct {
	Dispatcher domain.Address
}

// LoadServer reads the file at path and builds a Config with the backend addresses of tiers.
//
// For every tier, <Prefix>ServerCount gives the number n of endpoints and <Prefix>ServerIP{i} /
// <Prefix>ServerPort{i} for i in 1..n their addresses. IP and Port are required; every other
// non-tier key is optional and falls back to its default.
//
// Returns: (*Config, nil); a KeyError (possibly wrapped) naming the first bad key; or the file
// read error.
//
// Called from the server binaries at startup.
func LoadServer(path string, tiers ...domain.Tier) (*Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return parseServer(keyValues(values), tiers)
}

// LoadClient reads the client file at path.
func LoadClient(path string) (*ClientConfig, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	kv := keyValues(values)
	addr, err := kv.address(KeyDispatcherServerIP, KeyDispatcherServerPort)
	if err != nil {
		return nil, err
	}
	return &ClientConfig{Dispatcher: addr}, nil
}

func parseServer(kv keyValues, tiers []domain.Tier) (*Config, error) {
	listen, err := kv.address(KeyIP, KeyPort)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Listen:             listen,
		Tiers:              make(map[domain.Tier][]domain.Address, len(tiers)),
		ResponseAnnotation: kv.optionalString(KeyResponseAnnotation, ""),
		ProbeMode:          kv.optionalString(KeyProbeMode, DefaultProbeMode),
		StoreDSN:           kv.optionalString(KeyStoreDSN, ""),
		RoomsFile:          kv.optionalString(KeyRoomsFile, ""),
	}
	for _, tier := range tiers {
		addrs, err := kv.tier(tier)
		if err != nil {
			return nil, err
		}
		cfg.Tiers[tier] = addrs
	}

	if cfg.MaxWorkers, err = kv.optionalInt(KeyMaxWorkers, DefaultMaxWorkers, 1); err != nil {
		return nil, err
	}
	if cfg.ProbeInterval, err = kv.optionalMillis(KeyProbeIntervalMs, DefaultProbeInterval); err != nil {
		return nil, err
	}
	if cfg.ProbeTimeout, err = kv.optionalMillis(KeyProbeTimeoutMs, DefaultProbeTimeout); err != nil {
		return nil, err
	}
	if cfg.AdminPort, err = kv.optionalInt(KeyAdminPort, 0, 0); err != nil {
		return nil, err
	}
	if cfg.AdminPort > 65535 {
		return nil, KeyError{Key: KeyAdminPort, Reason: "must be 1-65535 (0 disables the admin server)"}
	}
	if cfg.RoomCount, err = kv.optionalInt(KeyRoomCount, DefaultRoomCount, 1); err != nil {
		return nil, err
	}

	cfg.StoreDriver = strings.ToLower(kv.optionalString(KeyStoreDriver, StoreMemory))
	switch cfg.StoreDriver {
	case StoreMemory:
	case StorePostgres, StoreRedis:
		if cfg.StoreDSN == "" {
			return nil, KeyError{Key: KeyStoreDSN, Reason: "required for store driver " + cfg.StoreDriver}
		}
	default:
		return nil, KeyError{Key: KeyStoreDriver, Reason: fmt.Sprintf("unknown driver %q", cfg.StoreDriver)}
	}
	return cfg, nil
}

// keyValues is a parsed configuration file. Values are trimmed on lookup.
type keyValues map[string]string

func (kv keyValues) lookup(key string) (string, bool) {
	v, ok := kv[key]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (kv keyValues) requiredString(key string) (string, error) {
	v, ok := kv.lookup(key)
	if !ok {
		return "", KeyError{Key: key, Reason: "is required"}
	}
	return v, nil
}

func (kv keyValues) optionalString(key, def string) string {
	if v, ok := kv.lookup(key); ok {
		return v
	}
	return def
}

func (kv keyValues) requiredInt(key string, lowest int) (int, error) {
	s, err := kv.requiredString(key)
	if err != nil {
		return 0, err
	}
	return parseInt(key, s, lowest)
}

func (kv keyValues) optionalInt(key string, def, lowest int) (int, error) {
	s, ok := kv.lookup(key)
	if !ok {
		return def, nil
	}
	return parseInt(key, s, lowest)
}

func (kv keyValues) optionalMillis(key string, def time.Duration) (time.Duration, error) {
	ms, err := kv.optionalInt(key, int(def/time.Millisecond), 1)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func (kv keyValues) port(key string) (int, error) {
	p, err := kv.requiredInt(key, 1)
	if err != nil {
		return 0, err
	}
	if p > 65535 {
		return 0, KeyError{Key: key, Reason: fmt.Sprintf("must be 1-65535, got %d", p)}
	}
	return p, nil
}

func (kv keyValues) address(hostKey, portKey string) (domain.Address, error) {
	host, err := kv.requiredString(hostKey)
	if err != nil {
		return domain.Address{}, err
	}
	port, err := kv.port(portKey)
	if err != nil {
		return domain.Address{}, err
	}
	return domain.Address{Host: host, Port: port}, nil
}

func (kv keyValues) tier(tier domain.Tier) ([]domain.Address, error) {
	prefix := tier.ConfigPrefix()
	countKey := prefix + "ServerCount"
	count, err := kv.requiredInt(countKey, 0)
	if err != nil {
		return nil, err
	}
	if count > MaxServerCount {
		return nil, KeyError{Key: countKey, Reason: fmt.Sprintf("must be at most %d", MaxServerCount)}
	}
	addrs := make([]domain.Address, 0, count)
	for i := 1; i <= count; i++ {
		addr, err := kv.address(fmt.Sprintf("%sServerIP%d", prefix, i), fmt.Sprintf("%sServerPort%d", prefix, i))
		if err != nil {
			return nil, fmt.Errorf("tier %s endpoint %d: %w", tier, i, err)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

func parseInt(key, s string, lowest int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, KeyError{Key: key, Reason: fmt.Sprintf("not an integer: %q", s)}
	}
	if n < lowest {
		return 0, KeyError{Key: key, Reason: fmt.Sprintf("must be >= %d, got %d", lowest, n)}
	}
	return n, nil
}
