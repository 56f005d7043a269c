// Package envbackend constructs a persistent backend from environment
// variables, for programs that leave backend selection to deployment.
//
// RECALL_BACKEND selects the adapter:
//
//	fs    — filesystem backend (the default)
//	redis — Redis backend
//
// With "fs", RECALL_PATH sets the cache directory (default
// $HOME/.recall-cache). With "redis", RECALL_SERVER plus optional
// RECALL_PORT (default 6379) select a TCP server, or RECALL_SOCKET a unix
// socket; RECALL_PASSWORD is passed through when set. One of
// RECALL_SERVER or RECALL_SOCKET is required.
package envbackend

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/owlworks/recall/backend"
	"github.com/owlworks/recall/backend/fsbackend"
	"github.com/owlworks/recall/backend/redisbackend"
)

// ErrNoRedisServer indicates neither RECALL_SERVER nor RECALL_SOCKET is set.
var ErrNoRedisServer = errors.New("envbackend: no redis connection information specified")

// FromEnv builds a backend from the RECALL_* environment variables.
func FromEnv() (backend.Backend, error) {
	name := os.Getenv("RECALL_BACKEND")
	if name == "" {
		name = "fs"
	}

	switch name {
	case "fs":
		return fsFromEnv()
	case "redis":
		return redisFromEnv()
	default:
		return nil, fmt.Errorf("envbackend: invalid cache backend %q", name)
	}
}

func fsFromEnv() (backend.Backend, error) {
	dir := os.Getenv("RECALL_PATH")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".recall-cache")
	}
	return fsbackend.New(dir)
}

func redisFromEnv() (backend.Backend, error) {
	server := os.Getenv("RECALL_SERVER")
	socket := os.Getenv("RECALL_SOCKET")
	password := os.Getenv("RECALL_PASSWORD")

	var opts *redis.Options
	switch {
	case server != "":
		port := os.Getenv("RECALL_PORT")
		if port == "" {
			port = "6379"
		}
		opts = &redis.Options{
			Addr:     server + ":" + port,
			Password: password,
		}
	case socket != "":
		opts = &redis.Options{
			Network:  "unix",
			Addr:     socket,
			Password: password,
		}
	default:
		return nil, ErrNoRedisServer
	}

	return redisbackend.New(redis.NewClient(opts)), nil
}
