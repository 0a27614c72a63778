// Package cli implements the operator commands of the client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/enable/internal/client/iocli"
	"github.com/iudanet/enable/internal/crypto/sign"
	"github.com/iudanet/enable/pkg/api"
)

// PrivateKeyEnv - переменная окружения с hex секретным ключом для add-user
const PrivateKeyEnv = "ENABLE_PRIVATE_KEY"

// ErrUnknownCommand indicates an unsupported command name
var ErrUnknownCommand = errors.New("unknown command")

// Client - операции сервера, используемые командами
type Client interface {
	AddUser(ctx context.Context, req api.AddUserRequest) (*api.AddUserResponse, error)
	AddLogin(ctx context.Context, req api.AddLoginRequest) (*api.AddLoginResponse, error)
	Sign(ctx context.Context, req api.SignRequest) (*api.SignResponse, error)
	Health(ctx context.Context) (*api.HealthResponse, error)
}

// Cli выполняет команды клиента
type Cli struct {
	io     iocli.IO
	client Client
	scheme sign.Scheme
	getenv func(string) string
}

// New создает CLI. scheme используется для локальных операций (verify, вывод публичного ключа)
func New(io iocli.IO, client Client, scheme sign.Scheme) *Cli {
	return &Cli{
		io:     io,
		client: client,
		scheme: scheme,
		getenv: os.Getenv,
	}
}

// Run выполняет команду с аргументами
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "add-user":
		return c.RunAddUser(ctx, args)
	case "add-login":
		return c.RunAddLogin(ctx, args)
	case "sign":
		return c.RunSign(ctx, args)
	case "verify":
		return c.RunVerify(args)
	case "token":
		return c.RunToken(args)
	case "salt":
		return c.RunSalt(args)
	case "health":
		return c.RunHealth(ctx)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// PrintUsage выводит справку
func PrintUsage(io iocli.IO) {
	io.Println("enable client")
	io.Println()
	io.Println("Usage:")
	io.Println("  enable-client [OPTIONS] COMMAND [COMMAND OPTIONS]")
	io.Println()
	io.Println("Options:")
	io.Println("  -version          Show version information")
	io.Println("  -server URL       Server URL (default: http://localhost:8080)")
	io.Println("  -token TOKEN      Operator token (or ENABLE_TOKEN)")
	io.Printf("  -scheme NAME      Signature scheme for local operations: %s\n", strings.Join(sign.Names(), ", "))
	io.Println()
	io.Println("Commands:")
	io.Println("  add-user   -id ID [-key HEX | -key-file PATH] [-public-key HEX | -derive-public]")
	io.Println("  add-login  -id ID -code CODE")
	io.Println("  sign       -code CODE (-message TEXT | -message-file PATH) [-verify]")
	io.Println("  verify     -public-key HEX -signature HEX (-message TEXT | -message-file PATH)")
	io.Println("  token      -operator NAME [-secret SECRET] [-ttl DURATION]")
	io.Println("  salt       (prints a base64 salt for -seal-salt / ENABLE_SEAL_SALT)")
	io.Println("  health")
	io.Println()
	io.Println("Private Key Priority (highest to lowest):")
	io.Println("  1. -key (command line, not recommended)")
	io.Println("  2. -key-file (file path)")
	io.Printf("  3. %s environment variable\n", PrivateKeyEnv)
	io.Println("  4. Interactive prompt (fallback)")
	io.Println()
	io.Println("Examples:")
	io.Println("  enable-client -token $TOKEN add-user -id alice -key-file alice.key -derive-public")
	io.Println("  enable-client -token $TOKEN add-login -id alice -code 42")
	io.Println("  enable-client sign -code 42 -message hello -verify")
}
