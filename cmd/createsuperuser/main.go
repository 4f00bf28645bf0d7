// Command createsuperuser は管理者ユーザーを作成します。
//
//	createsuperuser -email admin@example.com [-firstname Ada] [-lastname Lovelace]
//
// パスワードはSUPERUSER_PASSWORDが設定されていればそれを使い、
// なければ端末からエコーなしで2回入力させます。
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"account_backend/internal/app/di"
	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/usecase"
	"account_backend/internal/platform/config"
	infradb "account_backend/internal/platform/db"
	"account_backend/internal/platform/logging"
)

const envSuperuserPassword = "SUPERUSER_PASSWORD"

type options struct {
	email     string
	firstname string
	lastname  string
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "createsuperuser:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin *os.File, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	_ = godotenv.Load(".env")

	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}
	if _, err := logging.Setup(stderr, cfg.LogLevel); err != nil {
		return err
	}

	password, err := readPassword(stdin, stderr)
	if err != nil {
		return err
	}

	dbCfg, err := infradb.LoadConfigFromEnv()
	if err != nil {
		return err
	}
	db, err := infradb.OpenDB(dbCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := infradb.Close(db); err != nil {
			slog.Error("Failed to close DB", "error", err)
		}
	}()

	store := di.NewCredentialStore(db, cfg.PasswordHashCost)
	user, err := store.CreateSuperuser(context.Background(), opts.email, password, entity.UserAttrs{
		Firstname: opts.firstname,
		Lastname:  opts.lastname,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			return fmt.Errorf("a user with email %q already exists", opts.email)
		}
		return err
	}

	slog.Info("superuser created", "id", user.ID, "email", user.Email)
	return nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.email, "email", "", "superuser email (required)")
	fs.StringVar(&opts.firstname, "firstname", "", "first name")
	fs.StringVar(&opts.lastname, "lastname", "", "last name")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if strings.TrimSpace(opts.email) == "" {
		return options{}, errors.New("-email is required")
	}
	return opts, nil
}

// readPassword は環境変数、端末（エコーなし）、パイプの順でパスワードを取得します。
func readPassword(stdin *os.File, prompt io.Writer) (string, error) {
	if p := os.Getenv(envSuperuserPassword); p != "" {
		return p, nil
	}

	fd := int(stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(stdin)
	}

	fmt.Fprint(prompt, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(prompt, "Password (again): ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(first), nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password must not be empty")
	}
	return line, nil
}
