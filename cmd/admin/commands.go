package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	appAuth "github.com/yigit/honorsociety/internal/app/auth"
	"github.com/yigit/honorsociety/internal/app/models/dto"
	appRepos "github.com/yigit/honorsociety/internal/app/repositories"
	"github.com/yigit/honorsociety/internal/app/services"
	"github.com/yigit/honorsociety/internal/bootstrap"
	"github.com/yigit/honorsociety/internal/config"
	"github.com/yigit/honorsociety/internal/db"
	pkgAuth "github.com/yigit/honorsociety/internal/pkg/auth"
	"github.com/yigit/honorsociety/internal/seed"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errMemoryDriver = errors.New("admin commands need a persistent database; database.driver is memory")
)

// environment is the loaded configuration plus an open store
type environment struct {
	cfg    *config.Config
	logger zerolog.Logger
	repos  *appRepos.Repositories
	close  func()
}

func loadConfig(c *cli.Context) (*config.Config, zerolog.Logger, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return nil, lgr, err
	}
	if cfg.Database.Driver == config.DriverMemory {
		return nil, lgr, errMemoryDriver
	}
	return cfg, lgr, nil
}

func openEnvironment(c *cli.Context) (*environment, error) {
	cfg, lgr, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	repos, closeDB, err := bootstrap.SetupRepositories(c.Context, cfg, lgr)
	if err != nil {
		return nil, err
	}
	pkgAuth.BcryptCost = cfg.Auth.BcryptCost
	return &environment{cfg: cfg, logger: lgr, repos: repos, close: closeDB}, nil
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply pending SQL migrations",
		Action: func(c *cli.Context) error {
			cfg, lgr, err := loadConfig(c)
			if err != nil {
				return err
			}
			database, err := db.NewPostgresDB(c.Context, cfg)
			if err != nil {
				return err
			}
			defer database.Close()
			return bootstrap.RunMigrations(c.Context, cfg, database, lgr)
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "create the default campuses, departments and courses",
		Action: func(c *cli.Context) error {
			env, err := openEnvironment(c)
			if err != nil {
				return err
			}
			defer env.close()
			return seed.CreateDefaultData(c.Context, env.repos, env.logger)
		},
	}
}

func createOfficerCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-officer",
		Usage: "register a user with an officer record, verified and active",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Required: true},
			&cli.StringFlag{Name: "password", Usage: "prompted when omitted"},
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "first-name"},
			&cli.StringFlag{Name: "last-name"},
			&cli.StringFlag{Name: "position", Required: true},
			&cli.Int64Flag{Name: "campus", Required: true, Usage: "campus id"},
		},
		Action: func(c *cli.Context) error {
			password := c.String("password")
			if password == "" {
				var err error
				if password, err = promptPassword(); err != nil {
					return err
				}
			}

			env, err := openEnvironment(c)
			if err != nil {
				return err
			}
			defer env.close()

			authService := services.NewAuthService(
				env.repos.UserRepository,
				env.repos.OfficerRepository,
				env.repos.CampusRepository,
				env.repos.TokenRepository,
				appAuth.NewOfficerGate(env.repos.OfficerRepository),
				bootstrap.NewJWTService(env.cfg),
				env.logger,
			)
			resp, err := authService.Register(c.Context, &dto.RegisterRequest{
				Username:  c.String("username"),
				Password:  password,
				Email:     c.String("email"),
				FirstName: c.String("first-name"),
				LastName:  c.String("last-name"),
				Position:  c.String("position"),
				CampusID:  c.Int64("campus"),
			})
			if err != nil {
				return err
			}
			if err := env.repos.OfficerRepository.SetStatus(c.Context, resp.Officer.ID, true, true); err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "officer %d created for user %q\n", resp.Officer.ID, resp.User.Username)
			return nil
		},
	}
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(strings.TrimSpace(string(pwd))) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(pwd), nil
}

// officerCommand groups the approval actions that the API never exposes
func officerCommand() *cli.Command {
	return &cli.Command{
		Name:  "officer",
		Usage: "change officer approval flags",
		Subcommands: []*cli.Command{
			officerStatusCommand("verify", "mark an officer verified and active", func(o *statusFlags) { o.verified, o.active = true, true }),
			officerStatusCommand("unverify", "revoke verification", func(o *statusFlags) { o.verified = false }),
			officerStatusCommand("activate", "mark an officer active", func(o *statusFlags) { o.active = true }),
			officerStatusCommand("deactivate", "mark an officer inactive", func(o *statusFlags) { o.active = false }),
		},
	}
}

type statusFlags struct {
	active   bool
	verified bool
}

func officerStatusCommand(name, usage string, apply func(*statusFlags)) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "OFFICER_ID",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "by-user", Usage: "treat the argument as a user id"},
		},
		Action: func(c *cli.Context) error {
			var id int64
			if _, err := fmt.Sscan(c.Args().First(), &id); err != nil || id <= 0 {
				return cli.Exit(fmt.Sprintf("%s: a positive id argument is required", name), 2)
			}

			env, err := openEnvironment(c)
			if err != nil {
				return err
			}
			defer env.close()

			officers := env.repos.OfficerRepository
			lookup := officers.GetByID
			if c.Bool("by-user") {
				lookup = officers.GetByUserID
			}
			officer, err := lookup(c.Context, id)
			if err != nil {
				return fmt.Errorf("officer %d: %w", id, err)
			}

			flags := statusFlags{active: officer.IsActive, verified: officer.IsVerified}
			apply(&flags)
			if err := officers.SetStatus(c.Context, officer.ID, flags.active, flags.verified); err != nil {
				return err
			}

			env.logger.Info().
				Int64("officerID", officer.ID).
				Bool("isActive", flags.active).
				Bool("isVerified", flags.verified).
				Msg("Officer status updated")
			return nil
		},
	}
}

func cleanupTokensCommand() *cli.Command {
	return &cli.Command{
		Name:  "cleanup-tokens",
		Usage: "delete blacklisted refresh tokens that have already expired",
		Action: func(c *cli.Context) error {
			env, err := openEnvironment(c)
			if err != nil {
				return err
			}
			defer env.close()

			ctx, cancel := context.WithTimeout(c.Context, time.Minute)
			defer cancel()
			removed, err := env.repos.TokenRepository.DeleteExpired(ctx, time.Now())
			if err != nil {
				return err
			}
			env.logger.Info().Int64("removed", removed).Msg("Expired revoked tokens deleted")
			return nil
		},
	}
}
