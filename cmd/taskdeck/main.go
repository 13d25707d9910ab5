// @title			Taskdeck API
// @version		1.0
// @description	Project/task tracking service with a kanban board view and append-only progress history.
// @BasePath		/api/v1

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/opaline-labs/taskdeck/internal/client"
	"github.com/opaline-labs/taskdeck/internal/config"
	"github.com/opaline-labs/taskdeck/internal/database"
	"github.com/opaline-labs/taskdeck/internal/domain"
	"github.com/opaline-labs/taskdeck/internal/handler"
	"github.com/opaline-labs/taskdeck/internal/handler/dto"
	"github.com/opaline-labs/taskdeck/internal/logger"
	"github.com/opaline-labs/taskdeck/internal/repository"
	"github.com/opaline-labs/taskdeck/internal/status"
	"github.com/opaline-labs/taskdeck/internal/syncer"
)

func main() {
	app := &cli.App{
		Name:  "taskdeck",
		Usage: "Project/task tracking service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Aliases: []string{"d"},
				Value:   config.DefaultDatabaseURL,
				Usage:   "PostgreSQL database URL",
				EnvVars: []string{"DATABASE_URL"},
			},
		},
		Before: func(c *cli.Context) error {
			// Missing .env is fine; flags and real env vars still apply.
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("load .env: %w", err)
			}
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
				},
				Action: runServe,
			},
			{
				Name:   "check-overdue",
				Usage:  "List tasks whose due date has passed and are not yet done",
				Action: runCheckOverdue,
			},
			{
				Name:  "watch",
				Usage: "Poll a project's board and print column counts on every refresh",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "server-url",
						Aliases: []string{"s"},
						Value:   "http://localhost:" + config.DefaultPort,
						Usage:   "Taskdeck server base URL",
						EnvVars: []string{"TASKDECK_URL"},
					},
					&cli.StringFlag{
						Name:     "token",
						Aliases:  []string{"t"},
						Usage:    "API bearer token",
						EnvVars:  []string{"TASKDECK_TOKEN"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "project",
						Usage:    "Project UUID to watch",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "interval",
						Value: config.DefaultPollInterval,
						Usage: "Polling interval",
					},
				},
				Action: runWatch,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}
	databaseURL := c.String("database-url")

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	h := handler.New(db.Pool())

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runCheckOverdue(c *cli.Context) error {
	ctx := c.Context
	databaseURL := c.String("database-url")

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	taskRepo := repository.NewTaskRepository(db.Pool())
	tasks, err := taskRepo.ListPastDue(ctx)
	if err != nil {
		return fmt.Errorf("failed to list past-due tasks: %w", err)
	}

	overdue := 0
	for _, task := range tasks {
		if status.Normalize(task.Status) == domain.BucketDone {
			continue
		}
		overdue++
		slog.Warn("task overdue",
			"task_id", task.ID,
			"project_id", task.ProjectID,
			"title", task.Title,
			"due_date", task.DueDate.Format(time.RFC3339),
			"progress_percent", task.ProgressPercent,
		)
	}

	slog.Info("overdue check complete", "overdue_count", overdue, "checked", len(tasks))
	return nil
}

func runWatch(c *cli.Context) error {
	projectID := c.String("project")
	api := client.New(c.String("server-url"), c.String("token"))

	fetch := func(ctx context.Context) error {
		b, err := api.GetBoard(ctx, projectID)
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			// The view is gone; drop the late snapshot silently.
			return ctx.Err()
		}
		printBoard(b)
		return nil
	}

	scheduler := syncer.New(fetch, c.Duration("interval"))
	scheduler.Start()
	defer scheduler.Stop()

	refresh := make(chan os.Signal, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(refresh, syscall.SIGHUP)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	slog.Info("watching project board",
		"project_id", projectID,
		"interval", c.Duration("interval").String(),
	)

	for {
		select {
		case <-refresh:
			scheduler.Notify(syncer.TriggerManual)
		case <-done:
			slog.Info("stopping watch")
			return nil
		}
	}
}

func printBoard(b *dto.BoardResponse) {
	fmt.Printf("%s  todo:%d  in_progress:%d  done:%d  unrecognized:%d\n",
		b.ProjectName, len(b.Todo), len(b.InProgress), len(b.Done), len(b.Unrecognized))
	for _, col := range [][]dto.BoardCard{b.Todo, b.InProgress, b.Done, b.Unrecognized} {
		for _, card := range col {
			fmt.Printf("  [%s] %s (%d%%, %d/%d subtasks done)\n",
				card.Bucket, card.Title, card.ProgressPercent, card.DoneSubtaskCount, card.SubtaskCount)
		}
	}
}
