package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/opinionmap/api/internal/adapters/handler/http"
	pgrepo "github.com/opinionmap/api/internal/adapters/repository/postgres"
	"github.com/opinionmap/api/internal/core/ports"
	"github.com/opinionmap/api/internal/core/services"
)

type TestApp struct {
	DB        *sql.DB
	Server    *httptest.Server
	Client    *http.Client
	Filter    ports.ProximityFilter
	container testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// setupTestApp starts a Postgres container, applies migrations and wires
// the full HTTP stack with the pushdown proximity filter.
func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	require.NoError(t, applyMigrations(db))

	questionRepo := pgrepo.NewQuestionRepository(db)
	answerRepo := pgrepo.NewAnswerRepository(db)
	filter := services.NewPushdownProximityFilter(answerRepo)

	resultsService := services.NewResultsService(filter, nil)
	server := httptest.NewServer(handler.NewHandler(
		handler.NewQuestionHandler(services.NewQuestionService(questionRepo)),
		handler.NewAnswerHandler(services.NewAnswerService(questionRepo, answerRepo), filter),
		handler.NewResultHandler(resultsService),
		handler.NewSessionHandler(resultsService),
	))

	return &TestApp{
		DB:        db,
		Server:    server,
		Client:    server.Client(),
		Filter:    filter,
		container: container,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	t.Helper()
	app.Server.Close()
	app.DB.Close()
	require.NoError(t, app.container.Terminate(context.Background()))
}

func seedQuestion(t *testing.T, db *sql.DB, text string, options ...string) (questionID int64, optionIDs []int64) {
	t.Helper()

	err := db.QueryRow("INSERT INTO questions (question_text) VALUES ($1) RETURNING id", text).Scan(&questionID)
	require.NoError(t, err)

	for _, opt := range options {
		var optionID int64
		err := db.QueryRow(
			"INSERT INTO options (question_id, option_text) VALUES ($1, $2) RETURNING id",
			questionID, opt,
		).Scan(&optionID)
		require.NoError(t, err)
		optionIDs = append(optionIDs, optionID)
	}
	return questionID, optionIDs
}

func seedAnswer(t *testing.T, db *sql.DB, questionID int64, text string, lat, lon float64) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(
		"INSERT INTO answers (question_id, answer_text, latitude, longitude) VALUES ($1, $2, $3, $4) RETURNING id",
		questionID, text, lat, lon,
	).Scan(&id)
	require.NoError(t, err)
	return id
}
