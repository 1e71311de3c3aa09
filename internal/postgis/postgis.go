/*
Copyright © 2026 the geocol authors.
This file is part of geocol.

geocol is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

geocol is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with geocol.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package postgis starts a PostGIS database for interoperability tests.
package postgis

import (
	"context"
	"fmt"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v4"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Image is the PostGIS container image used by SetupTestDB.
const Image = "postgis/postgis:16-3.4"

// SetupTestDB starts a PostGIS container and returns a connection to it.
// The container is terminated and the connection closed when the test
// finishes. The test is skipped when running in short mode or when no
// container runtime is available.
func SetupTestDB(ctx context.Context, t *testing.T) *pgx.Conn {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostGIS test in short mode")
	}
	const (
		dbname = "geocol"
		dbuser = "postgres"
		dbport = "5432"
	)

	req := testcontainers.ContainerRequest{
		Image:        Image,
		ExposedPorts: []string{dbport + "/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":               dbname,
			"POSTGRES_USER":             dbuser,
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		// The server restarts once after initialization.
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}
	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("PostGIS container unavailable: %v", err)
	}
	t.Cleanup(func() { postgresC.Terminate(context.Background()) })

	host, err := postgresC.Host(ctx)
	if err != nil {
		t.Fatal(err)
	}
	p, err := postgresC.MappedPort(ctx, dbport)
	if err != nil {
		t.Fatal(err)
	}
	url := fmt.Sprintf("postgres://%s@%s:%s/%s", dbuser, host, p.Port(), dbname)

	var conn *pgx.Conn
	err = backoff.Retry(func() error {
		conn, err = pgx.Connect(ctx, url)
		return err
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 10))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close(context.Background()) })

	if _, err = conn.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS postgis"); err != nil {
		t.Fatal(err)
	}
	return conn
}
