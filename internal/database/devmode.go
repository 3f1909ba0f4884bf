package database

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"k8s.io/apimachinery/pkg/util/wait"
)

const (
	PostgresImage = "postgres:16"

	devContainerName = "skyplan-db"
	devNetworkName   = "skyplan-bridge"
	devVolumeName    = "skyplan_data"
)

type connInfo struct {
	user, pass string
	host, port string
	name       string
}

// StartPostgresContainer makes sure a local postgres matching dbURL is running,
// starting a docker container with a persistent volume if it isn't.
func StartPostgresContainer(ctx context.Context, dbURL string) error {
	info, err := parseURL(dbURL)
	if err != nil {
		return err
	}

	if waitForPostgres(ctx, dbURL, 1) == nil {
		slog.DebugContext(ctx, "postgres already running", "host", info.host, "port", info.port)
		return nil
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("creating docker client: %w", err)
	}
	defer cli.Close()

	reader, err := cli.ImagePull(ctx, PostgresImage, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("pulling %s: %w", PostgresImage, err)
	}
	defer reader.Close()

	if err := jsonmessage.DisplayJSONMessagesStream(reader, os.Stdout, os.Stdout.Fd(), true, nil); err != nil {
		return fmt.Errorf("displaying pull progress: %w", err)
	}

	if _, err := cli.NetworkCreate(ctx, devNetworkName, network.CreateOptions{Driver: "bridge"}); err != nil && !errdefs.IsConflict(err) {
		return fmt.Errorf("creating network: %w", err)
	}

	pgPort := nat.Port("5432/tcp")
	containerID, err := createContainer(ctx, cli,
		&container.Config{
			Image: PostgresImage,
			Env: []string{
				"POSTGRES_USER=" + info.user,
				"POSTGRES_PASSWORD=" + info.pass,
				"POSTGRES_DB=" + info.name,
			},
			ExposedPorts: nat.PortSet{pgPort: struct{}{}},
		},
		&container.HostConfig{
			PortBindings: nat.PortMap{
				pgPort: []nat.PortBinding{{HostIP: info.host, HostPort: info.port}},
			},
			Mounts: []mount.Mount{{
				Type:   mount.TypeVolume,
				Source: devVolumeName,
				Target: "/var/lib/postgresql/data",
			}},
		},
	)
	if err != nil {
		return err
	}

	if err := cli.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		return fmt.Errorf("starting container: %w", err)
	}

	slog.InfoContext(ctx, "started postgres container", "id", containerID, "host", info.host, "port", info.port)
	return waitForPostgres(ctx, dbURL, 10)
}

// createContainer creates the dev container or returns the existing one.
func createContainer(ctx context.Context, cli *client.Client, cfg *container.Config, hostCfg *container.HostConfig) (string, error) {
	netCfg := &network.NetworkingConfig{
		EndpointsConfig: map[string]*network.EndpointSettings{devNetworkName: {}},
	}

	resp, err := cli.ContainerCreate(ctx, cfg, hostCfg, netCfg, nil, devContainerName)
	if err == nil {
		return resp.ID, nil
	}
	if !errdefs.IsConflict(err) {
		return "", fmt.Errorf("creating container: %w", err)
	}

	existing, err := cli.ContainerInspect(ctx, devContainerName)
	if err != nil {
		return "", fmt.Errorf("inspecting container: %w", err)
	}
	return existing.ID, nil
}

func parseURL(dbURL string) (connInfo, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return connInfo{}, fmt.Errorf("parsing database URL: %w", err)
	}

	info := connInfo{name: strings.TrimPrefix(u.Path, "/")}
	info.host, info.port, err = net.SplitHostPort(u.Host)
	if err != nil {
		info.host, info.port = u.Host, ""
	}

	if pass, ok := u.User.Password(); ok {
		info.user, info.pass = u.User.Username(), pass
	}
	return info, nil
}

// waitForPostgres pings the database with exponential backoff until it answers
// or attempts run out.
func waitForPostgres(ctx context.Context, dbURL string, attempts int) error {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("creating connection pool: %w", err)
	}
	defer pool.Close()

	var lastErr error
	backoff := wait.Backoff{Duration: 100 * time.Millisecond, Factor: 2, Steps: attempts}
	err = wait.ExponentialBackoffWithContext(ctx, backoff, func(ctx context.Context) (bool, error) {
		if lastErr = pool.Ping(ctx); lastErr != nil {
			slog.DebugContext(ctx, "postgres not ready", "error", lastErr)
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		if lastErr != nil {
			return fmt.Errorf("postgres not ready: %w", lastErr)
		}
		return fmt.Errorf("waiting for postgres: %w", err)
	}
	return nil
}
