package helper

import (
	"context"

	"github.com/testcontainers/testcontainers-go"
	tcneo4j "github.com/testcontainers/testcontainers-go/modules/neo4j"
)

// MustStartNeo4jContainer starts a Neo4j test container and returns a
// teardown function together with the bolt URI of the running instance.
// The admin password matches SetTestNeo4jConfigEnvs.
func MustStartNeo4jContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()

	container, err := tcneo4j.Run(ctx,
		"neo4j:5",
		tcneo4j.WithAdminPassword("password"),
	)
	if err != nil {
		return nil, "", NewError("start neo4j container", err)
	}

	uri, err := container.BoltUrl(ctx)
	if err != nil {
		return container.Terminate, "", NewError("resolve neo4j bolt url", err)
	}

	return container.Terminate, uri, nil
}
