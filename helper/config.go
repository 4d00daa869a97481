package helper

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// Configuration holds the environment-derived settings for the external
// collaborators. All values are optional; each client validates the
// settings it actually needs.
type Configuration struct {
	// Exa-compatible content-search API
	ExaAPIKey  string
	ExaBaseURL string

	// UK Companies House API
	CompaniesHouseAPIKey string

	// Neo4j property-graph store
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string
}

// NewConfiguration loads a .env file if present and reads the known
// environment variables
func NewConfiguration() *Configuration {
	// Missing .env is fine, real env vars still apply
	_ = godotenv.Load()

	return &Configuration{
		ExaAPIKey:            os.Getenv("EXA_API_KEY"),
		ExaBaseURL:           os.Getenv("EXA_API_BASE_URL"),
		CompaniesHouseAPIKey: os.Getenv("COMPANIES_HOUSE_API_KEY"),
		Neo4jURI:             os.Getenv("NEO4J_URI"),
		Neo4jUser:            os.Getenv("NEO4J_USER"),
		Neo4jPassword:        os.Getenv("NEO4J_PASSWORD"),
		Neo4jDatabase:        os.Getenv("NEO4J_DATABASE"),
	}
}

// SetTestNeo4jConfigEnvs points the Neo4j environment variables at a test
// container for the duration of a test
func SetTestNeo4jConfigEnvs(t *testing.T, uri string) {
	t.Setenv("NEO4J_URI", uri)
	t.Setenv("NEO4J_USER", "neo4j")
	t.Setenv("NEO4J_PASSWORD", "password")
	t.Setenv("NEO4J_DATABASE", "")
}
