// Package mcpservice implements the twelve tool handlers of the public
// catalog, wiring the query layer (internal/repository) and the
// classification/aggregation engine (internal/calculation) into the
// JSON shapes the original mcp_reportes tools returned.
package mcpservice

import (
	"time"

	"github.com/tolga/terp/internal/jsonrpc"
	"github.com/tolga/terp/internal/repository"
)

// Service holds the repositories every handler needs plus the civil
// timezone dates are interpreted in. Unavailable is set when the DB
// pool failed to connect at startup; handlers short-circuit to
// DB_UNAVAILABLE instead of touching a nil repository (spec.md §4.9:
// "start anyway and surface DB_UNAVAILABLE per request").
type Service struct {
	Employees   *repository.EmployeeRepository
	Punches     *repository.PunchEventRepository
	Config      *repository.ConfigRepository
	Location    *time.Location
	Unavailable error
}

// New builds a Service bound to the given repositories and location.
func New(employees *repository.EmployeeRepository, punches *repository.PunchEventRepository, config *repository.ConfigRepository, loc *time.Location) *Service {
	return &Service{Employees: employees, Punches: punches, Config: config, Location: loc}
}

func (s *Service) now() time.Time {
	return time.Now().In(s.Location)
}

// checkAvailable returns a DB_UNAVAILABLE error when the service was
// built without a working DB connection.
func (s *Service) checkAvailable() error {
	if s.Unavailable != nil {
		return jsonrpc.NewError(jsonrpc.KindDBUnavailable, "database unavailable: "+s.Unavailable.Error())
	}
	return nil
}
