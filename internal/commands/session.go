package commands

import (
	"context"
	"fmt"
	"io"

	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
	"taskmgr/internal/repository"
	"taskmgr/internal/service"
	"taskmgr/internal/state"
)

// openSession builds the repository and state container for one command
// run. The container starts its initial fetch immediately.
func openSession(ctx context.Context, cfg *config.Config, svc service.Service, errOut io.Writer) *state.Container {
	log := cfg.Logger(errOut)
	repo := repository.New(svc, log)
	return state.New(ctx, repo, state.WithLogger(log))
}

// reportState prints the surfaced error, if any, and returns the exit code.
func reportState(s state.UIState, errOut io.Writer) int {
	if !s.HasError() {
		return exitcode.Success
	}
	if s.ErrorKind == repository.KindValidation {
		fmt.Fprintf(errOut, "error: %s\n", s.Error)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: backend error: %s\n", s.Error)
	return exitcode.BackendError
}
