package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/catalog-mcp/internal/logging"
)

// ErrorReporter is the per-call error side channel. Report is called exactly
// once for every failed tool call, before the failure is returned.
type ErrorReporter interface {
	Report(ctx context.Context, tool string, err error)
}

// ClientLogReporter sends failures to the calling client as an error-level
// log notification. When the session cannot receive notifications the
// failure goes to the server log instead.
type ClientLogReporter struct {
	Log logging.Logger
}

func NewClientLogReporter(log logging.Logger) *ClientLogReporter {
	return &ClientLogReporter{Log: log.WithName("report")}
}

func (r *ClientLogReporter) Report(ctx context.Context, tool string, err error) {
	if srv := server.ServerFromContext(ctx); srv != nil {
		notification := mcp.NewLoggingMessageNotification(mcp.LoggingLevelError, tool, err.Error())
		sendErr := srv.SendLogMessageToClient(ctx, notification)
		if sendErr == nil {
			return
		}
		r.Log.Debug("client log notification not delivered", "tool", tool, "reason", sendErr.Error())
	}
	r.Log.Error(err, "tool call failed", "tool", tool)
}
