package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/handlers"
)

// AccessLogHandler wraps h with access logging that never writes session
// tokens. EventSource clients carry the JWT as ?access_token=, so that
// parameter is redacted before the request line hits the log.
func AccessLogHandler(out io.Writer, h http.Handler) http.Handler {
	return handlers.CustomLoggingHandler(out, h, writeAccessLog)
}

func writeAccessLog(out io.Writer, params handlers.LogFormatterParams) {
	u := params.URL
	if q := u.Query(); q.Get("access_token") != "" {
		q.Set("access_token", "REDACTED")
		u.RawQuery = q.Encode()
	}
	fmt.Fprintf(out, "%s - [%s] \"%s %s %s\" %d %d\n",
		params.Request.RemoteAddr,
		params.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
		params.Request.Method,
		u.RequestURI(),
		params.Request.Proto,
		params.StatusCode,
		params.Size,
	)
}
