// The taskflow package contains the state layer of TaskFlow, a small task manager backed by a REST API that
// exposes todo items under /items. The package is made of three parts.
//
// The Client wraps the five remote operations (list all, list by completion, create, update, remove). It
// makes exactly one request per call, never retries, and reports failures as RequestError values
// (HTTPError, NetworkError, DecodeError).
//
// The Store owns the todo collection and the status of the last fetch. Every change goes through Reduce, a
// pure function folding an Action into a State, applied one action at a time by Store.Dispatch. Effect
// runners such as Store.FetchAll or Store.Add dispatch the pending phase of an action, make the remote call,
// and dispatch the outcome. Only fetches change the status; mutations leave it alone and report failures to
// the caller instead. Outcomes of a fetch that has been superseded by a newer one are ignored.
//
// Selectors (SelectAll, SelectCompleted, SelectProgress, ...) and scans (State.Scan) are read-only
// projections of a State snapshot, recomputed on every call.
//
// User interfaces are in the cmd subdirectories: an acme interface in cmd/taskflow-acme, and a command line
// interface with an interactive terminal mode in cmd/taskflow.
package taskflow // import "github.com/nicolagi/taskflow"
