package langserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/asthra-lang/asthrac/internal/compile"
)

// requestFile is one file in a compile request body.
type requestFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// compileRequest is POST /v1/compile's body: the files to compile plus
// per-request overrides of the server's default compile.Options.
type compileRequest struct {
	Files            []requestFile `json:"files"`
	Target           string        `json:"target,omitempty"`
	OptLevel         int           `json:"opt_level,omitempty"`
	DisabledWarnings []string      `json:"disabled_warnings,omitempty"`
	Coverage         bool          `json:"coverage,omitempty"`
	ParallelFiles    bool          `json:"parallel_files,omitempty"`
}

// compileResponse wraps spec.md §6's stable diagnostic JSON array with
// the session id internal/session minted for this request and whether a
// lowered module resulted ("ir is absent" on any error diagnostic, so a
// remote caller checking just this flag doesn't need to inspect the
// diagnostics array to know whether compilation succeeded).
type compileResponse struct {
	Session     string          `json:"session"`
	Diagnostics json.RawMessage `json:"diagnostics"`
	ModuleBuilt bool            `json:"module_built"`
}

func (s *Server) handleCompile(w http.ResponseWriter, req *http.Request) {
	var body compileRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body: " + err.Error()})
		return
	}
	if len(body.Files) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "at least one file is required"})
		return
	}

	sess, err := s.Sessions.Start(time.Now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	defer s.Sessions.Finish(sess.ID, time.Now())

	opts := s.DefaultOptions
	if body.Target != "" {
		opts.Target = body.Target
	}
	if body.OptLevel != 0 {
		opts.OptLevel = body.OptLevel
	}
	if len(body.DisabledWarnings) > 0 {
		cats := make([]compile.WarningCategory, len(body.DisabledWarnings))
		for i, c := range body.DisabledWarnings {
			cats[i] = compile.WarningCategory(c)
		}
		opts.DisabledWarnings = cats
	}
	opts.Coverage = body.Coverage
	opts.ParallelFiles = body.ParallelFiles

	sources := make([]compile.VirtualSource, len(body.Files))
	for i, f := range body.Files {
		sources[i] = compile.VirtualSource{Path: f.Path, Data: []byte(f.Content)}
	}

	result, err := compile.CompileVirtual(req.Context(), sources, opts)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}

	diagJSON, err := result.Engine.ExportJSON()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, compileResponse{
		Session:     sess.ID.String(),
		Diagnostics: diagJSON,
		ModuleBuilt: result.Module != nil,
	})
}
