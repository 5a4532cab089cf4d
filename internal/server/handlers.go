package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/leapcube/internal/messages"
	"github.com/leapstack-labs/leapcube/internal/modeler"
	"github.com/leapstack-labs/leapcube/internal/schema"
	"github.com/leapstack-labs/leapcube/internal/state"
	"github.com/leapstack-labs/leapcube/internal/workspace"
	"github.com/leapstack-labs/leapcube/pkg/adapter"
	"github.com/leapstack-labs/leapcube/pkg/annotation"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/model"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

// Handlers provides the HTTP handlers of the API.
type Handlers struct {
	store    state.Store
	synth    *modeler.Synthesizer
	conn     core.ConnectionInfo
	strategy modeler.ImportStrategy
	geo      *core.GeoConfig
	logger   *slog.Logger
}

// ListGroups returns every stored group.
func (h *Handlers) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.store.ListGroups(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if groups == nil {
		groups = []state.GroupInfo{}
	}
	writeJSON(w, http.StatusOK, groups)
}

// GetGroup returns one group.
func (h *Handlers) GetGroup(w http.ResponseWriter, r *http.Request) {
	g, err := h.store.GetGroup(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// SaveGroup stores the group in the body under the name in the path.
// Shared groups must pass shared-dimension validation.
func (h *Handlers) SaveGroup(w http.ResponseWriter, r *http.Request) {
	var g annotation.Group
	if err := decodeBody(w, r, &g); err != nil {
		h.writeError(w, err)
		return
	}
	g.Name = chi.URLParam(r, "name")

	if err := g.Validate(); err != nil {
		h.writeError(w, core.WrapError(core.KindValidation, err, "invalid annotation group"))
		return
	}
	if g.Shared {
		if v := annotation.ValidateSharedDimension(&g); v.HasErrors() {
			writeJSON(w, http.StatusUnprocessableEntity, ValidationResponse{Errors: v.Errors()})
			return
		}
	}

	info, err := h.store.SaveGroup(r.Context(), &g)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// DeleteGroup removes a group.
func (h *Handlers) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteGroup(r.Context(), chi.URLParam(r, "name")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ValidateGroup validates the body as a shared dimension without storing it.
func (h *Handlers) ValidateGroup(w http.ResponseWriter, r *http.Request) {
	var g annotation.Group
	if err := decodeBody(w, r, &g); err != nil {
		h.writeError(w, err)
		return
	}
	errs := annotation.ValidateSharedDimension(&g).Errors()
	if errs == nil {
		errs = []string{}
	}
	writeJSON(w, http.StatusOK, ValidationResponse{Valid: len(errs) == 0, Errors: errs})
}

// TransformSchema retargets an analysis schema at a table of the configured
// connection. Messages follow the request's Accept-Language.
func (h *Handlers) TransformSchema(w http.ResponseWriter, r *http.Request) {
	var req TransformRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Schema == "" || req.Table == "" || req.ModelName == "" {
		h.writeError(w, core.Errorf(core.KindValidation, "schema, model_name and table are required"))
		return
	}

	printer := messages.FromAcceptLanguage(r.Header.Get("Accept-Language"))
	t := schema.New(h.table(req.SchemaName, req.Table), h.logger, schema.WithPrinter(printer))
	out, err := t.ReplaceTableAndSchemaNames(r.Context(), req.Schema, req.ModelName)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TransformResponse{Schema: out})
}

// CreateModel generates a model for a table of the configured connection.
func (h *Handlers) CreateModel(w http.ResponseWriter, r *http.Request) {
	var req CreateModelRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.ModelName == "" || req.Table == "" {
		h.writeError(w, core.Errorf(core.KindValidation, "model_name and table are required"))
		return
	}

	domain, report, err := h.synth.CreateModel(r.Context(), modeler.CreateRequest{
		ModelName:   req.ModelName,
		Source:      h.table(req.SchemaName, req.Table),
		Connection:  h.conn,
		Strategy:    h.strategy,
		Annotations: req.Annotations,
		Groups:      h.store,
		Geo:         h.geo,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeModel(w, domain, report)
}

// UpdateModel retargets the model in the body at a table of the configured
// connection.
func (h *Handlers) UpdateModel(w http.ResponseWriter, r *http.Request) {
	var req UpdateModelRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.ModelName == "" || req.Table == "" || req.Domain == "" {
		h.writeError(w, core.Errorf(core.KindValidation, "model_name, table and domain are required"))
		return
	}

	domain, err := model.DecodeDomain(strings.NewReader(req.Domain))
	if err != nil {
		h.writeError(w, core.WrapError(core.KindValidation, err, "invalid domain"))
		return
	}
	domain, err = h.synth.UpdateModel(r.Context(), req.ModelName, domain, h.conn, req.SchemaName, req.Table)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeModel(w, domain, nil)
}

func (h *Handlers) table(schemaName, name string) *adapter.Table {
	return &adapter.Table{Config: h.conn.Adapter, Schema: schemaName, Name: name, Logger: h.logger}
}

func (h *Handlers) writeModel(w http.ResponseWriter, domain *model.Domain, report *workspace.ApplyReport) {
	var buf bytes.Buffer
	if err := model.EncodeDomain(&buf, domain); err != nil {
		h.writeError(w, fmt.Errorf("failed to encode domain: %w", err))
		return
	}

	resp := ModelResponse{Domain: buf.String()}
	if report != nil {
		for _, res := range report.Results {
			ar := AnnotationResult{Index: res.Index, Type: string(res.Type), Status: string(res.Status)}
			if res.Err != nil {
				ar.Error = res.Err.Error()
			}
			resp.Annotations = append(resp.Annotations, ar)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps an error onto an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, state.ErrGroupNotFound) {
		return http.StatusNotFound
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	switch core.KindOf(err) {
	case core.KindValidation:
		return http.StatusBadRequest
	case core.KindColumnMismatch:
		return http.StatusConflict
	case core.KindUnsupportedModel, core.KindConfiguration:
		return http.StatusUnprocessableEntity
	case core.KindDataAccess:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}

	resp := ErrorResponse{Error: err.Error()}
	var e *core.Error
	if errors.As(err, &e) {
		resp.Kind = e.Kind.String()
		resp.Column = e.Column
		if e.Type != 0 {
			resp.Type = e.Type.String()
		}
		resp.Missing = e.Missing
		resp.Mismatched = e.Mismatched
	}
	writeJSON(w, status, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return core.WrapError(core.KindValidation, err, "invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
